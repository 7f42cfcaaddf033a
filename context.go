package efflux

// Context is the per-job handle passed into user logic. It bundles the
// output emitter with the side reporting channel and the job configuration,
// is built once per invocation and lives for the process lifetime.
type Context struct {
	conf    *Configuration
	emitter *Emitter
	rep     *Reporter
}

func newContext(conf *Configuration, emitter *Emitter, rep *Reporter) *Context {
	return &Context{conf: conf, emitter: emitter, rep: rep}
}

// Configuration returns the job configuration.
func (c *Context) Configuration() *Configuration { return c.conf }

// Write emits a single output record.
func (c *Context) Write(key, value string) error { return c.emitter.Emit(key, value) }

// Counter increments an orchestrator counter by the given delta.
func (c *Context) Counter(group, name string, amount int64) error {
	return c.rep.Counter(group, name, amount)
}

// Status updates the task status shown by the orchestrator.
func (c *Context) Status(status string) error { return c.rep.Status(status) }

// Flush forces buffered output onto the stream.
func (c *Context) Flush() error { return c.emitter.Flush() }
