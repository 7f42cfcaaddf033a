// Package efflux implements the runtime side of Hadoop Streaming jobs: a
// process reads key/value records on stdin, emits transformed records on
// stdout and reports progress through counter and status directives on
// stderr.
//
// User logic implements Mapper or Reducer and hands it to RunMapper or
// RunReducer inside a thin binary; the orchestrator (Hadoop, or a Unix
// pipeline with an external sort between the stages) drives the processes.
// RunLocal wires a whole job into a single process for use off-Hadoop.
package efflux

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Mapper transforms one input record into any number of output records.
type Mapper interface {
	Map(key, value string, ctx *Context) error
}

// MapperFunc adapts a plain function to the Mapper interface.
type MapperFunc func(key, value string, ctx *Context) error

// Map invokes the wrapped function.
func (f MapperFunc) Map(key, value string, ctx *Context) error { return f(key, value, ctx) }

// Reducer consumes all values sharing a key and produces aggregated output.
// The values handed to Reduce are single pass and only valid for the
// duration of the call; see Values.
type Reducer interface {
	Reduce(key string, values *Values, ctx *Context) error
}

// ReducerFunc adapts a plain function to the Reducer interface.
type ReducerFunc func(key string, values *Values, ctx *Context) error

// Reduce invokes the wrapped function.
func (f ReducerFunc) Reduce(key string, values *Values, ctx *Context) error {
	return f(key, values, ctx)
}

// Initializer is implemented by stages that need setup before input flows.
type Initializer interface {
	Setup(ctx *Context) error
}

// Finalizer is implemented by stages that need cleanup after input ends.
type Finalizer interface {
	Cleanup(ctx *Context) error
}

// RunMapper executes a Mapper against the process streams, exiting
// non-zero on failure.
func RunMapper(m Mapper) {
	runAndExit("map", func(j *Job) error { return j.RunMapper(m) })
}

// RunReducer executes a Reducer against the process streams, exiting
// non-zero on failure.
func RunReducer(r Reducer) {
	runAndExit("reduce", func(j *Job) error { return j.RunReducer(r) })
}

func runAndExit(stage string, run func(*Job) error) {
	job := NewJob(nil)
	if err := run(job); err != nil {
		log.WithFields(log.Fields{"stage": stage, "task": job.conf.TaskID()}).
			WithError(err).Error("streaming task failed")
		os.Exit(1)
	}
}
