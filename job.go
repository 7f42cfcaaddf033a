package efflux

import (
	"fmt"
	"io"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const (
	counterGroup   = "Efflux"
	counterSkipped = "SkippedRecords"
)

// Options configures a Job. The zero value runs against the process streams
// with raw mapper input and strict decoding.
type Options struct {
	Input  io.Reader      // defaults to os.Stdin
	Output io.Writer      // defaults to os.Stdout
	Side   io.Writer      // defaults to os.Stderr
	Conf   *Configuration // defaults to the process environment

	// Mode selects raw or key/value mapper input.
	Mode InputMode

	// Lenient makes the mapper skip malformed lines, counting them on the
	// side channel instead of failing the task. Never the default:
	// silently dropped records corrupt counting jobs.
	Lenient bool
}

func (o *Options) withDefaults() {
	if o.Input == nil {
		o.Input = os.Stdin
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}
	if o.Side == nil {
		o.Side = os.Stderr
	}
	if o.Conf == nil {
		o.Conf = NewConfiguration()
	}
}

// Job drives one streaming stage end to end: input through the codec into
// the user callable, emissions back through the codec onto the output
// stream, reporting on the side channel.
type Job struct {
	opts Options
	conf *Configuration
}

// NewJob creates a Job. A nil opts runs against the process streams.
func NewJob(opts *Options) *Job {
	var o Options
	if opts != nil {
		o = *opts
	}
	o.withDefaults()
	if lvl, err := log.ParseLevel(o.Conf.GetDefault("efflux.log.level", "info")); err == nil {
		log.SetLevel(lvl)
	}
	return &Job{opts: o, conf: o.Conf}
}

// RunMapper runs the mapper loop over the job's input.
func (j *Job) RunMapper(m Mapper) error {
	return j.run("map", m, func(ctx *Context, codec Codec) error {
		return j.runMap(m, ctx, codec)
	})
}

// RunReducer runs the grouping reducer loop over the job's input.
func (j *Job) RunReducer(r Reducer) error {
	return j.run("reduce", r, func(ctx *Context, codec Codec) error {
		return j.runReduce(r, ctx, codec)
	})
}

func (j *Job) run(stage string, callable interface{}, loop func(*Context, Codec) error) error {
	// outside hadoop the stage flag is absent, so pin it to keep the
	// delimiter lookup on the right stage
	if _, ok := j.conf.Get("mapreduce.task.ismap"); !ok {
		j.conf.Insert("mapreduce.task.ismap", strconv.FormatBool(stage == "map"))
	}

	delim := NewDelimiters(j.conf)
	codec := NewCodec(delim, stage == "map")
	emitter := NewEmitter(j.opts.Output, codec)
	reporter := NewReporter(j.opts.Side)
	ctx := newContext(j.conf, emitter, reporter)

	log.WithFields(log.Fields{"stage": stage, "task": j.conf.TaskID()}).
		Debug("streaming task starting")

	if err := j.runStage(callable, ctx, loop, codec); err != nil {
		// best effort: tell the orchestrator why before the process dies
		_ = reporter.Status(fmt.Sprintf("failed: %v", err))
		_ = emitter.Flush()
		return err
	}
	return emitter.Flush()
}

func (j *Job) runStage(callable interface{}, ctx *Context, loop func(*Context, Codec) error, codec Codec) error {
	if s, ok := callable.(Initializer); ok {
		if err := s.Setup(ctx); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}
	if err := loop(ctx, codec); err != nil {
		return err
	}
	if f, ok := callable.(Finalizer); ok {
		if err := f.Cleanup(ctx); err != nil {
			return fmt.Errorf("cleanup: %w", err)
		}
	}
	return nil
}
