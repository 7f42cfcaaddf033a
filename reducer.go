package efflux

import (
	"fmt"
	"io"
)

// Values is the lazy, forward-only sequence of one group's values, in input
// order. It is bound to the input cursor: it must be consumed inside the
// Reduce call that received it and cannot be restarted. Whatever remains
// unread when Reduce returns is discarded as the loop advances to the next
// group, so retaining a Values across calls is not supported.
type Values struct {
	key    string
	cur    string
	seeded bool
	in     *lineReader
	codec  Codec
	next   *Record
	err    error
	done   bool
}

// Next advances to the next value in the group, reporting whether one is
// available. As with bufio.Scanner, check Err once Next returns false.
func (v *Values) Next() bool {
	if v.done {
		return false
	}
	if v.seeded {
		v.seeded = false
		return true
	}
	line, _, err := v.in.next()
	if err == io.EOF {
		v.done = true
		return false
	}
	if err != nil {
		v.err = err
		v.done = true
		return false
	}
	rec, err := v.codec.Decode(line)
	if err != nil {
		v.err = err
		v.done = true
		return false
	}
	if rec.Key != v.key {
		// the cursor has entered the next group
		v.next = &rec
		v.done = true
		return false
	}
	v.cur = rec.Value
	return true
}

// Value returns the value at the current position.
func (v *Values) Value() string { return v.cur }

// Err returns the first error hit while advancing, if any.
func (v *Values) Err() error { return v.err }

// runReduce rebuilds group-by-key semantics from a flat, pre-sorted line
// stream. The external sort contract is trusted, never re-checked: equal
// keys arriving in disjoint runs become two separate groups.
func (j *Job) runReduce(r Reducer, ctx *Context, codec Codec) error {
	in := newLineReader(j.opts.Input)

	line, _, err := in.next()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	rec, err := codec.Decode(line)
	if err != nil {
		return err
	}

	for {
		values := &Values{key: rec.Key, cur: rec.Value, seeded: true, in: in, codec: codec}
		if err := r.Reduce(rec.Key, values, ctx); err != nil {
			return fmt.Errorf("reduce callable: %w", err)
		}
		// drain whatever the callable left unread so the cursor lands on
		// the first record of the next group
		for values.Next() {
		}
		if err := values.Err(); err != nil {
			return err
		}
		if values.next == nil {
			return nil
		}
		rec = *values.next
	}
}
