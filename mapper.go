package efflux

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// InputMode selects how the mapper loop interprets input lines.
type InputMode int

const (
	// RawInput passes each whole line as the value, with the running byte
	// offset of the line as the key. This matches what Hadoop's
	// TextInputFormat hands to streaming mappers.
	RawInput InputMode = iota

	// KeyValueInput decodes each line into a key/value record, failing on
	// lines with no separator unless the job is lenient.
	KeyValueInput
)

func (j *Job) runMap(m Mapper, ctx *Context, codec Codec) error {
	in := newLineReader(j.opts.Input)
	var offset int64
	for {
		line, n, err := in.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		var rec Record
		switch j.opts.Mode {
		case KeyValueInput:
			rec, err = codec.Decode(line)
			if err != nil {
				if j.opts.Lenient && errors.Is(err, ErrMalformedRecord) {
					if cerr := ctx.Counter(counterGroup, counterSkipped, 1); cerr != nil {
						return cerr
					}
					offset += int64(n)
					continue
				}
				return err
			}
		default:
			rec = Record{Key: strconv.FormatInt(offset, 10), Value: line}
		}

		if err := m.Map(rec.Key, rec.Value, ctx); err != nil {
			return fmt.Errorf("map callable: %w", err)
		}
		offset += int64(n)
	}
}
