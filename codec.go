package efflux

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRecord is returned when a line cannot be split into a
// key/value pair and the caller requires one.
var ErrMalformedRecord = errors.New("malformed record")

// Record is a single key/value pair on the stream.
type Record struct {
	Key   string
	Value string
}

// Codec translates records to and from the line format used by Hadoop
// Streaming. Keys must not contain the separator; the decoder splits at the
// first occurrence and keeps the rest of the line as the value, matching
// Hadoop's own behaviour for values with embedded separators.
type Codec struct {
	inputSep   string
	outputSep  string
	requireSep bool
}

// NewCodec creates a Codec over the given stage delimiters. When requireSep
// is set, decoding a line with no separator fails with ErrMalformedRecord;
// otherwise the whole line becomes the key with an empty value.
func NewCodec(delim Delimiters, requireSep bool) Codec {
	return Codec{
		inputSep:   delim.Input(),
		outputSep:  delim.Output(),
		requireSep: requireSep,
	}
}

// Encode renders one record as a terminated line. An empty value produces a
// bare key with no trailing separator, keeping output byte reproducible.
func (c Codec) Encode(key, value string) string {
	if value == "" {
		return key + "\n"
	}
	return key + c.outputSep + value + "\n"
}

// Decode parses a single record line. Exactly one trailing terminator is
// stripped; a terminator anywhere else means the upstream framing is broken.
func (c Codec) Decode(line string) (Record, error) {
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		if i != len(line)-1 {
			return Record{}, fmt.Errorf("%w: embedded line terminator", ErrMalformedRecord)
		}
		line = line[:i]
	}
	i := strings.Index(line, c.inputSep)
	if i < 0 {
		if c.requireSep {
			return Record{}, fmt.Errorf("%w: no field separator in %q", ErrMalformedRecord, line)
		}
		return Record{Key: line}, nil
	}
	return Record{Key: line[:i], Value: line[i+len(c.inputSep):]}, nil
}
