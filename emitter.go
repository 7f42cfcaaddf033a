package efflux

import (
	"bufio"
	"fmt"
	"io"
)

// Emitter writes encoded records onto the primary output stream. Records
// appear in emission order and Flush is safe to call repeatedly.
type Emitter struct {
	w     *bufio.Writer
	codec Codec
}

// NewEmitter creates an Emitter over the output stream.
func NewEmitter(w io.Writer, codec Codec) *Emitter {
	return &Emitter{w: bufio.NewWriterSize(w, 64<<10), codec: codec}
}

// Emit encodes and buffers a single output record.
func (e *Emitter) Emit(key, value string) error {
	if _, err := e.w.WriteString(e.codec.Encode(key, value)); err != nil {
		return fmt.Errorf("output stream: %w", err)
	}
	return nil
}

// Flush forces buffered records onto the output stream.
func (e *Emitter) Flush() error {
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("output stream: %w", err)
	}
	return nil
}
