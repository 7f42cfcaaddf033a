package efflux

import (
	"bufio"
	"fmt"
	"io"
)

// lineReader yields input lines without their terminator, including a final
// line that is missing one.
type lineReader struct {
	br *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReaderSize(r, 64<<10)}
}

// next returns the next line and the number of input bytes it consumed.
// io.EOF signals a clean end of input.
func (l *lineReader) next() (string, int, error) {
	line, err := l.br.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", 0, io.EOF
		}
		return line, len(line), nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("input stream: %w", err)
	}
	return line[:len(line)-1], len(line), nil
}
