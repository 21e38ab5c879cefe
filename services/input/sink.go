package input

import (
	"bufio"
	"fmt"
	"io"
)

/*
	Writes lines to a destination stream. A write failure on one
	line is logged and that line dropped rather than aborting the
	whole stream.
*/
type LineSink struct {
	name      string
	writer    *bufio.Writer
	closer    io.Closer
	lineCount int
}

func NewLineSink(name string, destination io.WriteCloser) *LineSink {
	return &LineSink{
		name:   name,
		writer: bufio.NewWriter(destination),
		closer: destination,
	}
}

func (s *LineSink) Accept(line string) {
	if _, err := s.writer.WriteString(line + "\n"); err != nil {
		fmt.Printf("Failed to write line to %s: %s\n", s.name, err)
		return
	}
	s.lineCount++
}

// LineCount reports the number of lines successfully accepted.
func (s *LineSink) LineCount() int {
	return s.lineCount
}

func (s *LineSink) Close() error {
	flushErr := s.writer.Flush()
	closeErr := s.closer.Close()

	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
