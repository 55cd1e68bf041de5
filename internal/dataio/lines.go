package dataio

import (
	"bufio"
	"io"
	"strings"
)

// LineReader yields input lines one at a time. Velocity rows can hold
// millions of tokens, so lines are read with bufio.Reader instead of a
// Scanner with a fixed token limit.
type LineReader struct {
	r    *bufio.Reader
	line int
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next line without its line terminator. It returns io.EOF
// only when no data at all is left.
func (lr *LineReader) Next() (string, error) {
	s, err := lr.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && s == "" {
		return "", io.EOF
	}
	lr.line++
	return strings.TrimRight(s, "\r\n"), nil
}

// NextNonBlank skips whitespace-only lines and returns the first line with
// content, or io.EOF if only blank lines remain.
func (lr *LineReader) NextNonBlank() (string, error) {
	for {
		s, err := lr.Next()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(s) != "" {
			return s, nil
		}
	}
}

// Line is the 1-based number of the line most recently returned.
func (lr *LineReader) Line() int {
	return lr.line
}
