package dataio

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates a malformed token or a line with too few tokens.
	ErrParse = errors.New("dataio: malformed input")

	// ErrTruncated indicates the input ended in the middle of a record.
	ErrTruncated = errors.New("dataio: unexpected end of input")
)

// ParseError wraps a conversion failure with the 1-based line it occurred on.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports every ParseError as an ErrParse so callers can classify
// failures without caring about the underlying strconv error.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Truncated returns a ParseError for a record cut short at line.
func Truncated(line int, what string) error {
	return &ParseError{Line: line, Err: fmt.Errorf("%w: missing %s", ErrTruncated, what)}
}
