package field

import (
	"errors"
	"fmt"
)

var (
	// ErrShape indicates a flat vector whose length does not match the grid.
	ErrShape = errors.New("field: value count does not match grid shape")

	// ErrNoFrames indicates a field file with a header but no step blocks.
	ErrNoFrames = errors.New("field: no frames")
)

// ShapeError reports a failed reshape. Line is 0 when the values did not
// come from a file.
type ShapeError struct {
	Line       int
	Rows, Cols int
	Got        int
}

func (e *ShapeError) Error() string {
	msg := fmt.Sprintf("cannot reshape %d values into %dx%d grid (want %d)", e.Got, e.Rows, e.Cols, e.Rows*e.Cols)
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}
