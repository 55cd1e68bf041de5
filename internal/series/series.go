// Package series loads drag/lift time series written by the simulator and
// plots them against frame index.
package series

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/lbmviz/internal/dataio"
)

// ErrEmpty is returned when a plot is requested for a series with no records.
var ErrEmpty = errors.New("series: no records")

// Series holds three parallel, equal-length sequences in file order.
type Series struct {
	Frames []int
	Drags  []float64
	Lifts  []float64
}

func (s *Series) Len() int {
	return len(s.Frames)
}

// Load reads alternating record lines: a frame line whose first token is
// the frame index, then a value line whose first two tokens are drag and
// lift. Blank lines between records are skipped.
func Load(r io.Reader) (*Series, error) {
	lr := dataio.NewLineReader(r)
	s := &Series{}

	for {
		line, err := lr.NextNonBlank()
		if err == io.EOF {
			return s, nil
		}
		if err != nil {
			return nil, err
		}
		frame, err := dataio.Ints(line, lr.Line(), 1)
		if err != nil {
			return nil, err
		}

		line, err = lr.Next()
		if err == io.EOF {
			return nil, dataio.Truncated(lr.Line()+1, fmt.Sprintf("drag/lift line for frame %d", frame[0]))
		}
		if err != nil {
			return nil, err
		}
		vals, err := dataio.Floats(line, lr.Line(), 2)
		if err != nil {
			return nil, err
		}

		s.Frames = append(s.Frames, frame[0])
		s.Drags = append(s.Drags, vals[0])
		s.Lifts = append(s.Lifts, vals[1])
	}
}

func LoadFile(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
