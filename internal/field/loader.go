package field

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/san-kum/lbmviz/internal/dataio"
)

// ProgressFunc is called after each step block is loaded.
type ProgressFunc func(frame int, step string)

type loadConfig struct {
	progress ProgressFunc
}

type Option func(*loadConfig)

func WithProgress(fn ProgressFunc) Option {
	return func(c *loadConfig) {
		c.progress = fn
	}
}

// Load reads a "width height" header, then step blocks until the input is
// exhausted. Blank lines before a step label are skipped.
func Load(r io.Reader, opts ...Option) (*Dataset, error) {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	lr := dataio.NewLineReader(r)

	line, err := lr.Next()
	if err == io.EOF {
		return nil, dataio.Truncated(1, "width/height header")
	}
	if err != nil {
		return nil, err
	}
	dims, err := dataio.ExactInts(line, lr.Line(), 2)
	if err != nil {
		return nil, err
	}
	width, height := dims[0], dims[1]
	if width < 1 || height < 1 {
		return nil, &dataio.ParseError{Line: lr.Line(), Err: fmt.Errorf("invalid lattice size %dx%d", width, height)}
	}

	ds := NewDataset(width, height)
	for frame := 0; ; frame++ {
		label, err := lr.NextNonBlank()
		if err == io.EOF {
			return ds, nil
		}
		if err != nil {
			return nil, err
		}
		step := strings.TrimSpace(label)

		ux, err := readGrid(lr, height, width, "x-velocity line for step "+step)
		if err != nil {
			return nil, err
		}
		uy, err := readGrid(lr, height, width, "y-velocity line for step "+step)
		if err != nil {
			return nil, err
		}

		if err := ds.Append(Snapshot{Step: step, UX: ux, UY: uy}); err != nil {
			return nil, err
		}
		if cfg.progress != nil {
			cfg.progress(frame, step)
		}
	}
}

func readGrid(lr *dataio.LineReader, rows, cols int, what string) (Grid, error) {
	line, err := lr.Next()
	if err == io.EOF {
		return Grid{}, dataio.Truncated(lr.Line()+1, what)
	}
	if err != nil {
		return Grid{}, err
	}
	vals, err := dataio.AllFloats(line, lr.Line())
	if err != nil {
		return Grid{}, err
	}
	g, err := Reshape(vals, rows, cols)
	if err != nil {
		var se *ShapeError
		if errors.As(err, &se) {
			se.Line = lr.Line()
		}
		return Grid{}, err
	}
	return g, nil
}

func LoadFile(path string, opts ...Option) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}
