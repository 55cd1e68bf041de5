// Package mask rasterizes a list of integer pixel coordinates into a
// black-on-white image, one pixel per coordinate pair.
package mask

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/gogpu/gg"
	"github.com/san-kum/lbmviz/internal/dataio"
)

// ErrMissingHeader is returned when the dimension line is absent.
var ErrMissingHeader = errors.New("mask: missing dimension line")

type Point struct {
	X, Y int
}

// PixelSet is the parsed content of a mask file: canvas dimensions and the
// coordinates to paint, in file order.
type PixelSet struct {
	Width, Height int
	Points        []Point
}

// Parse reads a mask file. Line 1 is an arbitrary header, line 2 holds the
// width and height, line 3 is an arbitrary separator, and every remaining
// non-empty line holds exactly one "x y" pair.
func Parse(r io.Reader) (*PixelSet, error) {
	lr := dataio.NewLineReader(r)

	dims, err := readDimensions(lr)
	if err != nil {
		return nil, err
	}
	ps := &PixelSet{Width: dims[0], Height: dims[1]}

	if _, err := lr.Next(); err == io.EOF {
		return ps, nil
	} else if err != nil {
		return nil, err
	}

	for {
		line, err := lr.Next()
		if err == io.EOF {
			return ps, nil
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		xy, err := dataio.ExactInts(line, lr.Line(), 2)
		if err != nil {
			return nil, err
		}
		ps.Points = append(ps.Points, Point{X: xy[0], Y: xy[1]})
	}
}

func readDimensions(lr *dataio.LineReader) ([]int, error) {
	var line string
	for i := 0; i < 2; i++ {
		var err error
		line, err = lr.Next()
		if err == io.EOF {
			return nil, &dataio.ParseError{
				Line: lr.Line() + 1,
				Err:  fmt.Errorf("%w: %w", ErrMissingHeader, dataio.ErrTruncated),
			}
		}
		if err != nil {
			return nil, err
		}
	}

	dims, err := dataio.Ints(line, lr.Line(), 2)
	if err != nil {
		return nil, err
	}
	if dims[0] < 0 || dims[1] < 0 {
		return nil, &dataio.ParseError{Line: lr.Line(), Err: fmt.Errorf("negative canvas size %dx%d", dims[0], dims[1])}
	}
	return dims, nil
}

func ParseFile(path string) (*PixelSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ps, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ps, nil
}

// Canvas is a white RGB raster with black pixels at the painted points.
type Canvas struct {
	pm *gg.Pixmap
}

// Rasterize paints every in-bounds point of ps black on a white canvas of
// exactly ps.Width x ps.Height. Out-of-bounds points are skipped.
func Rasterize(ps *PixelSet) *Canvas {
	pm := gg.NewPixmap(ps.Width, ps.Height)
	pm.Clear(gg.White)
	for _, p := range ps.Points {
		if p.X < 0 || p.X >= ps.Width || p.Y < 0 || p.Y >= ps.Height {
			continue
		}
		pm.SetPixel(p.X, p.Y, gg.Black)
	}
	return &Canvas{pm: pm}
}

func (c *Canvas) Width() int  { return c.pm.Width() }
func (c *Canvas) Height() int { return c.pm.Height() }

// IsBlack reports whether (x, y) was painted. Out-of-range cells report false.
func (c *Canvas) IsBlack(x, y int) bool {
	if x < 0 || x >= c.Width() || y < 0 || y >= c.Height() {
		return false
	}
	px := c.pm.GetPixel(x, y)
	return px.R == 0 && px.G == 0 && px.B == 0
}

func (c *Canvas) Image() image.Image {
	return c.pm.ToImage()
}

// WritePNG encodes the canvas. The image is fully opaque, so the encoder
// emits 8-bit RGB.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.pm.ToImage())
}

// SavePNG writes the canvas to path, replacing any existing file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
