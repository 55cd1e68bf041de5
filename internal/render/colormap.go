package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
)

// Colormap maps a normalized value in [0, 1] to a colour through a lookup
// table.
type Colormap struct {
	Name string
	lut  []color.RGBA
}

// ColorBrewer RdBu anchors, red to blue.
var rdBuAnchors = []string{
	"67001f", "b2182b", "d6604d", "f4a582", "fddbc7", "f7f7f7",
	"d1e5f0", "92c5de", "4393c3", "2166ac", "053061",
}

const lutSize = 256

var colormaps = map[string]func() *Colormap{
	"RdBu_r": func() *Colormap { return segmented("RdBu_r", reversed(rdBuAnchors)) },
	"RdBu":   func() *Colormap { return segmented("RdBu", rdBuAnchors) },
	"sci":    sciColormap,
}

// ColormapByName returns a named colormap: RdBu_r, RdBu or sci.
func ColormapByName(name string) (*Colormap, error) {
	mk, ok := colormaps[name]
	if !ok {
		return nil, fmt.Errorf("render: unknown colormap %q (available: %v)", name, ColormapNames())
	}
	return mk(), nil
}

func ColormapNames() []string {
	names := make([]string, 0, len(colormaps))
	for n := range colormaps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// At returns the colour for t. Values outside [0, 1] are clamped and NaN
// maps to the lowest entry.
func (c *Colormap) At(t float64) color.RGBA {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t >= 1 {
		return c.lut[len(c.lut)-1]
	}
	i := int(t * float64(len(c.lut)))
	if i >= len(c.lut) {
		i = len(c.lut) - 1
	}
	return c.lut[i]
}

// Sample returns n colours evenly spaced over the table.
func (c *Colormap) Sample(n int) []color.RGBA {
	out := make([]color.RGBA, n)
	for i := range out {
		if n == 1 {
			out[i] = c.lut[0]
			continue
		}
		out[i] = c.lut[i*(len(c.lut)-1)/(n-1)]
	}
	return out
}

// segmented linearly interpolates evenly spaced anchor colours.
func segmented(name string, anchors []string) *Colormap {
	cols := make([]color.RGBA, len(anchors))
	for i, h := range anchors {
		cols[i] = hexRGBA(h)
	}

	lut := make([]color.RGBA, lutSize)
	segs := float64(len(cols) - 1)
	for i := range lut {
		x := float64(i) / float64(lutSize-1) * segs
		k := int(x)
		if k >= len(cols)-1 {
			k = len(cols) - 2
		}
		f := x - float64(k)
		a, b := cols[k], cols[k+1]
		lut[i] = color.RGBA{
			R: lerp8(a.R, b.R, f),
			G: lerp8(a.G, b.G, f),
			B: lerp8(a.B, b.B, f),
			A: 0xff,
		}
	}
	return &Colormap{Name: name, lut: lut}
}

// sciColormap is the four-segment blue, cyan, green, yellow, red ramp.
func sciColormap() *Colormap {
	lut := make([]color.RGBA, lutSize)
	for i := range lut {
		val := math.Min(float64(i)/float64(lutSize-1), 1-1e-4)
		const m = 0.25
		num := math.Floor(val / m)
		s := (val - num*m) / m
		var r, g, b float64
		switch int(num) {
		case 0:
			r, g, b = 0, s, 1
		case 1:
			r, g, b = 0, 1, 1-s
		case 2:
			r, g, b = s, 1, 0
		default:
			r, g, b = 1, 1-s, 0
		}
		lut[i] = color.RGBA{R: uint8(255 * r), G: uint8(255 * g), B: uint8(255 * b), A: 0xff}
	}
	return &Colormap{Name: "sci", lut: lut}
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func hexRGBA(h string) color.RGBA {
	v, _ := strconv.ParseUint(h, 16, 32)
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}
