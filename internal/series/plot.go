package series

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatSVG:
		return f, nil
	}
	return "", fmt.Errorf("series: unknown plot format %q (want png or svg)", s)
}

type PlotOptions struct {
	Width  int
	Height int
	Format Format
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 640, Height: 480, Format: FormatPNG}
}

var (
	dragColor = drawing.ColorFromHex("1f77b4")
	liftColor = drawing.ColorFromHex("ff7f0e")
)

// Plot draws drag and lift as two overlaid lines against frame index, with a
// legend and an x-axis named "frame".
func Plot(w io.Writer, s *Series, opts PlotOptions) error {
	if s.Len() == 0 {
		return ErrEmpty
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultPlotOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}

	xs := make([]float64, s.Len())
	for i, f := range s.Frames {
		xs[i] = float64(f)
	}

	xMin, xMax := bounds(xs)
	yMin, yMax := bounds(s.Drags)
	lMin, lMax := bounds(s.Lifts)
	yMin, yMax = math.Min(yMin, lMin), math.Max(yMax, lMax)

	// go-chart refuses zero-width ranges, which a single record or a flat
	// series would produce.
	xMin, xMax = pad(xMin, xMax, 0)
	yMin, yMax = pad(yMin, yMax, 0.05)

	graph := chart.Chart{
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "frame",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%d", int(math.Round(f)))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "drag",
				XValues: xs,
				YValues: s.Drags,
				Style:   chart.Style{StrokeColor: dragColor, StrokeWidth: 1.5},
			},
			chart.ContinuousSeries{
				Name:    "lift",
				XValues: xs,
				YValues: s.Lifts,
				Style:   chart.Style{StrokeColor: liftColor, StrokeWidth: 1.5},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	provider := chart.PNG
	if opts.Format == FormatSVG {
		provider = chart.SVG
	}
	return graph.Render(provider, w)
}

// Sparkline renders both series as a terminal line chart.
func Sparkline(s *Series, width, height int) string {
	if s.Len() == 0 {
		return ""
	}
	return asciigraph.PlotMany(
		[][]float64{s.Drags, s.Lifts},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("drag (blue) / lift (red), frames %d..%d", s.Frames[0], s.Frames[s.Len()-1])),
	)
}

func bounds(v []float64) (lo, hi float64) {
	lo, hi = v[0], v[0]
	for _, x := range v[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

func pad(lo, hi, frac float64) (float64, float64) {
	if hi == lo {
		d := math.Abs(lo) * 0.05
		if d == 0 {
			d = 1
		}
		return lo - d, hi + d
	}
	d := (hi - lo) * frac
	return lo - d, hi + d
}
