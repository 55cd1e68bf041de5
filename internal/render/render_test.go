package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/lbmviz/internal/field"
)

// uniformField builds a width x height dataset with one frame per label,
// every cell moving at (vx, vy).
func uniformField(t *testing.T, width, height int, vx, vy float64, labels ...string) *field.Dataset {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d\n", width, height)
	row := func(v float64) string {
		vals := make([]string, width*height)
		for i := range vals {
			vals[i] = fmt.Sprint(v)
		}
		return strings.Join(vals, " ")
	}
	for _, l := range labels {
		fmt.Fprintf(&b, "%s\n%s\n%s\n", l, row(vx), row(vy))
	}
	ds, err := field.Load(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}
	return ds
}

func TestColormap_RdBuREndpoints(t *testing.T) {
	cm, err := ColormapByName("RdBu_r")
	if err != nil {
		t.Fatal(err)
	}

	if got, want := cm.At(0), (color.RGBA{0x05, 0x30, 0x61, 0xff}); got != want {
		t.Errorf("At(0) = %v, want %v", got, want)
	}
	if got, want := cm.At(1), (color.RGBA{0x67, 0x00, 0x1f, 0xff}); got != want {
		t.Errorf("At(1) = %v, want %v", got, want)
	}
	if cm.At(-3) != cm.At(0) || cm.At(7) != cm.At(1) {
		t.Error("out-of-range values should clamp")
	}
}

func TestColormap_ClampsHugeValues(t *testing.T) {
	cm, err := ColormapByName("sci")
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []float64{1e300, math.MaxFloat64, math.Inf(1)} {
		if got := cm.At(v); got != cm.At(1) {
			t.Errorf("At(%g) = %v, want the top colour %v", v, got, cm.At(1))
		}
	}
	if cm.At(math.Inf(-1)) != cm.At(0) || cm.At(math.NaN()) != cm.At(0) {
		t.Error("-Inf and NaN should map to the bottom colour")
	}
}

func TestColormapByName_Unknown(t *testing.T) {
	if _, err := ColormapByName("jet"); err == nil {
		t.Error("expected error for unknown colormap")
	}
	if len(ColormapNames()) != 3 {
		t.Errorf("expected 3 colormaps, got %v", ColormapNames())
	}
}

func TestSamplePositions(t *testing.T) {
	tests := []struct {
		n, grid    int
		first, cnt int
	}{
		{100, 15, 3, 17},
		{30, 15, 1, 15},
		{10, 15, 0, 10},
	}

	for _, tt := range tests {
		got := samplePositions(tt.n, tt.grid)
		if len(got) != tt.cnt || got[0] != tt.first {
			t.Errorf("samplePositions(%d, %d) = %v, want %d positions from %d", tt.n, tt.grid, got, tt.cnt, tt.first)
		}
	}
}

func TestColorScale(t *testing.T) {
	moving := uniformField(t, 2, 2, 3, 4, "0")
	still := uniformField(t, 2, 2, 0, 0, "0")

	tests := []struct {
		name   string
		custom float64
		ds     *field.Dataset
		want   float64
	}{
		{"custom", 0.3, moving, 0.3},
		{"global max", 0, moving, 5},
		{"negative falls back", -1, moving, 5},
		{"dataset at rest", 0, still, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorScale(tt.custom, tt.ds); got != tt.want {
				t.Errorf("ColorScale = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeLayout(t *testing.T) {
	l := computeLayout(100, 50, 800, false)
	if l.width != 800 || l.height != 400 {
		t.Errorf("frame size %dx%d, want 800x400", l.width, l.height)
	}
	if !l.img.In(image.Rect(0, 0, l.width, l.height)) {
		t.Errorf("heat map %v outside frame", l.img)
	}
	if l.titleY >= float64(l.img.Min.Y) {
		t.Errorf("title row %v should sit above the heat map at %d", l.titleY, l.img.Min.Y)
	}

	withBar := computeLayout(100, 50, 800, true)
	if withBar.cbar.Empty() || withBar.cbar.Min.X < withBar.img.Max.X {
		t.Errorf("colorbar %v should sit right of heat map %v", withBar.cbar, withBar.img)
	}
	if withBar.cbar.Max.X > withBar.width {
		t.Errorf("colorbar %v overflows frame width %d", withBar.cbar, withBar.width)
	}
}

func TestNewFrameRenderer_NoFrames(t *testing.T) {
	ds := field.NewDataset(4, 4)
	if _, err := NewFrameRenderer(ds, DefaultFrameOptions()); !errors.Is(err, field.ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}

func TestRender_HeatMapRowsTopDown(t *testing.T) {
	ds, err := field.Load(strings.NewReader("2 2\n7\n1 0 0 0\n0 1 0 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultFrameOptions()
	opts.VMax = 1

	r, err := NewFrameRenderer(ds, opts)
	if err != nil {
		t.Fatal(err)
	}
	img, err := r.Render(0)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	cm, _ := ColormapByName("RdBu_r")
	box := r.lay.img
	top := img.RGBAAt(box.Min.X+box.Dx()/4, box.Min.Y+box.Dy()/4)
	bottom := img.RGBAAt(box.Min.X+box.Dx()/4, box.Min.Y+3*box.Dy()/4)

	if !near(top, cm.At(1)) {
		t.Errorf("row 0 should render at the top with the high end colour, got %v", top)
	}
	if !near(bottom, cm.At(0)) {
		t.Errorf("row 1 should render at the bottom with the low end colour, got %v", bottom)
	}
}

func TestRender_Deterministic(t *testing.T) {
	ds := uniformField(t, 30, 20, 0.1, -0.05, "1", "2")
	opts := DefaultFrameOptions()
	opts.ShowVectors = true
	opts.ShowColorbar = true

	r, err := NewFrameRenderer(ds, opts)
	if err != nil {
		t.Fatal(err)
	}
	a, err := r.Render(1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Render(1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("rendering the same frame twice produced different pixels")
	}
	w, h := r.Size()
	if a.Bounds().Dx() != w || a.Bounds().Dy() != h {
		t.Errorf("frame bounds %v, want %dx%d", a.Bounds(), w, h)
	}
}

func TestRender_QuiverDrawsArrows(t *testing.T) {
	ds := uniformField(t, 30, 30, 0.3, 0, "0")

	plain := DefaultFrameOptions()
	withArrows := plain
	withArrows.ShowVectors = true

	count := func(opts FrameOptions) int {
		r, err := NewFrameRenderer(ds, opts)
		if err != nil {
			t.Fatal(err)
		}
		img, err := r.Render(0)
		if err != nil {
			t.Fatal(err)
		}
		return darkPixels(img, r.lay.img.Inset(3))
	}

	if n := count(plain); n != 0 {
		t.Errorf("expected no dark pixels inside the heat map without vectors, got %d", n)
	}
	if n := count(withArrows); n == 0 {
		t.Error("expected arrow pixels inside the heat map")
	}
}

func TestRender_ExtremeMagnitudes(t *testing.T) {
	for _, cell := range []string{"1e300", "inf", "1.7e308"} {
		t.Run(cell, func(t *testing.T) {
			ds, err := field.Load(strings.NewReader("2 1\n0\n" + cell + " 0\n0 0\n"))
			if err != nil {
				t.Fatal(err)
			}
			opts := DefaultFrameOptions()
			opts.ShowColorbar = true
			opts.ShowVectors = true

			r, err := NewFrameRenderer(ds, opts)
			if err != nil {
				t.Fatal(err)
			}
			img, err := r.Render(0)
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			box := r.lay.img
			hot := img.RGBAAt(box.Min.X+box.Dx()/4, box.Min.Y+box.Dy()/2)
			if !near(hot, r.opts.Colormap.At(1)) {
				t.Errorf("saturated cell rendered as %v, want the top colour", hot)
			}
		})
	}
}

func TestRender_TitleAboveHeatMap(t *testing.T) {
	for _, size := range [][2]int{{100, 50}, {200, 10}, {20, 40}} {
		t.Run(fmt.Sprintf("%dx%d", size[0], size[1]), func(t *testing.T) {
			ds := uniformField(t, size[0], size[1], 0.3, 0, "12345")
			r, err := NewFrameRenderer(ds, DefaultFrameOptions())
			if err != nil {
				t.Fatal(err)
			}
			img, err := r.Render(0)
			if err != nil {
				t.Fatal(err)
			}

			box := r.lay.img
			if n := darkPixels(img, box); n != 0 {
				t.Errorf("title ink leaked into the heat map: %d dark pixels", n)
			}
			band := image.Rect(box.Min.X, 0, box.Max.X, box.Min.Y-titleGap+1)
			if n := darkPixels(img, band); n == 0 {
				t.Error("expected the step title above the heat map")
			}
		})
	}
}

func TestRender_QuiverClippedToAxes(t *testing.T) {
	ds := uniformField(t, 45, 30, 0.1, 0.1, "0")

	plain := DefaultFrameOptions()
	plain.ShowColorbar = true
	withArrows := plain
	withArrows.ShowVectors = true

	render := func(opts FrameOptions) (*image.RGBA, image.Rectangle) {
		r, err := NewFrameRenderer(ds, opts)
		if err != nil {
			t.Fatal(err)
		}
		img, err := r.Render(0)
		if err != nil {
			t.Fatal(err)
		}
		return img, r.lay.img
	}

	a, box := render(plain)
	b, _ := render(withArrows)
	if bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("vectors changed nothing")
	}
	diff := 0
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if image.Pt(x, y).In(box) {
				continue
			}
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
				diff++
			}
		}
	}
	if diff != 0 {
		t.Errorf("arrows changed %d pixels outside the axes box %v", diff, box)
	}
}

func TestFrameDelay(t *testing.T) {
	if d, err := FrameDelay(10); err != nil || d != 10 {
		t.Errorf("FrameDelay(10) = %d, %v", d, err)
	}
	if d, _ := FrameDelay(3); d != 33 {
		t.Errorf("FrameDelay(3) = %d, want 33", d)
	}
	if _, err := FrameDelay(0); err == nil {
		t.Error("expected error for zero fps")
	}
}

func TestEncodeGIF(t *testing.T) {
	ds := uniformField(t, 16, 8, 0.2, 0.1, "10", "20", "30")
	r, err := NewFrameRenderer(ds, DefaultFrameOptions())
	if err != nil {
		t.Fatal(err)
	}

	var rendered []int
	var buf bytes.Buffer
	if err := EncodeGIF(&buf, r, DefaultFPS, func(i int) { rendered = append(rendered, i) }); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(rendered) != 3 {
		t.Errorf("expected 3 progress callbacks, got %v", rendered)
	}

	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(g.Image))
	}
	for i, d := range g.Delay {
		if d != 10 {
			t.Errorf("frame %d delay %d, want 10", i, d)
		}
	}
	if g.LoopCount != -1 {
		t.Errorf("expected play-once animation, got LoopCount %d", g.LoopCount)
	}
	w, h := r.Size()
	if g.Config.Width != w || g.Config.Height != h {
		t.Errorf("gif size %dx%d, want %dx%d", g.Config.Width, g.Config.Height, w, h)
	}
}

func TestWriteMovie_Idempotent(t *testing.T) {
	ds := uniformField(t, 12, 12, 0.05, 0.02, "a", "b")
	dir := t.TempDir()
	opts := DefaultMovieOptions()
	opts.Frame.ShowVectors = true

	paths := []string{filepath.Join(dir, "one.gif"), filepath.Join(dir, "two.gif")}
	for _, p := range paths {
		if err := WriteMovie(p, ds, opts, nil); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}

	a := readFile(t, paths[0])
	b := readFile(t, paths[1])
	if !bytes.Equal(a, b) {
		t.Error("same input produced different GIF bytes")
	}
}

func TestWriteMovie_UnwritablePath(t *testing.T) {
	ds := uniformField(t, 4, 4, 0.1, 0, "a")
	err := WriteMovie(filepath.Join(t.TempDir(), "missing", "movie.gif"), ds, DefaultMovieOptions(), nil)
	if err == nil {
		t.Error("expected error for missing output directory")
	}
}

func TestPalette(t *testing.T) {
	cm, _ := ColormapByName("RdBu_r")
	pal := Palette(cm)
	if len(pal) != 256 {
		t.Fatalf("palette has %d entries, want 256", len(pal))
	}
	if pal.Index(color.Black) < paletteRamp || pal.Index(color.White) < paletteRamp {
		t.Error("black and white should resolve to the gray ramp")
	}
}
