package render

import (
	"image"
	"math"
	"strconv"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/san-kum/lbmviz/internal/field"
)

const (
	DefaultVMax       = 0.3
	DefaultFrameWidth = 800
	DefaultQuiverGrid = 15

	// Arrow length is |v| / quiverScale axes widths.
	quiverScale = 1.5
	shaftFrac   = 0.003
	headWidth   = 4.0
	headLength  = 5.0
)

type FrameOptions struct {
	// VMax is the colour-scale upper bound. Zero or negative selects the
	// global maximum magnitude of the dataset.
	VMax         float64
	ShowVectors  bool
	ShowColorbar bool
	Width        int
	QuiverGrid   int
	Colormap     *Colormap
}

func DefaultFrameOptions() FrameOptions {
	return FrameOptions{
		VMax:       DefaultVMax,
		Width:      DefaultFrameWidth,
		QuiverGrid: DefaultQuiverGrid,
	}
}

// ColorScale returns the upper bound of the colour scale: custom when
// positive, otherwise the dataset's global maximum magnitude. A dataset at
// rest yields 1 so the scale never collapses.
func ColorScale(custom float64, ds *field.Dataset) float64 {
	if custom > 0 {
		return custom
	}
	if m := ds.MaxMagnitude(); m > 0 {
		return m
	}
	return 1
}

var (
	fontOnce sync.Once
	fontSrc  *text.FontSource
	fontErr  error
)

func defaultFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSrc, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSrc, fontErr
}

// FrameRenderer draws one image per dataset frame.
type FrameRenderer struct {
	ds     *field.Dataset
	opts   FrameOptions
	vmax   float64
	lay    layout
	shades []gg.RGBA
	title  text.Face
	label  text.Face
}

func NewFrameRenderer(ds *field.Dataset, opts FrameOptions) (*FrameRenderer, error) {
	if ds.Len() == 0 {
		return nil, field.ErrNoFrames
	}
	if opts.Width <= 0 {
		opts.Width = DefaultFrameWidth
	}
	if opts.QuiverGrid <= 0 {
		opts.QuiverGrid = DefaultQuiverGrid
	}
	if opts.Colormap == nil {
		cm, err := ColormapByName("RdBu_r")
		if err != nil {
			return nil, err
		}
		opts.Colormap = cm
	}

	src, err := defaultFont()
	if err != nil {
		return nil, err
	}

	r := &FrameRenderer{
		ds:   ds,
		opts: opts,
		vmax: ColorScale(opts.VMax, ds),
		lay:  computeLayout(ds.Width, ds.Height, opts.Width, opts.ShowColorbar),
	}
	r.shades = make([]gg.RGBA, len(opts.Colormap.lut))
	for i, c := range opts.Colormap.lut {
		r.shades[i] = gg.FromColor(c)
	}
	r.title = src.Face(r.lay.fontSize)
	r.label = src.Face(math.Max(8, r.lay.fontSize*0.75))
	return r, nil
}

// VMax is the colour-scale bound in use.
func (r *FrameRenderer) VMax() float64 { return r.vmax }

// Size is the pixel size of every frame.
func (r *FrameRenderer) Size() (int, int) { return r.lay.width, r.lay.height }

func (r *FrameRenderer) Len() int { return r.ds.Len() }

func (r *FrameRenderer) shade(t float64) gg.RGBA {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t >= 1 {
		return r.shades[len(r.shades)-1]
	}
	i := int(t * float64(len(r.shades)))
	if i >= len(r.shades) {
		i = len(r.shades) - 1
	}
	return r.shades[i]
}

// Render draws frame: heat map, axes frame, optional colorbar, optional
// quiver overlay and the step title.
func (r *FrameRenderer) Render(frame int) (*image.RGBA, error) {
	dc := gg.NewContext(r.lay.width, r.lay.height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	r.drawHeatMap(dc, frame)

	img := r.lay.img
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(float64(img.Min.X)-0.5, float64(img.Min.Y)-0.5, float64(img.Dx())+1, float64(img.Dy())+1)
	if err := dc.Stroke(); err != nil {
		return nil, err
	}

	if r.opts.ShowColorbar {
		if err := r.drawColorbar(dc); err != nil {
			return nil, err
		}
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	out := toRGBA(dc.Image())

	if r.opts.ShowVectors {
		if err := r.overlayQuiver(out, frame); err != nil {
			return nil, err
		}
	}
	if err := r.drawTitle(out, "Step "+r.ds.Steps[frame]); err != nil {
		return nil, err
	}
	return out, nil
}

// overlayQuiver draws the arrows on a transparent layer and composites
// only the part inside the axes box.
func (r *FrameRenderer) overlayQuiver(out *image.RGBA, frame int) error {
	qc := gg.NewContext(r.lay.width, r.lay.height)
	defer qc.Close()
	if err := r.drawQuiver(qc, frame); err != nil {
		return err
	}
	if err := qc.FlushGPU(); err != nil {
		return err
	}
	img := r.lay.img
	xdraw.Draw(out, img, qc.Image(), img.Min, xdraw.Over)
	return nil
}

// drawTitle renders label on a scratch layer, then places its ink centred
// over the axes box with the lowest inked row at titleY.
func (r *FrameRenderer) drawTitle(out *image.RGBA, label string) error {
	pad := int(math.Ceil(2 * r.lay.fontSize))
	tc := gg.NewContext(r.lay.width, 3*pad)
	defer tc.Close()
	tc.SetFont(r.title)
	tc.SetRGB(0, 0, 0)
	tc.DrawStringAnchored(label, float64(r.lay.img.Min.X+r.lay.img.Max.X)/2, float64(pad), 0.5, 0)
	if err := tc.FlushGPU(); err != nil {
		return err
	}
	src := tc.Image()
	ink := inkBounds(src)
	if ink.Empty() {
		return nil
	}
	bottom := int(r.lay.titleY)
	dst := image.Rect(ink.Min.X, bottom-ink.Dy(), ink.Max.X, bottom).Intersect(out.Bounds())
	if dst.Empty() {
		return nil
	}
	sp := image.Pt(dst.Min.X, ink.Max.Y-(bottom-dst.Min.Y))
	xdraw.Draw(out, dst, src, sp, xdraw.Over)
	return nil
}

// inkBounds is the smallest rectangle holding every non-transparent pixel.
func inkBounds(img image.Image) image.Rectangle {
	b := img.Bounds()
	ink := image.Rectangle{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				continue
			}
			ink = ink.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return ink
}

func (r *FrameRenderer) drawHeatMap(dc *gg.Context, frame int) {
	mag := r.ds.Magnitude[frame]
	img := r.lay.img
	iw, ih := img.Dx(), img.Dy()
	for py := 0; py < ih; py++ {
		row := py * r.ds.Height / ih
		for px := 0; px < iw; px++ {
			col := px * r.ds.Width / iw
			dc.SetPixel(img.Min.X+px, img.Min.Y+py, r.shade(mag.At(row, col)/r.vmax))
		}
	}
}

func (r *FrameRenderer) drawColorbar(dc *gg.Context) error {
	cb := r.lay.cbar
	h := cb.Dy()
	for py := 0; py < h; py++ {
		c := r.shade(1 - (float64(py)+0.5)/float64(h))
		for px := cb.Min.X; px < cb.Max.X; px++ {
			dc.SetPixel(px, cb.Min.Y+py, c)
		}
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(float64(cb.Min.X)-0.5, float64(cb.Min.Y)-0.5, float64(cb.Dx())+1, float64(h)+1)
	if err := dc.Stroke(); err != nil {
		return err
	}

	dc.SetFont(r.label)
	const ticks = 4
	for k := 0; k <= ticks; k++ {
		frac := float64(k) / ticks
		y := float64(cb.Max.Y) - frac*float64(h)
		x := float64(cb.Max.X)
		dc.DrawLine(x, y, x+3, y)
		if err := dc.Stroke(); err != nil {
			return err
		}
		label := strconv.FormatFloat(frac*r.vmax, 'g', 3, 64)
		dc.DrawStringAnchored(label, x+5, y, 0, 0.35)
	}
	return nil
}

func (r *FrameRenderer) drawQuiver(dc *gg.Context, frame int) error {
	ux, uy := r.ds.UX[frame], r.ds.UY[frame]
	img := r.lay.img
	scale := float64(img.Dx()) / float64(r.ds.Width)
	unit := float64(img.Dx()) / quiverScale
	shaft := math.Max(1, shaftFrac*float64(img.Dx()))
	longest := math.Hypot(float64(img.Dx()), float64(img.Dy()))

	dc.SetRGB(0, 0, 0)
	for _, y := range samplePositions(r.ds.Height, r.opts.QuiverGrid) {
		for _, x := range samplePositions(r.ds.Width, r.opts.QuiverGrid) {
			cx := float64(img.Min.X) + (float64(x)+0.5)*scale
			cy := float64(img.Min.Y) + (float64(y)+0.5)*scale
			if err := drawArrow(dc, cx, cy, ux.At(y, x), uy.At(y, x), unit, shaft, longest); err != nil {
				return err
			}
		}
	}
	return nil
}

// drawArrow draws a vector anchored at its tail. Rows grow downward, so a
// positive vy points down the image. Arrows longer than longest are cut
// there; their tips fall outside the axes box either way.
func drawArrow(dc *gg.Context, cx, cy, vx, vy, unit, shaft, longest float64) error {
	speed := math.Hypot(vx, vy)
	length := speed * unit
	if !(length >= shaft) || math.IsInf(length, 0) {
		return nil
	}
	length = math.Min(length, longest)
	dx, dy := vx/speed, vy/speed
	tipX, tipY := cx+dx*length, cy+dy*length

	headLen, headHalf := headLength*shaft, headWidth*shaft/2
	if headLen > length {
		headHalf *= length / headLen
		headLen = length
	}
	baseX, baseY := tipX-dx*headLen, tipY-dy*headLen

	if length > headLen {
		dc.SetLineWidth(shaft)
		dc.DrawLine(cx, cy, baseX, baseY)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}

	nx, ny := -dy, dx
	dc.MoveTo(tipX, tipY)
	dc.LineTo(baseX+nx*headHalf, baseY+ny*headHalf)
	dc.LineTo(baseX-nx*headHalf, baseY-ny*headHalf)
	dc.ClosePath()
	return dc.Fill()
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	xdraw.Draw(rgba, b, img, b.Min, xdraw.Src)
	return rgba
}
