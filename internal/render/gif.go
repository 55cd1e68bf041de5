package render

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/san-kum/lbmviz/internal/field"
)

const (
	DefaultFPS = 10

	paletteRamp = 224
	grayLevels  = 256 - paletteRamp
)

// Palette is the fixed GIF palette: an evenly sampled colormap ramp
// followed by a gray ramp from black to white for text, frames and arrows.
func Palette(cm *Colormap) color.Palette {
	pal := make(color.Palette, 0, 256)
	for _, c := range cm.Sample(paletteRamp) {
		pal = append(pal, c)
	}
	for i := 0; i < grayLevels; i++ {
		v := uint8(i * 255 / (grayLevels - 1))
		pal = append(pal, color.RGBA{R: v, G: v, B: v, A: 0xff})
	}
	return pal
}

// FrameDelay converts a frame rate to GIF delay units of 1/100 s.
func FrameDelay(fps int) (int, error) {
	if fps <= 0 {
		return 0, fmt.Errorf("render: frame rate must be positive, got %d", fps)
	}
	return int(math.Max(1, math.Round(100/float64(fps)))), nil
}

// EncodeGIF renders every frame and writes a play-once animation. onFrame,
// when set, is called after each frame is rendered.
func EncodeGIF(w io.Writer, r *FrameRenderer, fps int, onFrame func(frame int)) error {
	delay, err := FrameDelay(fps)
	if err != nil {
		return err
	}

	pal := Palette(r.opts.Colormap)
	anim := gif.GIF{LoopCount: -1}
	for i := 0; i < r.Len(); i++ {
		img, err := r.Render(i)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		anim.Image = append(anim.Image, quantize(img, pal))
		anim.Delay = append(anim.Delay, delay)
		if onFrame != nil {
			onFrame(i)
		}
	}
	return gif.EncodeAll(w, &anim)
}

func quantize(img image.Image, pal color.Palette) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, pal)
	xdraw.Draw(p, b, img, b.Min, xdraw.Src)
	return p
}

type MovieOptions struct {
	Frame FrameOptions
	FPS   int
}

func DefaultMovieOptions() MovieOptions {
	return MovieOptions{Frame: DefaultFrameOptions(), FPS: DefaultFPS}
}

// WriteMovie renders ds to a GIF at path. A failed encode may leave a
// partial file behind.
func WriteMovie(path string, ds *field.Dataset, opts MovieOptions, onFrame func(frame int)) error {
	r, err := NewFrameRenderer(ds, opts.Frame)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeGIF(f, r, opts.FPS, onFrame); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
