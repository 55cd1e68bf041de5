package mask

import "github.com/san-kum/lbmviz/internal/viz"

// DefaultPreviewCols bounds the terminal width of Braille.
const DefaultPreviewCols = 80

// Braille renders the canvas as Braille dots at most maxCols characters
// wide. Larger canvases are downsampled; a dot is set when any black pixel
// falls in its block.
func (c *Canvas) Braille(maxCols int) string {
	if maxCols <= 0 {
		maxCols = DefaultPreviewCols
	}
	w, h := c.Width(), c.Height()
	step := 1
	for (w+step-1)/step > maxCols*2 {
		step++
	}

	dotsW, dotsH := (w+step-1)/step, (h+step-1)/step
	bc := viz.NewCanvas((dotsW+1)/2, (dotsH+3)/4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c.IsBlack(x, y) {
				bc.Set(x/step, y/step)
			}
		}
	}
	return bc.String()
}
