package render

import (
	"image"
	"math"
)

// Figure geometry, as fractions of the frame: axes box placed at
// [left, bottom, width, height] = [0.02, 0.02, 0.96, 0.93].
const (
	axesLeft   = 0.02
	axesTop    = 0.05
	axesWidth  = 0.96
	axesHeight = 0.93

	cbarFrac   = 0.04
	cbarPad    = 0.03
	cbarLabels = 0.09

	minFrameHeight = 120

	// Rows left clear between the title ink and the axes box.
	titleGap = 3
)

type layout struct {
	width, height int
	img           image.Rectangle
	cbar          image.Rectangle
	scale         float64
	fontSize      float64
	titleY        float64
}

// computeLayout fixes every pixel extent from the grid shape and options
// alone, so all frames of one animation share the same geometry.
func computeLayout(gridW, gridH, frameW int, colorbar bool) layout {
	h := int(math.Round(float64(frameW) * float64(gridH) / float64(gridW)))
	if h < minFrameHeight {
		h = minFrameHeight
	}
	l := layout{width: frameW, height: h}
	l.fontSize = math.Min(18, math.Max(9, 0.03*float64(h)))

	// The axes box starts below a band tall enough for one title line.
	band := math.Ceil(1.5*l.fontSize) + titleGap
	ax := axesLeft * float64(frameW)
	ay := math.Max(axesTop*float64(h), band)
	aw := axesWidth * float64(frameW)
	ah := axesHeight * float64(h)
	if ay+ah > float64(h) {
		ah = float64(h) - ay
	}

	plotW := aw
	if colorbar {
		plotW = aw * (1 - cbarFrac - cbarPad - cbarLabels)
	}

	l.scale = math.Min(plotW/float64(gridW), ah/float64(gridH))
	iw := int(math.Max(1, math.Round(float64(gridW)*l.scale)))
	ih := int(math.Max(1, math.Round(float64(gridH)*l.scale)))
	x0 := int(math.Round(ax + (plotW-float64(iw))/2))
	y0 := int(math.Round(ay + (ah-float64(ih))/2))
	l.img = image.Rect(x0, y0, x0+iw, y0+ih)

	if colorbar {
		cx := l.img.Max.X + int(math.Round(cbarPad*aw))
		cw := int(math.Max(4, math.Round(cbarFrac*aw)))
		l.cbar = image.Rect(cx, y0, cx+cw, y0+ih)
	}

	// titleY is the lowest row the title ink may reach.
	l.titleY = float64(y0 - titleGap)
	return l
}

// samplePositions returns quiver sample indices along a dimension of n
// cells: stride n/grid (at least 1), starting at stride/2.
func samplePositions(n, grid int) []int {
	stride := n / grid
	if stride < 1 {
		stride = 1
	}
	var out []int
	for i := stride / 2; i < n; i += stride {
		out = append(out, i)
	}
	return out
}
