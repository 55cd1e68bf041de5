package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/lbmviz/internal/field"
	"github.com/san-kum/lbmviz/internal/render"
)

const halfBlock = "▀"

// HeatMap draws g in at most maxCols x maxRows terminal cells. Each cell
// shows two grid rows: the upper half in the foreground colour and the
// lower half in the background. Sampling is nearest-cell with row 0 on
// top.
func HeatMap(g field.Grid, cm *render.Colormap, vmax float64, maxCols, maxRows int) string {
	if g.Rows == 0 || g.Cols == 0 || maxCols <= 0 || maxRows <= 0 {
		return ""
	}
	if vmax <= 0 {
		vmax = 1
	}

	cols, dots := fitGrid(g.Cols, g.Rows, maxCols, maxRows*2)
	rows := (dots + 1) / 2

	at := func(py, px int) lipgloss.Color {
		r := py * g.Rows / dots
		c := px * g.Cols / cols
		return hexColor(cm.At(g.At(r, c) / vmax))
	}

	var b strings.Builder
	for ty := 0; ty < rows; ty++ {
		for px := 0; px < cols; px++ {
			st := lipgloss.NewStyle().Foreground(at(2*ty, px))
			if 2*ty+1 < dots {
				st = st.Background(at(2*ty+1, px))
			}
			b.WriteString(st.Render(halfBlock))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// fitGrid scales a w x h grid into at most maxW x maxH samples, keeping
// the aspect ratio and never upsampling.
func fitGrid(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	sw := float64(maxW) / float64(w)
	sh := float64(maxH) / float64(h)
	s := sw
	if sh < s {
		s = sh
	}
	fw, fh := int(float64(w)*s), int(float64(h)*s)
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	return fw, fh
}
