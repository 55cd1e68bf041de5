package field

import (
	"gonum.org/v1/gonum/floats"
)

// Grid is a row-major 2D array of Rows x Cols values.
type Grid struct {
	Rows, Cols int
	Data       []float64
}

func NewGrid(rows, cols int) Grid {
	return Grid{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// Reshape views flat as a rows x cols grid. It fails with a *ShapeError
// unless len(flat) is exactly rows*cols; no dimension is ever inferred.
func Reshape(flat []float64, rows, cols int) (Grid, error) {
	if rows < 0 || cols < 0 || len(flat) != rows*cols {
		return Grid{}, &ShapeError{Rows: rows, Cols: cols, Got: len(flat)}
	}
	return Grid{Rows: rows, Cols: cols, Data: flat}, nil
}

func (g Grid) At(i, j int) float64 {
	return g.Data[i*g.Cols+j]
}

func (g Grid) Set(i, j int, v float64) {
	g.Data[i*g.Cols+j] = v
}

func (g Grid) Row(i int) []float64 {
	return g.Data[i*g.Cols : (i+1)*g.Cols]
}

// Max returns the largest value, or 0 for an empty grid.
func (g Grid) Max() float64 {
	if len(g.Data) == 0 {
		return 0
	}
	return floats.Max(g.Data)
}

// AbsMax returns the largest absolute value, or 0 for an empty grid.
func (g Grid) AbsMax() float64 {
	if len(g.Data) == 0 {
		return 0
	}
	return floats.Norm(g.Data, inf)
}
