package field

import "math"

var inf = math.Inf(1)

// Snapshot is one simulation step: an opaque step label and the x and y
// velocity grids, both Height rows by Width columns.
type Snapshot struct {
	Step string
	UX   Grid
	UY   Grid
}

// Magnitude returns sqrt(ux^2 + uy^2) per cell.
func (s Snapshot) Magnitude() Grid {
	return magnitude(s.UX, s.UY)
}

func magnitude(ux, uy Grid) Grid {
	m := NewGrid(ux.Rows, ux.Cols)
	for k := range m.Data {
		x, y := ux.Data[k], uy.Data[k]
		m.Data[k] = math.Sqrt(x*x + y*y)
	}
	return m
}

// Curl approximates vorticity with central differences on interior cells:
//
//	curl[i,j] = (uy[i,j+1] - uy[i,j-1]) - (ux[i+1,j] - ux[i-1,j])
//
// The 1-cell border is excluded, so the result is (rows-2) x (cols-2) and
// empty when either dimension is below 3. Differences are not divided by
// the grid spacing.
func (s Snapshot) Curl() Grid {
	rows, cols := s.UX.Rows-2, s.UX.Cols-2
	if rows <= 0 || cols <= 0 {
		return Grid{}
	}
	c := NewGrid(rows, cols)
	for i := 1; i <= rows; i++ {
		for j := 1; j <= cols; j++ {
			dvdx := s.UY.At(i, j+1) - s.UY.At(i, j-1)
			dudy := s.UX.At(i+1, j) - s.UX.At(i-1, j)
			c.Set(i-1, j-1, dvdx-dudy)
		}
	}
	return c
}
