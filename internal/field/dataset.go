package field

// Dataset holds every snapshot of a field file as three parallel stacks
// indexed [frame][row][col], plus the step labels. All grids share the
// header's Width and Height.
type Dataset struct {
	Width, Height int
	Steps         []string
	Magnitude     []Grid
	UX            []Grid
	UY            []Grid
}

func NewDataset(width, height int) *Dataset {
	return &Dataset{Width: width, Height: height}
}

func (d *Dataset) Len() int {
	return len(d.Steps)
}

// Append adds a snapshot and its magnitude. The snapshot's grids must
// already have the dataset's shape.
func (d *Dataset) Append(s Snapshot) error {
	for _, g := range []Grid{s.UX, s.UY} {
		if g.Rows != d.Height || g.Cols != d.Width {
			return &ShapeError{Rows: d.Height, Cols: d.Width, Got: len(g.Data)}
		}
	}
	d.Steps = append(d.Steps, s.Step)
	d.UX = append(d.UX, s.UX)
	d.UY = append(d.UY, s.UY)
	d.Magnitude = append(d.Magnitude, s.Magnitude())
	return nil
}

func (d *Dataset) Snapshot(frame int) Snapshot {
	return Snapshot{Step: d.Steps[frame], UX: d.UX[frame], UY: d.UY[frame]}
}

// MaxMagnitude is the largest speed across all frames, 0 for no frames.
func (d *Dataset) MaxMagnitude() float64 {
	var m float64
	for i, g := range d.Magnitude {
		if v := g.Max(); i == 0 || v > m {
			m = v
		}
	}
	return m
}
