package field

import "gonum.org/v1/gonum/stat"

// FrameStats summarizes one snapshot.
type FrameStats struct {
	Frame         int
	Step          string
	MaxMagnitude  float64
	MeanMagnitude float64
	PeakVorticity float64
}

// Stats returns per-frame speed and vorticity summaries. PeakVorticity is
// the largest |curl| over interior cells.
func (d *Dataset) Stats() []FrameStats {
	out := make([]FrameStats, d.Len())
	for i := range out {
		mag := d.Magnitude[i]
		fs := FrameStats{
			Frame:         i,
			Step:          d.Steps[i],
			MaxMagnitude:  mag.Max(),
			PeakVorticity: d.Snapshot(i).Curl().AbsMax(),
		}
		if len(mag.Data) > 0 {
			fs.MeanMagnitude = stat.Mean(mag.Data, nil)
		}
		out[i] = fs
	}
	return out
}

// MaxSeries returns the per-frame maximum speed in frame order.
func (d *Dataset) MaxSeries() []float64 {
	out := make([]float64, d.Len())
	for i, g := range d.Magnitude {
		out[i] = g.Max()
	}
	return out
}
