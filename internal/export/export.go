// Package export dumps a parsed field dataset as JSON or CBOR.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/san-kum/lbmviz/internal/field"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatCBOR:
		return f, nil
	}
	return "", fmt.Errorf("export: unknown format %q (want json or cbor)", s)
}

// Data is the exported form of a dataset. Grids are flattened row-major.
type Data struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Frames []Frame `json:"frames"`
}

type Frame struct {
	Step          string    `json:"step"`
	MaxMagnitude  float64   `json:"max_magnitude"`
	MeanMagnitude float64   `json:"mean_magnitude"`
	PeakVorticity float64   `json:"peak_vorticity"`
	UX            []float64 `json:"ux"`
	UY            []float64 `json:"uy"`
	Magnitude     []float64 `json:"magnitude"`
}

func FromDataset(ds *field.Dataset) *Data {
	data := &Data{
		Width:  ds.Width,
		Height: ds.Height,
		Frames: make([]Frame, ds.Len()),
	}
	for i, st := range ds.Stats() {
		data.Frames[i] = Frame{
			Step:          st.Step,
			MaxMagnitude:  st.MaxMagnitude,
			MeanMagnitude: st.MeanMagnitude,
			PeakVorticity: st.PeakVorticity,
			UX:            ds.UX[i].Data,
			UY:            ds.UY[i].Data,
			Magnitude:     ds.Magnitude[i].Data,
		}
	}
	return data
}

// Dataset rebuilds the velocity stacks. Magnitudes are recomputed rather
// than trusted from the export.
func (d *Data) Dataset() (*field.Dataset, error) {
	ds := field.NewDataset(d.Width, d.Height)
	for i, f := range d.Frames {
		ux, err := field.Reshape(f.UX, d.Height, d.Width)
		if err != nil {
			return nil, fmt.Errorf("frame %d ux: %w", i, err)
		}
		uy, err := field.Reshape(f.UY, d.Height, d.Width)
		if err != nil {
			return nil, fmt.Errorf("frame %d uy: %w", i, err)
		}
		if err := ds.Append(field.Snapshot{Step: f.Step, UX: ux, UY: uy}); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func Encode(w io.Writer, ds *field.Dataset, format Format) error {
	data := FromDataset(ds)
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case FormatCBOR:
		return cbor.NewEncoder(w).Encode(data)
	}
	return fmt.Errorf("export: unknown format %q", format)
}

func Decode(r io.Reader, format Format) (*Data, error) {
	var data Data
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return nil, err
		}
	case FormatCBOR:
		if err := cbor.NewDecoder(r).Decode(&data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("export: unknown format %q", format)
	}
	return &data, nil
}

// WriteFile encodes ds to path, or to stdout when path is empty.
func WriteFile(path string, ds *field.Dataset, format Format) error {
	if path == "" {
		return Encode(os.Stdout, ds, format)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(file, ds, format); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
