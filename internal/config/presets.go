package config

import "sort"

// Presets are named movie render settings.
var Presets = map[string]*MovieConfig{
	"default": {
		VMax: 0.3, FPS: 10, FrameWidth: 800, QuiverGrid: 15, Tight: true, Palette: "RdBu_r",
	},
	"vectors": {
		VMax: 0.3, FPS: 10, FrameWidth: 800, QuiverGrid: 15, Vectors: true, Colorbar: true, Tight: true, Palette: "RdBu_r",
	},
	"hires": {
		VMax: 0.3, FPS: 10, FrameWidth: 1600, QuiverGrid: 25, Colorbar: true, Tight: true, Palette: "RdBu_r",
	},
	"autoscale": {
		FPS: 10, FrameWidth: 800, QuiverGrid: 15, Colorbar: true, Tight: true, Palette: "RdBu_r",
	},
	"sci": {
		VMax: 0.3, FPS: 15, FrameWidth: 800, QuiverGrid: 15, Colorbar: true, Tight: true, Palette: "sci",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *MovieConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
