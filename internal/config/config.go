package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputDir  = "outputs"
	DefaultVMax       = 0.3
	DefaultFPS        = 10
	DefaultFrameWidth = 800
	DefaultQuiverGrid = 15
	DefaultPalette    = "RdBu_r"
	DefaultPlotWidth  = 640
	DefaultPlotHeight = 480
	DefaultPlotFormat = "png"
	DefaultMaskOutput = "output.png"
)

type Config struct {
	OutputDir     string       `yaml:"output_dir"`
	WriteManifest bool         `yaml:"write_manifest"`
	Movie         MovieConfig  `yaml:"movie"`
	Series        SeriesConfig `yaml:"series"`
	Mask          MaskConfig   `yaml:"mask"`
}

type MovieConfig struct {
	VMax       float64 `yaml:"vmax"`
	FPS        int     `yaml:"fps"`
	FrameWidth int     `yaml:"frame_width"`
	QuiverGrid int     `yaml:"quiver_grid"`
	Vectors    bool    `yaml:"vectors"`
	Colorbar   bool    `yaml:"colorbar"`
	Tight      bool    `yaml:"tight"`
	Palette    string  `yaml:"palette"`
}

type SeriesConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Format string `yaml:"format"`
}

type MaskConfig struct {
	Output string `yaml:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		Movie:     DefaultMovie(),
		Series: SeriesConfig{
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
			Format: DefaultPlotFormat,
		},
		Mask: MaskConfig{Output: DefaultMaskOutput},
	}
}

func DefaultMovie() MovieConfig {
	return MovieConfig{
		VMax:       DefaultVMax,
		FPS:        DefaultFPS,
		FrameWidth: DefaultFrameWidth,
		QuiverGrid: DefaultQuiverGrid,
		Tight:      true,
		Palette:    DefaultPalette,
	}
}

// Load reads a YAML file over the defaults, so keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyPreset replaces the movie settings with the named preset. It reports
// false when no such preset exists.
func (c *Config) ApplyPreset(name string) bool {
	p := GetPreset(name)
	if p == nil {
		return false
	}
	c.Movie = *p
	return true
}
