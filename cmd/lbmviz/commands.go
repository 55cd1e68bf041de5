package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/lbmviz/internal/config"
	"github.com/san-kum/lbmviz/internal/export"
	"github.com/san-kum/lbmviz/internal/field"
	"github.com/san-kum/lbmviz/internal/mask"
	"github.com/san-kum/lbmviz/internal/output"
	"github.com/san-kum/lbmviz/internal/render"
	"github.com/san-kum/lbmviz/internal/series"
	"github.com/san-kum/lbmviz/internal/viz"
)

const (
	sparkWidth  = 60
	sparkHeight = 12
)

func runLiftDrag(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Series.Format = plotFormat
	}
	format, err := series.ParseFormat(cfg.Series.Format)
	if err != nil {
		return err
	}

	s, err := series.LoadFile(args[0])
	if err != nil {
		return err
	}

	dir := output.New(cfg.OutputDir)
	if err := dir.Init(); err != nil {
		return err
	}
	path := dir.Stamped("lift_drag", string(format))

	opts := series.PlotOptions{Width: cfg.Series.Width, Height: cfg.Series.Height, Format: format}
	if err := writeFile(path, func(f *os.File) error { return series.Plot(f, s, opts) }); err != nil {
		return err
	}

	fmt.Printf("Plot saved to %s\n", viz.Path.Render(path))
	if asciiPlot {
		fmt.Println(series.Sparkline(s, sparkWidth, sparkHeight))
	}

	return record(cfg, dir, output.Manifest{
		Artifact: path,
		Kind:     "lift-drag",
		Input:    args[0],
		Frames:   s.Len(),
		Settings: map[string]string{"format": string(format)},
	})
}

func runMask(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ps, err := mask.ParseFile(args[0])
	if err != nil {
		return err
	}
	canvas := mask.Rasterize(ps)
	if err := canvas.SavePNG(cfg.Mask.Output); err != nil {
		return err
	}

	fmt.Printf("Image created with dimensions %dx%d and saved as '%s'\n", ps.Width, ps.Height, cfg.Mask.Output)
	if maskPreview {
		fmt.Print(canvas.Braille(mask.DefaultPreviewCols))
	}
	return nil
}

// movieSettings resolves movie options: config file first, then --preset,
// then explicitly given flags.
func movieSettings(cmd *cobra.Command, cfg *config.Config) (config.MovieConfig, error) {
	if preset != "" && !cfg.ApplyPreset(preset) {
		return config.MovieConfig{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	mc := cfg.Movie
	flags := cmd.Flags()
	if flags.Changed("vectors") {
		mc.Vectors = showVectors
	}
	if flags.Changed("vmax") {
		mc.VMax = vmax
	}
	if flags.Changed("colorbar") {
		mc.Colorbar = showColorbar
	}
	if flags.Changed("tight") {
		mc.Tight = tight
	}
	if flags.Changed("fps") {
		mc.FPS = fps
	}
	if flags.Changed("palette") {
		mc.Palette = palette
	}
	return mc, nil
}

func runMovie(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mc, err := movieSettings(cmd, cfg)
	if err != nil {
		return err
	}
	if _, err := render.FrameDelay(mc.FPS); err != nil {
		return err
	}
	cm, err := render.ColormapByName(mc.Palette)
	if err != nil {
		return err
	}

	ds, err := field.LoadFile(args[0], field.WithProgress(func(frame int, step string) {
		fmt.Printf("Loaded frame %d\n", frame)
	}))
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return fmt.Errorf("%s: %w", args[0], field.ErrNoFrames)
	}

	dir := output.New(cfg.OutputDir)
	if err := dir.Init(); err != nil {
		return err
	}
	path := dir.Stamped("movie", "gif")

	fmt.Printf("Saving animation to %s...\n", path)
	fmt.Printf("Settings: vectors=%t, vmax=%s, colorbar=%t, tight=%t\n", mc.Vectors, formatVMax(mc.VMax), mc.Colorbar, mc.Tight)

	opts := render.MovieOptions{
		Frame: render.FrameOptions{
			VMax:         mc.VMax,
			ShowVectors:  mc.Vectors,
			ShowColorbar: mc.Colorbar,
			Width:        mc.FrameWidth,
			QuiverGrid:   mc.QuiverGrid,
			Colormap:     cm,
		},
		FPS: mc.FPS,
	}
	if err := render.WriteMovie(path, ds, opts, nil); err != nil {
		return err
	}
	fmt.Printf("Animation saved to %s\n", viz.Path.Render(path))

	return record(cfg, dir, output.Manifest{
		Artifact: path,
		Kind:     "movie",
		Input:    args[0],
		Frames:   ds.Len(),
		Settings: map[string]string{
			"vectors":  strconv.FormatBool(mc.Vectors),
			"vmax":     formatVMax(mc.VMax),
			"colorbar": strconv.FormatBool(mc.Colorbar),
			"tight":    strconv.FormatBool(mc.Tight),
			"fps":      strconv.Itoa(mc.FPS),
			"palette":  mc.Palette,
		},
	})
}

func formatVMax(v float64) string {
	if v <= 0 {
		return "auto"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mc := cfg.Movie
	if cmd.Flags().Changed("vmax") {
		mc.VMax = vmax
	}
	if cmd.Flags().Changed("palette") {
		mc.Palette = palette
	}
	cm, err := render.ColormapByName(mc.Palette)
	if err != nil {
		return err
	}

	ds, err := field.LoadFile(args[0])
	if err != nil {
		return err
	}
	return viz.RunPreview(ds, cm, mc.VMax)
}

func runStats(cmd *cobra.Command, args []string) error {
	ds, err := field.LoadFile(args[0])
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		fmt.Println("no frames found")
		return nil
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s: %dx%d lattice, %d frames", args[0], ds.Width, ds.Height, ds.Len())))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tSTEP\tMAX |U|\tMEAN |U|\tPEAK |W|")
	for _, st := range ds.Stats() {
		fmt.Fprintf(w, "%d\t%s\t%.6f\t%.6f\t%.6f\n",
			st.Frame,
			st.Step,
			st.MaxMagnitude,
			st.MeanMagnitude,
			st.PeakVorticity,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println(viz.Muted.Render(fmt.Sprintf("global max |u|: %.6f", ds.MaxMagnitude())))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	ds, err := field.LoadFile(args[0])
	if err != nil {
		return err
	}
	if err := export.WriteFile(exportOut, ds, format); err != nil {
		return err
	}
	if exportOut != "" {
		fmt.Printf("exported %d frames to %s\n", ds.Len(), viz.Path.Render(exportOut))
	}
	return nil
}

func listArtifacts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	manifests, err := output.New(cfg.OutputDir).List()
	if err != nil {
		return err
	}

	if len(manifests) == 0 {
		fmt.Println("no artifacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ARTIFACT\tKIND\tINPUT\tFRAMES\tCREATED")
	for _, m := range manifests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			m.Artifact,
			m.Kind,
			m.Input,
			m.Frames,
			m.Created.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("movie presets:")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Printf("  %-10s %s\n", name, viz.Muted.Render(fmt.Sprintf(
			"vectors=%t vmax=%s colorbar=%t fps=%d width=%d palette=%s",
			p.Vectors, formatVMax(p.VMax), p.Colorbar, p.FPS, p.FrameWidth, p.Palette)))
	}
	return nil
}

func record(cfg *config.Config, dir *output.Dir, m output.Manifest) error {
	if !cfg.WriteManifest {
		return nil
	}
	path, err := dir.Record(m)
	if err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	fmt.Println(viz.Muted.Render("manifest: " + path))
	return nil
}

// writeFile creates path and hands it to write, closing it afterwards.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
