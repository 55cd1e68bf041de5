package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/lbmviz/internal/config"
	"github.com/san-kum/lbmviz/internal/viz"
)

var (
	configFile    string
	outDir        string
	writeManifest bool

	// lift-drag
	plotFormat string
	asciiPlot  bool

	// mask
	maskPreview bool

	// movie
	showVectors  bool
	vmax         float64
	showColorbar bool
	tight        bool
	preset       string
	fps          int
	palette      string

	// export
	exportFormat string
	exportOut    string
)

// main runs the lbmviz CLI and exits with status 1 on any error, usage
// errors included.
func main() {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.Error.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lbmviz",
		Short:         "lattice-Boltzmann output visualizer",
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// arguments are valid by now; later failures are not usage errors
			cmd.SilenceUsage = true
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", config.DefaultOutputDir, "output directory")
	rootCmd.PersistentFlags().BoolVar(&writeManifest, "manifest", false, "write a JSON manifest next to each artifact")

	liftDragCmd := &cobra.Command{
		Use:   "lift-drag [file]",
		Short: "plot drag and lift against frame",
		Args:  cobra.ExactArgs(1),
		RunE:  runLiftDrag,
	}
	liftDragCmd.Flags().StringVar(&plotFormat, "format", config.DefaultPlotFormat, "plot format (png|svg)")
	liftDragCmd.Flags().BoolVar(&asciiPlot, "ascii", false, "also print a terminal chart")

	maskCmd := &cobra.Command{
		Use:   "mask [file]",
		Short: "rasterize a point mask to output.png",
		Args:  cobra.ExactArgs(1),
		RunE:  runMask,
	}
	maskCmd.Flags().BoolVar(&maskPreview, "preview", false, "print a Braille preview")

	movieCmd := &cobra.Command{
		Use:   "movie [file]",
		Short: "animate a velocity field as a GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  runMovie,
	}
	movieCmd.Flags().BoolVar(&showVectors, "vectors", false, "display velocity vectors")
	movieCmd.Flags().Float64Var(&vmax, "vmax", config.DefaultVMax, "maximum value for color scale")
	movieCmd.Flags().BoolVar(&showColorbar, "colorbar", false, "display colorbar")
	movieCmd.Flags().BoolVar(&tight, "tight", true, "use tight layout (accepted, no effect)")
	movieCmd.Flags().StringVar(&preset, "preset", "", "use render preset")
	movieCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	movieCmd.Flags().StringVar(&palette, "palette", config.DefaultPalette, "colormap")

	previewCmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "browse velocity field frames in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	previewCmd.Flags().Float64Var(&vmax, "vmax", config.DefaultVMax, "maximum value for color scale")
	previewCmd.Flags().StringVar(&palette, "palette", config.DefaultPalette, "colormap")

	statsCmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "per-frame speed and vorticity summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "export a velocity field as JSON or CBOR",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format (json|cbor)")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output path (default stdout)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded artifacts",
		Args:  cobra.NoArgs,
		RunE:  listArtifacts,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list movie render presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(liftDragCmd, maskCmd, movieCmd, previewCmd, statsCmd, exportCmd, listCmd, presetsCmd)
	return rootCmd
}

// loadConfig returns the defaults, or the --config file over them, with
// the global flags applied when given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cmd.Flags().Changed("out") || cfg.OutputDir == "" {
		cfg.OutputDir = outDir
	}
	if cmd.Flags().Changed("manifest") {
		cfg.WriteManifest = writeManifest
	}
	return cfg, nil
}
