package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ironsheep/hotspot-map/internal/config"
	"github.com/ironsheep/hotspot-map/internal/log"
	"github.com/ironsheep/hotspot-map/internal/plot"
)

// options holds the parsed flags. Settings flags only override the config
// file when they were given on the command line.
type options struct {
	hotspotLoc bool
	borders    string
	configPath string
	report     bool
	dpi        float64
	graticule  float64
	verbose    bool
}

// NewRootCmd creates the root command, which renders one map.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "hotspot-map <image-file> <metadata-file> [-l|--hotspotloc]",
		Short: "Plot fire hotspots over a GeoTIFF and count them per country",
		Long: `hotspot-map overlays the hotspot detections of a netCDF-4/HDF5 file
(FP_latitude/FP_longitude) onto a georeferenced GeoTIFF, draws national
borders, and writes <image>-hotspot.png with a per-country count table.

Single-band rasters are drawn in grayscale (IR), multi-band rasters in
color. With -l the map also lists every hotspot with its country.`,
		Example: `  hotspot-map storm.tif VNP14IMG.nc
  hotspot-map storm.tif VNP14IMG.nc -l --borders /data/TM_WORLD_BORDERS-0.3.shp`,
		Version: getVersion(),
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: expected 2 arguments, got %d", ErrUsage, len(args))
			}
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.NewLogger(cmd.ErrOrStderr(), opts.verbose)
			cfg, err := loadConfig(cmd, opts, logger)
			if err != nil {
				return err
			}

			_, err = plot.New(cfg, logger).Run(cmd.Context(), plot.Request{
				ImagePath:        args[0],
				HotspotPath:      args[1],
				HotspotLocations: opts.hotspotLoc,
			})
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: ./"+config.DefaultConfigFile+", then $XDG_CONFIG_HOME/"+config.AppName+"/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.borders, "borders", "", "Country borders shapefile (default "+config.Default().Borders.Path+")")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.Flags().BoolVarP(&opts.hotspotLoc, "hotspotloc", "l", false, "Add a table with the location and country of every hotspot")
	cmd.Flags().BoolVar(&opts.report, "report", false, "Also write a Markdown report next to the map")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", config.DefaultDPI, "Output resolution in dots per inch")
	cmd.Flags().Float64Var(&opts.graticule, "graticule", 0, "Draw meridians and parallels every DEG degrees (0 = off)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	cmd.AddCommand(NewServeCmd(opts))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(cmd *cobra.Command, opts *options, logger *slog.Logger) (*config.Config, error) {
	cfg, path, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}

	flags := cmd.Flags()
	if flags.Changed("borders") {
		cfg.Borders.Path = opts.borders
	}
	if flags.Changed("report") {
		cfg.Output.Report = opts.report
	}
	if flags.Changed("dpi") {
		cfg.Canvas.DPI = opts.dpi
	}
	if flags.Changed("graticule") {
		cfg.Style.Graticule = opts.graticule
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run executes the command line and returns the process exit code. Errors
// are reported as a single line on stderr.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}

	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(os.Stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, message(err))
		return 1
	}
	return 0
}
