// Package plot renders a hotspot map: it loads the raster, the detections
// and the country borders, draws them onto a canvas with the two summary
// tables and writes the result next to the input image.
package plot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/hotspot-map/internal/borders"
	"github.com/ironsheep/hotspot-map/internal/config"
	"github.com/ironsheep/hotspot-map/internal/geotiff"
	"github.com/ironsheep/hotspot-map/internal/hotspot"
	"github.com/ironsheep/hotspot-map/internal/imaging"
	"github.com/ironsheep/hotspot-map/internal/report"
)

var graticuleStyle = imaging.LineStyle{Color: imaging.MustParseColor("gray"), Width: 1}

// OutputPath derives the map file name from the image path: everything
// before the first ".tif", then "-<suffix>.png".
func OutputPath(imagePath, suffix string) string {
	if suffix == "" {
		suffix = config.DefaultSuffix
	}
	base, _, _ := strings.Cut(imagePath, ".tif")
	return base + "-" + suffix + ".png"
}

// ReportPath is OutputPath with a .md extension.
func ReportPath(imagePath, suffix string) string {
	return strings.TrimSuffix(OutputPath(imagePath, suffix), ".png") + ".md"
}

// BordersLoader supplies the country dataset. *borders.Dataset values are
// immutable, so a loader may hand out the same dataset to many runs.
type BordersLoader interface {
	Load(path, nameField string) (*borders.Dataset, error)
}

// BordersLoaderFunc adapts a function to BordersLoader.
type BordersLoaderFunc func(path, nameField string) (*borders.Dataset, error)

// Load calls f.
func (f BordersLoaderFunc) Load(path, nameField string) (*borders.Dataset, error) {
	return f(path, nameField)
}

// Request names the inputs of one map.
type Request struct {
	ImagePath   string
	HotspotPath string

	// HotspotLocations adds the per-point table in the lower right corner.
	HotspotLocations bool
}

// Result describes a rendered map.
type Result struct {
	OutputPath string          `json:"output_path"`
	ReportPath string          `json:"report_path,omitempty"`
	Mode       string          `json:"mode"`
	Extent     geotiff.Extent  `json:"extent"`
	Hotspots   int             `json:"hotspots"`
	InFrame    int             `json:"in_frame"`
	Summary    hotspot.Summary `json:"summary"`
	Rows       []hotspot.Row   `json:"rows,omitempty"`
	Truncated  bool            `json:"truncated,omitempty"`
	Image      *image.RGBA     `json:"-"`
}

// Plotter renders maps with a fixed configuration.
type Plotter struct {
	cfg     *config.Config
	logger  *slog.Logger
	borders BordersLoader
}

// Option configures a Plotter.
type Option func(*Plotter)

// WithBordersLoader replaces the default loader, which reads the shapefile
// on every run.
func WithBordersLoader(l BordersLoader) Option {
	return func(p *Plotter) { p.borders = l }
}

// New returns a Plotter. cfg must already be validated.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Plotter {
	p := &Plotter{
		cfg:     cfg,
		logger:  logger,
		borders: BordersLoaderFunc(borders.Load),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run renders the map for req and writes it, plus the Markdown report when
// enabled. No output file is created if any input fails to load.
func (p *Plotter) Run(ctx context.Context, req Request) (*Result, error) {
	p.logger.Info("Plotting hotspots image")

	md, err := geotiff.ReadMetadata(req.ImagePath)
	if err != nil {
		return nil, err
	}
	ext, err := md.GeoExtent()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.ImagePath, err)
	}
	p.logger.Debug("raster metadata", "width", md.Width, "height", md.Height, "bands", md.Bands,
		"sample_format", md.SampleFormat, "extent", ext)

	in, err := p.load(ctx, req)
	if err != nil {
		return nil, err
	}

	style, err := p.style()
	if err != nil {
		return nil, err
	}

	canvas, err := imaging.NewCanvas(p.cfg.Canvas.SizeInches, p.cfg.Canvas.DPI, p.cfg.Style.FontSize)
	if err != nil {
		return nil, err
	}
	proj, err := imaging.NewProjection(ext, canvas.Axes)
	if err != nil {
		return nil, err
	}

	mode := imaging.DrawBase(canvas, proj, in.pixels, md.Bands)
	switch mode {
	case imaging.ModeColor:
		p.logger.Info("Plotting truecolor/RGB image")
	case imaging.ModeGray:
		p.logger.Info("Plotting IR image")
	}

	inFrame := imaging.DrawMarkers(canvas, proj, in.hotspots.Coords(), style.marker)

	rings := in.borders.RingsWithin(proj.Bound())
	lines := make([]orb.LineString, len(rings))
	for i, r := range rings {
		lines[i] = orb.LineString(r)
	}
	imaging.DrawPolylines(canvas, proj, lines, style.border)

	if p.cfg.Style.Graticule > 0 {
		imaging.DrawGraticule(canvas, proj, p.cfg.Style.Graticule, graticuleStyle)
	}

	countries := in.borders.ClassifyAll(in.hotspots)
	summary := hotspot.Summarize(countries)

	result := &Result{
		OutputPath: OutputPath(req.ImagePath, p.cfg.Output.Suffix),
		Mode:       mode.String(),
		Extent:     ext,
		Hotspots:   len(in.hotspots),
		InFrame:    inFrame,
		Summary:    summary,
		Image:      canvas.Img,
	}

	if req.HotspotLocations {
		rows, err := hotspot.Rows(in.hotspots, countries)
		if err != nil {
			return nil, err
		}
		cells := make([][]string, len(rows))
		for i, r := range rows {
			cells[i] = r.Cells()
		}
		layout := imaging.DrawTable(canvas, imaging.Table{
			ColLabels: hotspot.RowHeaders,
			Cells:     cells,
			ColWidth:  imaging.DefaultColumnWidth,
		}, imaging.LowerRight)
		if layout.Truncated() {
			p.logger.Warn("hotspot location table truncated to fit the image",
				"shown", layout.Rows, "total", layout.Total)
		}
		result.Rows = rows
		result.Truncated = layout.Truncated()
	}

	names := make([]string, len(summary.Counts))
	counts := make([][]string, len(summary.Counts))
	for i, c := range summary.Counts {
		names[i] = c.Country
		counts[i] = []string{fmt.Sprint(c.Count)}
	}
	imaging.DrawTable(canvas, imaging.Table{
		ColLabels: hotspot.CountHeaders,
		RowLabels: names,
		Cells:     counts,
		ColWidth:  imaging.DefaultColumnWidth,
	}, imaging.UpperRight)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := imaging.EncodePNG(result.OutputPath, canvas.Img); err != nil {
		return nil, err
	}
	p.logger.Debug("wrote map", "path", result.OutputPath, "hotspots", result.Hotspots, "countries", len(summary.Counts))

	if p.cfg.Output.Report {
		result.ReportPath = ReportPath(req.ImagePath, p.cfg.Output.Suffix)
		err := report.WriteFile(result.ReportPath, report.Report{
			ImagePath:   req.ImagePath,
			HotspotPath: req.HotspotPath,
			OutputPath:  result.OutputPath,
			Mode:        result.Mode,
			Extent:      ext,
			Summary:     summary,
			Rows:        result.Rows,
		})
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

type inputs struct {
	pixels   image.Image
	hotspots hotspot.Set
	borders  *borders.Dataset
}

// load reads the pixels, the detections and the borders concurrently. All
// three loads run to completion; when several fail, the error reported
// follows that order so the failure category does not depend on scheduling.
func (p *Plotter) load(ctx context.Context, req Request) (*inputs, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var in inputs
	var pixErr, hotErr, bordErr error

	var g errgroup.Group
	g.Go(func() error {
		in.pixels, pixErr = geotiff.Decode(req.ImagePath)
		return pixErr
	})
	g.Go(func() error {
		in.hotspots, hotErr = hotspot.Load(req.HotspotPath)
		return hotErr
	})
	g.Go(func() error {
		in.borders, bordErr = p.borders.Load(p.cfg.Borders.Path, p.cfg.Borders.NameField)
		return bordErr
	})
	_ = g.Wait()

	for _, err := range []error{pixErr, hotErr, bordErr} {
		if err != nil {
			return nil, err
		}
	}

	p.logger.Debug("inputs loaded", "hotspots", len(in.hotspots), "countries", len(in.borders.Countries))
	return &in, nil
}

type styles struct {
	marker imaging.MarkerStyle
	border imaging.LineStyle
}

func (p *Plotter) style() (styles, error) {
	marker, err := imaging.ParseColor(p.cfg.Style.MarkerColor)
	if err != nil {
		return styles{}, errors.Join(config.ErrInvalidColor, err)
	}
	border, err := imaging.ParseColor(p.cfg.Style.BorderColor)
	if err != nil {
		return styles{}, errors.Join(config.ErrInvalidColor, err)
	}
	return styles{
		marker: imaging.MarkerStyle{Color: marker, Radius: p.cfg.Style.MarkerRadius},
		border: imaging.LineStyle{Color: border, Width: p.cfg.Style.BorderWidth},
	}, nil
}
