package plotting

import (
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/plsgo/pipeline"
	"github.com/YuminosukeSato/plsgo/pkg/errors"
	"github.com/YuminosukeSato/plsgo/pkg/log"
)

// Renderer writes every figure to the output directory in each configured
// format. It implements pipeline.Visualizer.
type Renderer struct {
	OutputDir string

	// Formats are file extensions understood by gonum/plot's Save (png,
	// svg, pdf, ...). The default pairs a raster and a vector format.
	Formats []string

	Width  vg.Length
	Height vg.Length
}

// NewRenderer creates a Renderer with png+svg output at 6x5 inches.
func NewRenderer(outputDir string) *Renderer {
	return &Renderer{
		OutputDir: outputDir,
		Formats:   []string{"png", "svg"},
		Width:     6 * vg.Inch,
		Height:    5 * vg.Inch,
	}
}

var _ pipeline.Visualizer = (*Renderer)(nil)

// save writes p under every configured format.
func (r *Renderer) save(p *plot.Plot, fileName string) error {
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return errors.NewModelError("Renderer", "cannot create output directory", err)
	}
	for _, format := range r.Formats {
		path := filepath.Join(r.OutputDir, fileName+"."+format)
		if err := p.Save(r.Width, r.Height, path); err != nil {
			return errors.NewModelError("Renderer", "cannot save "+path, err)
		}
	}
	log.GetLoggerWithName("plotting").Debug("figure saved",
		log.FigureKey, fileName, log.OutputDirKey, r.OutputDir)
	return nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	return p
}

func groupXYs(g pipeline.GroupSeries) plotter.XYs {
	xys := make(plotter.XYs, len(g.X))
	for i := range g.X {
		xys[i].X = g.X[i]
		xys[i].Y = g.Y[i]
	}
	return xys
}

func groupPoints(g pipeline.GroupSeries) []Point {
	pts := make([]Point, len(g.X))
	for i := range g.X {
		pts[i] = Point{X: g.X[i], Y: g.Y[i]}
	}
	return pts
}

// addGroupScatters draws one scatter series per group with a shared color
// cycle and legend entries.
func addGroupScatters(p *plot.Plot, groups []pipeline.GroupSeries) error {
	args := make([]interface{}, 0, 2*len(groups))
	for _, g := range groups {
		args = append(args, g.Label, groupXYs(g))
	}
	return plotutil.AddScatters(p, args...)
}

// Scatter draws one point per sample in the score plane, colored by group.
func (r *Renderer) Scatter(spec pipeline.ScatterSpec) error {
	p := newPlot(spec.Title, spec.XLabel, spec.YLabel)
	if err := addGroupScatters(p, spec.Groups); err != nil {
		return errors.Wrap(err, "scatter "+spec.FileName)
	}
	return r.save(p, spec.FileName)
}

// Hull draws the group scatters with each group's convex hull overlaid.
// Groups with fewer than 3 distinct points have no hull and are skipped for
// the overlay only; the run continues.
func (r *Renderer) Hull(spec pipeline.ScatterSpec) error {
	p := newPlot(spec.Title, spec.XLabel, spec.YLabel)
	if err := addGroupScatters(p, spec.Groups); err != nil {
		return errors.Wrap(err, "hull "+spec.FileName)
	}

	for gi, g := range spec.Groups {
		hull := ConvexHull(groupPoints(g))
		if hull == nil {
			log.GetLoggerWithName("plotting").Warn("group skipped for convex hull",
				log.FigureKey, spec.FileName, "group", g.Label, log.SamplesKey, len(g.X))
			continue
		}

		xys := make(plotter.XYs, len(hull))
		for i, pt := range hull {
			xys[i].X = pt.X
			xys[i].Y = pt.Y
		}
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return errors.Wrap(err, "hull "+spec.FileName)
		}
		base := plotutil.Color(gi)
		poly.Color = withAlpha(base, 40)
		poly.LineStyle.Color = base
		poly.LineStyle.Width = vg.Points(1)
		p.Add(poly)
	}
	return r.save(p, spec.FileName)
}

// Star draws the group scatters with a ray from each group centroid to every
// member point.
func (r *Renderer) Star(spec pipeline.ScatterSpec) error {
	p := newPlot(spec.Title, spec.XLabel, spec.YLabel)
	if err := addGroupScatters(p, spec.Groups); err != nil {
		return errors.Wrap(err, "star "+spec.FileName)
	}

	for gi, g := range spec.Groups {
		c := Centroid(groupPoints(g))
		for i := range g.X {
			ray := plotter.XYs{{X: c.X, Y: c.Y}, {X: g.X[i], Y: g.Y[i]}}
			line, err := plotter.NewLine(ray)
			if err != nil {
				return errors.Wrap(err, "star "+spec.FileName)
			}
			line.Color = withAlpha(plotutil.Color(gi), 120)
			line.Width = vg.Points(0.5)
			p.Add(line)
		}
	}
	return r.save(p, spec.FileName)
}

// Bar draws a single bar series over named features, with an optional
// horizontal reference line (the 1.0 VIP convention).
func (r *Renderer) Bar(spec pipeline.BarSpec) error {
	p := newPlot(spec.Title, "", spec.YLabel)
	p.Legend.Top = false

	bars, err := plotter.NewBarChart(plotter.Values(spec.Values), vg.Points(14))
	if err != nil {
		return errors.Wrap(err, "bar "+spec.FileName)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(spec.Names...)
	p.X.Tick.Label.Rotation = -1.2
	p.X.Tick.Label.XAlign = draw.XLeft
	p.X.Tick.Label.YAlign = draw.YCenter

	if spec.HasReference {
		ref := plotter.XYs{
			{X: -0.5, Y: spec.ReferenceLine},
			{X: float64(len(spec.Values)) - 0.5, Y: spec.ReferenceLine},
		}
		line, err := plotter.NewLine(ref)
		if err != nil {
			return errors.Wrap(err, "bar "+spec.FileName)
		}
		line.Color = color.NRGBA{R: 200, A: 255}
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
	}
	return r.save(p, spec.FileName)
}

// GroupedBar draws side-by-side bars, one series per latent component.
func (r *Renderer) GroupedBar(spec pipeline.GroupedBarSpec) error {
	p := newPlot(spec.Title, "", spec.YLabel)

	nSeries := len(spec.Values)
	width := vg.Points(20 / float64(maxInt(nSeries, 1)))
	for si, values := range spec.Values {
		bars, err := plotter.NewBarChart(plotter.Values(values), width)
		if err != nil {
			return errors.Wrap(err, "grouped bar "+spec.FileName)
		}
		bars.Color = plotutil.Color(si)
		bars.LineStyle.Width = 0
		bars.Offset = width * vg.Length(si-nSeries/2)
		p.Add(bars)
		p.Legend.Add(spec.SeriesLabels[si], bars)
	}
	p.NominalX(spec.Names...)
	p.X.Tick.Label.Rotation = -1.2
	p.X.Tick.Label.XAlign = draw.XLeft
	p.X.Tick.Label.YAlign = draw.YCenter
	return r.save(p, spec.FileName)
}

// Heatmap draws a labeled matrix with a diverging palette, optionally
// annotating every cell with its value.
func (r *Renderer) Heatmap(spec pipeline.HeatmapSpec) error {
	p := newPlot(spec.Title, "", "")
	p.Legend.Top = false

	grid := &matrixGrid{values: spec.Values}
	cm := moreland.SmoothBlueRed()
	min, max := grid.bounds()
	if min == max {
		max = min + 1
	}
	cm.SetMin(min)
	cm.SetMax(max)

	hm := plotter.NewHeatMap(grid, cm.Palette(100))
	p.Add(hm)
	p.NominalX(spec.ColLabels...)
	p.NominalY(spec.RowLabels...)

	if spec.Annotate {
		labels := plotter.XYLabels{}
		for ri, row := range spec.Values {
			for ci, v := range row {
				labels.XYs = append(labels.XYs, plotter.XY{X: float64(ci), Y: float64(ri)})
				labels.Labels = append(labels.Labels, strconv.FormatFloat(v, 'g', 3, 64))
			}
		}
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return errors.Wrap(err, "heatmap "+spec.FileName)
		}
		p.Add(l)
	}
	return r.save(p, spec.FileName)
}

// matrixGrid adapts a [][]float64 to plotter.GridXYZ. Row 0 is the bottom
// row, matching the nominal Y tick order.
type matrixGrid struct {
	values [][]float64
}

func (g *matrixGrid) Dims() (c, r int) {
	if len(g.values) == 0 {
		return 0, 0
	}
	return len(g.values[0]), len(g.values)
}

func (g *matrixGrid) Z(c, r int) float64 { return g.values[r][c] }
func (g *matrixGrid) X(c int) float64    { return float64(c) }
func (g *matrixGrid) Y(r int) float64    { return float64(r) }

func (g *matrixGrid) bounds() (min, max float64) {
	first := true
	for _, row := range g.values {
		for _, v := range row {
			if first || v < min {
				min = v
			}
			if first || v > max {
				max = v
			}
			first = false
		}
	}
	return min, max
}

func withAlpha(c color.Color, alpha uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FigureCount returns how many files one figure produces, one per format.
func (r *Renderer) FigureCount() int {
	return len(r.Formats)
}
