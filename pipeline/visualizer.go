// Package pipeline orchestrates the PLS-DA analysis: preprocessing, model
// selection, evaluation, feature importance, the permutation test, console
// reporting, and handoff of the numeric results to a Visualizer.
package pipeline

// GroupSeries is one group's points in a 2D score plane.
type GroupSeries struct {
	Label string
	X     []float64
	Y     []float64
}

// ScatterSpec describes a score scatter figure and its hull/star variants.
type ScatterSpec struct {
	Title    string
	FileName string
	XLabel   string
	YLabel   string
	Groups   []GroupSeries
}

// BarSpec describes a bar chart over named features.
type BarSpec struct {
	Title    string
	FileName string
	YLabel   string
	Names    []string
	Values   []float64

	// ReferenceLine is drawn as a horizontal rule when HasReference is set,
	// e.g. the 1.0 VIP convention.
	ReferenceLine float64
	HasReference  bool
}

// GroupedBarSpec describes side-by-side bars, one series per latent
// component.
type GroupedBarSpec struct {
	Title        string
	FileName     string
	YLabel       string
	Names        []string
	SeriesLabels []string
	Values       [][]float64 // indexed [series][name]
}

// HeatmapSpec describes a labeled matrix display, used for the correlation
// matrix and the confusion matrix.
type HeatmapSpec struct {
	Title     string
	FileName  string
	RowLabels []string
	ColLabels []string
	Values    [][]float64 // indexed [row][col]

	// Annotate writes each cell's value into the cell, as the confusion
	// display does with counts.
	Annotate bool
}

// Visualizer renders figures from numeric arrays and chart metadata. The
// statistical core depends only on this interface; the gonum/plot renderer
// lives in the plotting package.
type Visualizer interface {
	Scatter(spec ScatterSpec) error
	Hull(spec ScatterSpec) error
	Star(spec ScatterSpec) error
	Bar(spec BarSpec) error
	GroupedBar(spec GroupedBarSpec) error
	Heatmap(spec HeatmapSpec) error
}

// NopVisualizer discards every figure. It keeps plot generation optional in
// tests and headless runs.
type NopVisualizer struct{}

func (NopVisualizer) Scatter(ScatterSpec) error       { return nil }
func (NopVisualizer) Hull(ScatterSpec) error          { return nil }
func (NopVisualizer) Star(ScatterSpec) error          { return nil }
func (NopVisualizer) Bar(BarSpec) error               { return nil }
func (NopVisualizer) GroupedBar(GroupedBarSpec) error { return nil }
func (NopVisualizer) Heatmap(HeatmapSpec) error       { return nil }
