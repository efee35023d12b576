package pipeline

import (
	"fmt"

	"github.com/YuminosukeSato/plsgo/datasets"
	"github.com/YuminosukeSato/plsgo/pkg/log"
)

// renderFigures hands every numeric artifact to the visualizer: score
// scatters with hull and star variants for PLS1-vs-PLS2 and (when available)
// PLS1-vs-PLS3, loading bars, the correlation heatmap, the confusion
// display, and the VIP bars with the 1.0 reference line.
//
// Score planes come from the columns the fitted model actually holds: a
// one-component model has no plane to draw, so the score scatters are
// skipped rather than aborting the run.
func (p *Pipeline) renderFigures(r *Result, table *datasets.Table) error {
	_, nScoreCols := r.Scores.Dims()
	var planes [][2]int
	if nScoreCols >= 2 {
		planes = append(planes, [2]int{0, 1})
	}
	if nScoreCols >= 3 {
		planes = append(planes, [2]int{0, 2})
	}
	if len(planes) == 0 {
		log.GetLoggerWithName("pipeline").Info("skipping score scatter figures",
			log.ComponentsKey, nScoreCols)
	}

	for _, plane := range planes {
		spec := p.scoreSpec(r, plane[0], plane[1])

		scatter := spec
		scatter.FileName = fmt.Sprintf("scores_pls%d_pls%d", plane[0]+1, plane[1]+1)
		if err := p.vis.Scatter(scatter); err != nil {
			return err
		}

		hull := spec
		hull.Title = spec.Title + " (convex hulls)"
		hull.FileName = scatter.FileName + "_hull"
		if err := p.vis.Hull(hull); err != nil {
			return err
		}

		star := spec
		star.Title = spec.Title + " (star)"
		star.FileName = scatter.FileName + "_star"
		if err := p.vis.Star(star); err != nil {
			return err
		}
	}

	// Per-component loading bars plus the combined figure.
	pFeat, h := r.Loadings.Dims()
	seriesLabels := make([]string, h)
	combined := make([][]float64, h)
	for a := 0; a < h; a++ {
		values := make([]float64, pFeat)
		for j := 0; j < pFeat; j++ {
			values[j] = r.Loadings.At(j, a)
		}
		combined[a] = values
		seriesLabels[a] = fmt.Sprintf("PLS%d", a+1)

		if err := p.vis.Bar(BarSpec{
			Title:    fmt.Sprintf("PLS%d loadings", a+1),
			FileName: fmt.Sprintf("loadings_pls%d", a+1),
			YLabel:   "loading",
			Names:    r.FeatureNames,
			Values:   values,
		}); err != nil {
			return err
		}
	}
	if err := p.vis.GroupedBar(GroupedBarSpec{
		Title:        "Loadings by component",
		FileName:     "loadings_combined",
		YLabel:       "loading",
		Names:        r.FeatureNames,
		SeriesLabels: seriesLabels,
		Values:       combined,
	}); err != nil {
		return err
	}

	// Pearson correlation heatmap of the raw features.
	corr := table.CorrelationMatrix()
	corrValues := make([][]float64, pFeat)
	for i := 0; i < pFeat; i++ {
		corrValues[i] = make([]float64, pFeat)
		for j := 0; j < pFeat; j++ {
			corrValues[i][j] = corr.At(i, j)
		}
	}
	if err := p.vis.Heatmap(HeatmapSpec{
		Title:     "Feature correlation (Pearson)",
		FileName:  "correlation_heatmap",
		RowLabels: r.FeatureNames,
		ColLabels: r.FeatureNames,
		Values:    corrValues,
	}); err != nil {
		return err
	}

	// Confusion matrix display with count annotations.
	cm := r.NestedEval.Confusion
	cmValues := make([][]float64, len(cm.Labels))
	for i := range cm.Counts {
		cmValues[i] = make([]float64, len(cm.Labels))
		for j := range cm.Counts[i] {
			cmValues[i][j] = float64(cm.Counts[i][j])
		}
	}
	if err := p.vis.Heatmap(HeatmapSpec{
		Title:     "Confusion matrix (nested CV)",
		FileName:  "confusion_matrix",
		RowLabels: cm.Labels,
		ColLabels: cm.Labels,
		Values:    cmValues,
		Annotate:  true,
	}); err != nil {
		return err
	}

	return p.vis.Bar(BarSpec{
		Title:         "VIP scores",
		FileName:      "vip_scores",
		YLabel:        "VIP",
		Names:         r.FeatureNames,
		Values:        r.VIP,
		ReferenceLine: 1.0,
		HasReference:  true,
	})
}

// scoreSpec groups the samples of one score plane by class label.
func (p *Pipeline) scoreSpec(r *Result, cx, cy int) ScatterSpec {
	byGroup := make(map[string]*GroupSeries)
	var order []string
	for _, class := range r.Classes {
		byGroup[class] = &GroupSeries{Label: class}
		order = append(order, class)
	}

	for i, g := range r.Groups {
		series := byGroup[g]
		series.X = append(series.X, r.Scores.At(i, cx))
		series.Y = append(series.Y, r.Scores.At(i, cy))
	}

	groups := make([]GroupSeries, 0, len(order))
	for _, class := range order {
		groups = append(groups, *byGroup[class])
	}
	return ScatterSpec{
		Title:  fmt.Sprintf("PLS-DA scores: PLS%d vs PLS%d", cx+1, cy+1),
		XLabel: fmt.Sprintf("PLS%d", cx+1),
		YLabel: fmt.Sprintf("PLS%d", cy+1),
		Groups: groups,
	}
}
