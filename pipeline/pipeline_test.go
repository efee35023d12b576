package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/plsgo/datasets"
)

// recordingVisualizer captures which figures were requested.
type recordingVisualizer struct {
	figures []string
}

func (r *recordingVisualizer) Scatter(s ScatterSpec) error       { r.figures = append(r.figures, s.FileName); return nil }
func (r *recordingVisualizer) Hull(s ScatterSpec) error          { r.figures = append(r.figures, s.FileName); return nil }
func (r *recordingVisualizer) Star(s ScatterSpec) error          { r.figures = append(r.figures, s.FileName); return nil }
func (r *recordingVisualizer) Bar(s BarSpec) error               { r.figures = append(r.figures, s.FileName); return nil }
func (r *recordingVisualizer) GroupedBar(s GroupedBarSpec) error { r.figures = append(r.figures, s.FileName); return nil }
func (r *recordingVisualizer) Heatmap(s HeatmapSpec) error       { r.figures = append(r.figures, s.FileName); return nil }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxComponents = 3
	cfg.Folds = 5
	cfg.Permutations = 50
	cfg.PermutationSeed = 7
	cfg.Workers = 1
	return cfg
}

func TestPipelineSeparableEndToEnd(t *testing.T) {
	table := datasets.MakeSeparated(10, 5, 5.0, 42)

	var report bytes.Buffer
	p, err := New(testConfig(), NopVisualizer{}, WithOutput(&report))
	require.NoError(t, err)

	result, err := p.Run(context.Background(), table)
	require.NoError(t, err)

	// Perfectly shifted groups: near-perfect accuracy, strong significance.
	assert.Greater(t, result.NestedEval.Accuracy, 0.95)
	assert.Greater(t, result.QuickEval.Accuracy, 0.95)
	assert.Less(t, result.Permutation.PValue, 0.01)

	assert.GreaterOrEqual(t, result.BestComponents, 1)
	assert.LessOrEqual(t, result.BestComponents, 3)
	assert.Equal(t, []string{"A", "B"}, result.Classes)
	assert.Len(t, result.VIP, 5)

	out := report.String()
	assert.Contains(t, out, "Variance explained")
	assert.Contains(t, out, "Optimal number of components")
	assert.Contains(t, out, "VIP scores")
	assert.Contains(t, out, "Permutation test")
	assert.Contains(t, out, "significant at the 0.05 level")
}

func TestPipelineNullDataNearChance(t *testing.T) {
	table := datasets.MakeNull(12, 5, 9)

	var report bytes.Buffer
	p, err := New(testConfig(), NopVisualizer{}, WithOutput(&report))
	require.NoError(t, err)

	result, err := p.Run(context.Background(), table)
	require.NoError(t, err)

	// Identical distributions: accuracy near 1/2, no strong significance.
	assert.Less(t, result.NestedEval.Accuracy, 0.8)
	assert.Greater(t, result.Permutation.PValue, 0.01)
}

func TestPipelineFigureSet(t *testing.T) {
	table := datasets.MakeSeparated(10, 4, 5.0, 11)

	vis := &recordingVisualizer{}
	var report bytes.Buffer
	p, err := New(testConfig(), vis, WithOutput(&report))
	require.NoError(t, err)

	result, err := p.Run(context.Background(), table)
	require.NoError(t, err)

	want := []string{
		"loadings_combined",
		"correlation_heatmap",
		"confusion_matrix",
		"vip_scores",
	}
	for _, name := range want {
		assert.Contains(t, vis.figures, name)
	}
	for a := 1; a <= result.BestComponents; a++ {
		assert.Contains(t, vis.figures, "loadings_pls"+string(rune('0'+a)))
	}

	// Score planes exist only for the components the model actually holds.
	_, nScoreCols := result.Scores.Dims()
	if nScoreCols >= 2 {
		assert.Contains(t, vis.figures, "scores_pls1_pls2")
		assert.Contains(t, vis.figures, "scores_pls1_pls2_hull")
		assert.Contains(t, vis.figures, "scores_pls1_pls2_star")
	} else {
		assert.NotContains(t, vis.figures, "scores_pls1_pls2")
	}
	if nScoreCols >= 3 {
		assert.Contains(t, vis.figures, "scores_pls1_pls3")
	} else {
		assert.NotContains(t, vis.figures, "scores_pls1_pls3")
	}
}

func TestPipelineSingleComponentRun(t *testing.T) {
	// Strongly shifted groups push the component search to h=1; the run must
	// still complete, skipping the score planes a one-column score matrix
	// cannot provide.
	table := datasets.MakeSeparated(10, 5, 5.0, 42)

	cfg := testConfig()
	cfg.MaxComponents = 1

	vis := &recordingVisualizer{}
	p, err := New(cfg, vis, WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)

	result, err := p.Run(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, 1, result.BestComponents)
	_, nScoreCols := result.Scores.Dims()
	assert.Equal(t, 1, nScoreCols)

	assert.NotContains(t, vis.figures, "scores_pls1_pls2")
	assert.NotContains(t, vis.figures, "scores_pls1_pls2_hull")
	assert.NotContains(t, vis.figures, "scores_pls1_pls2_star")
	assert.NotContains(t, vis.figures, "scores_pls1_pls3")
	assert.Contains(t, vis.figures, "loadings_pls1")
	assert.Contains(t, vis.figures, "vip_scores")
	assert.Contains(t, vis.figures, "confusion_matrix")
}

func TestPipelineRejectsZeroVarianceColumn(t *testing.T) {
	table := datasets.MakeSeparated(6, 3, 4.0, 13)
	for i := 0; i < table.NSamples(); i++ {
		table.X.Set(i, 1, 7.0)
	}

	p, err := New(testConfig(), NopVisualizer{}, WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)

	_, err = p.Run(context.Background(), table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature_02")
}

func TestPipelineRejectsDegenerateClass(t *testing.T) {
	table := datasets.MakeSeparated(6, 3, 4.0, 14)
	table.Groups[0] = "C" // single-member class

	p, err := New(testConfig(), NopVisualizer{}, WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)

	_, err = p.Run(context.Background(), table)
	assert.Error(t, err)
}

func TestPipelineBundleRoundTrip(t *testing.T) {
	table := datasets.MakeSeparated(10, 4, 5.0, 15)

	cfg := testConfig()
	cfg.SaveBundle = true
	cfg.OutputDir = t.TempDir()

	p, err := New(cfg, NopVisualizer{}, WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)

	result, err := p.Run(context.Background(), table)
	require.NoError(t, err)

	bundle, err := LoadBundle(filepath.Join(cfg.OutputDir, "plsda_model.gob"))
	require.NoError(t, err)
	require.NotNil(t, bundle.Scaler)
	require.NotNil(t, bundle.Encoder)
	require.NotNil(t, bundle.PLS)
	require.NotNil(t, bundle.LDA)

	// The reloaded chain classifies the training samples consistently with
	// the reported nested accuracy being high.
	stabilized, err := bundle.Arcsinh.Transform(table.X)
	require.NoError(t, err)
	X, err := bundle.Scaler.Transform(stabilized)
	require.NoError(t, err)
	scores, err := bundle.PLS.Transform(X)
	require.NoError(t, err)
	pred, err := bundle.LDA.PredictInts(scores)
	require.NoError(t, err)

	codes, err := bundle.Encoder.TransformInts(table.Groups)
	require.NoError(t, err)
	correct := 0
	for i := range codes {
		if pred[i] == codes[i] {
			correct++
		}
	}
	assert.Greater(t, float64(correct)/float64(len(codes)), 0.95)
	_ = result
}

func TestPipelineRunReproducible(t *testing.T) {
	cfg := testConfig()

	run := func() *Result {
		table := datasets.MakeSeparated(10, 4, 5.0, 21)
		p, err := New(cfg, NopVisualizer{}, WithOutput(&bytes.Buffer{}))
		require.NoError(t, err)
		result, err := p.Run(context.Background(), table)
		require.NoError(t, err)
		return result
	}

	a := run()
	b := run()
	assert.Equal(t, a.BestComponents, b.BestComponents)
	assert.Equal(t, a.Search.MSEByComponent, b.Search.MSEByComponent)
	assert.Equal(t, a.Permutation.NullErrors, b.Permutation.NullErrors)
	assert.Equal(t, a.Permutation.PValue, b.Permutation.PValue)
}
