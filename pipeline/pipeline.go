package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/cross_decomposition"
	"github.com/YuminosukeSato/plsgo/datasets"
	"github.com/YuminosukeSato/plsgo/discriminant_analysis"
	"github.com/YuminosukeSato/plsgo/model_selection"
	"github.com/YuminosukeSato/plsgo/preprocessing"
	"github.com/YuminosukeSato/plsgo/pkg/errors"
	"github.com/YuminosukeSato/plsgo/pkg/log"
)

// Result owns one immutable copy of every derived artifact of a run, for
// reporting and plotting. Each stage fitted its own model instance; nothing
// here carries state between stages.
type Result struct {
	RunID   string
	Classes []string

	BestComponents int
	Search         *model_selection.ComponentSearchResult
	Variance       *cross_decomposition.VarianceExplained

	Scores   *mat.Dense // n x h latent scores of the final full-data fit
	Loadings *mat.Dense // p x h loadings of the final fit
	VIP      []float64

	// QuickEval is the scores-CV shortcut estimate, NestedEval the strict
	// per-fold refit estimate. Both are reported, separately labeled.
	QuickEval  *model_selection.EvaluationResult
	NestedEval *model_selection.EvaluationResult

	Permutation *model_selection.PermutationTestResult

	FeatureNames []string
	Groups       []string
}

// Pipeline runs the full PLS-DA analysis over a sample table.
type Pipeline struct {
	cfg Config
	vis Visualizer
	out io.Writer
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithOutput redirects the console report, which defaults to stdout.
func WithOutput(w io.Writer) PipelineOption {
	return func(p *Pipeline) {
		p.out = w
	}
}

// New creates a Pipeline. A nil visualizer disables figure output.
func New(cfg Config, vis Visualizer, opts ...PipelineOption) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if vis == nil {
		vis = NopVisualizer{}
	}
	p := &Pipeline{cfg: cfg, vis: vis, out: os.Stdout}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// RunCSV loads the configured input file and runs the analysis.
func (p *Pipeline) RunCSV(ctx context.Context) (*Result, error) {
	table, err := datasets.LoadCSV(ctx, p.cfg.InputPath, datasets.LoadOptions{
		IDColumn:    p.cfg.IDColumn,
		GroupColumn: p.cfg.GroupColumn,
	})
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, table)
}

// Run executes every stage over an in-memory table: validation,
// preprocessing, component selection, the final fit, both accuracy
// estimates, VIP scoring, the permutation test, the console report, and the
// figures.
func (p *Pipeline) Run(ctx context.Context, table *datasets.Table) (*Result, error) {
	runID := uuid.New().String()
	logger := log.GetLoggerWithName("pipeline").With(log.RunIDKey, runID)
	start := time.Now()

	if err := table.Validate(); err != nil {
		return nil, err
	}
	n, nFeatures := table.NSamples(), table.NFeatures()
	logger.Info("run started",
		log.SamplesKey, n, log.FeaturesKey, nFeatures,
		log.ClassesKey, len(table.ClassCounts()))

	// Variance stabilization, then standardization. The scaler is fitted on
	// the full column set and reused for any later transform; refitting on
	// unseen samples would make train and test statistics diverge.
	arcsinh := preprocessing.NewArcsinhTransformer()
	stabilized, err := arcsinh.FitTransform(table.X)
	if err != nil {
		return nil, err
	}

	if degenerate := preprocessing.CheckFeatureVariance(stabilized, 1e-12); len(degenerate) > 0 {
		names := make([]string, len(degenerate))
		for i, j := range degenerate {
			names[i] = table.FeatureNames[j]
		}
		return nil, errors.NewValidationError("features",
			"zero-variance feature columns: "+strings.Join(names, ", "), degenerate)
	}

	scaler := preprocessing.NewStandardScalerDefault()
	X, err := scaler.FitTransform(stabilized)
	if err != nil {
		return nil, err
	}

	encoder := preprocessing.NewLabelEncoder()
	y, err := encoder.FitTransform(table.Groups)
	if err != nil {
		return nil, err
	}
	classes := encoder.Classes()

	folds := model_selection.NewStratifiedKFold(p.cfg.Folds, true, p.cfg.FoldSeed)

	// Stage 1: cross-validated component selection.
	maxH := p.cfg.MaxComponents
	if cap := cross_decomposition.MaxComponents(n, nFeatures); cap < maxH {
		maxH = cap
	}
	search := &model_selection.ComponentSearch{MaxComponents: maxH, Folds: folds}
	searchResult, err := search.Search(X, y)
	if err != nil {
		return nil, err
	}
	best := searchResult.BestComponents

	// Stage 2: final full-data fit, owned by this stage alone.
	finalPLS := cross_decomposition.NewPLSRegression(cross_decomposition.WithNComponents(best))
	if err := finalPLS.Fit(X, y); err != nil {
		return nil, err
	}
	variance, err := finalPLS.VarianceExplained()
	if err != nil {
		return nil, err
	}
	vip, err := cross_decomposition.VIPScores(finalPLS)
	if err != nil {
		return nil, err
	}

	// Stage 3: both accuracy estimates, each refitting its own models.
	quick, err := model_selection.EvaluateScoresCV(X, y, best, folds, classes)
	if err != nil {
		return nil, err
	}
	nested, err := model_selection.EvaluateNested(X, y, best, folds, classes)
	if err != nil {
		return nil, err
	}

	// Stage 4: permutation significance test at the selected count.
	permTest := &model_selection.PermutationTest{
		Permutations: p.cfg.Permutations,
		Components:   best,
		Folds:        folds,
		Seed:         p.cfg.PermutationSeed,
		Workers:      p.cfg.Workers,
	}
	permutation, err := permTest.Run(X, y, searchResult.BestPerFoldMSE())
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:          runID,
		Classes:        classes,
		BestComponents: best,
		Search:         searchResult,
		Variance:       variance,
		Scores:         finalPLS.XScores(),
		Loadings:       finalPLS.XLoadings(),
		VIP:            vip,
		QuickEval:      quick,
		NestedEval:     nested,
		Permutation:    permutation,
		FeatureNames:   table.FeatureNames,
		Groups:         table.Groups,
	}

	p.Report(result)

	if err := p.renderFigures(result, table); err != nil {
		return nil, err
	}

	if p.cfg.SaveBundle {
		bundle := &Bundle{
			Arcsinh: arcsinh,
			Scaler:  scaler,
			Encoder: encoder,
			PLS:     finalPLS,
		}
		lda := discriminant_analysis.NewLinearDiscriminantAnalysis()
		if err := lda.Fit(finalPLS.XScores(), y); err != nil {
			return nil, err
		}
		bundle.LDA = lda
		if err := SaveBundle(bundle, bundlePath(p.cfg.OutputDir)); err != nil {
			return nil, err
		}
	}

	logger.Info("run finished",
		log.ComponentsKey, best,
		log.AccuracyKey, nested.Accuracy,
		log.PValueKey, permutation.PValue,
		log.DurationMsKey, time.Since(start).Milliseconds())
	return result, nil
}

func bundlePath(outputDir string) string {
	return fmt.Sprintf("%s/plsda_model.gob", outputDir)
}
