package model_selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/cross_decomposition"
	"github.com/YuminosukeSato/plsgo/discriminant_analysis"
	"github.com/YuminosukeSato/plsgo/metrics"
	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// EvaluationResult holds a cross-validated accuracy and the confusion
// matrix pooled over every fold's held-out predictions. Rows and columns of
// the matrix follow the label encoder's index order.
type EvaluationResult struct {
	Accuracy  float64
	Confusion *metrics.ConfusionMatrix
}

// EvaluateScoresCV is the quick accuracy estimate: the latent projection is
// fitted once on the full data and only the discriminant classifier is
// cross-validated on the resulting scores. The projection therefore sees the
// held-out samples during its fit; this is a deliberate leakage shortcut
// carried over from the original analysis script, kept as a separately
// labeled estimate next to EvaluateNested rather than silently corrected.
func EvaluateScoresCV(X, y mat.Matrix, components int, folds Splitter, classNames []string) (*EvaluationResult, error) {
	pls := cross_decomposition.NewPLSRegression(cross_decomposition.WithNComponents(components))
	if err := pls.Fit(X, y); err != nil {
		return nil, errors.Wrap(err, "scores-CV evaluation")
	}

	scores := pls.XScores()
	return poolFolds(y, folds.Split(X, y), classNames,
		func(fold CVFold) ([]int, error) {
			trainT, trainY := extractSubset(scores, y, fold.TrainIndices)
			testT, _ := extractSubset(scores, y, fold.TestIndices)

			lda := discriminant_analysis.NewLinearDiscriminantAnalysis()
			if err := lda.Fit(trainT, trainY); err != nil {
				return nil, err
			}
			return lda.PredictInts(testT)
		})
}

// EvaluateNested is the strict estimate: every fold refits the latent
// projection from scratch on its training rows only, projects both subsets
// into that fold-specific space, and cross-validates the discriminant
// classifier on the projections. No held-out sample influences any fit.
func EvaluateNested(X, y mat.Matrix, components int, folds Splitter, classNames []string) (*EvaluationResult, error) {
	return poolFolds(y, folds.Split(X, y), classNames,
		func(fold CVFold) ([]int, error) {
			trainX, trainY := extractSubset(X, y, fold.TrainIndices)
			testX, _ := extractSubset(X, y, fold.TestIndices)

			pls := cross_decomposition.NewPLSRegression(cross_decomposition.WithNComponents(components))
			if err := pls.Fit(trainX, trainY); err != nil {
				return nil, err
			}

			trainT, err := pls.Transform(trainX)
			if err != nil {
				return nil, err
			}
			testT, err := pls.Transform(testX)
			if err != nil {
				return nil, err
			}

			lda := discriminant_analysis.NewLinearDiscriminantAnalysis()
			if err := lda.Fit(trainT, trainY); err != nil {
				return nil, err
			}
			return lda.PredictInts(testT)
		})
}

// poolFolds runs predict over every fold and accumulates the true/predicted
// pairs into one accuracy and confusion matrix.
func poolFolds(y mat.Matrix, folds []CVFold, classNames []string,
	predict func(fold CVFold) ([]int, error),
) (*EvaluationResult, error) {
	cm := metrics.NewConfusionMatrix(classNames)

	var pooledTrue, pooledPred []int
	for fi, fold := range folds {
		pred, err := predict(fold)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluation fold %d", fi)
		}
		if len(pred) != len(fold.TestIndices) {
			return nil, errors.NewDimensionError("evaluation", len(fold.TestIndices), len(pred), 0)
		}
		for i, idx := range fold.TestIndices {
			pooledTrue = append(pooledTrue, int(y.At(idx, 0)))
			pooledPred = append(pooledPred, pred[i])
		}
	}

	if err := cm.AddAll(pooledTrue, pooledPred); err != nil {
		return nil, err
	}
	acc, err := metrics.Accuracy(pooledTrue, pooledPred)
	if err != nil {
		return nil, err
	}
	return &EvaluationResult{Accuracy: acc, Confusion: cm}, nil
}
