package model_selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/cross_decomposition"
	"github.com/YuminosukeSato/plsgo/metrics"
	"github.com/YuminosukeSato/plsgo/pkg/errors"
	"github.com/YuminosukeSato/plsgo/pkg/log"
)

// ComponentSearch selects the latent component count minimizing the mean
// cross-validated prediction error.
type ComponentSearch struct {
	// MaxComponents is the upper end of the candidate range [1, MaxComponents].
	// The range is capped by what the smallest training fold can support.
	MaxComponents int

	// Folds supplies the fixed cross-validation partition shared by every
	// candidate, so the error curve is comparable across component counts.
	Folds Splitter
}

// ComponentSearchResult holds the selected count and the full error curve.
type ComponentSearchResult struct {
	// BestComponents is the smallest count attaining the minimum mean error.
	BestComponents int

	// Components lists the candidate counts in ascending order.
	Components []int

	// MSEByComponent is the fold-mean squared error for each candidate,
	// aligned with Components.
	MSEByComponent []float64

	// PerFoldMSE retains the per-fold errors for each candidate, aligned
	// with Components. The row for BestComponents feeds the permutation
	// test's observed error sample.
	PerFoldMSE [][]float64
}

// BestPerFoldMSE returns the per-fold error sample of the selected count.
func (r *ComponentSearchResult) BestPerFoldMSE() []float64 {
	for i, h := range r.Components {
		if h == r.BestComponents {
			out := make([]float64, len(r.PerFoldMSE[i]))
			copy(out, r.PerFoldMSE[i])
			return out
		}
	}
	return nil
}

// Search sweeps the candidate component counts over the fixed folds and
// returns the error curve and the argmin. Ties resolve to the smaller count
// because the scan is in ascending order.
func (cs *ComponentSearch) Search(X, y mat.Matrix) (*ComponentSearchResult, error) {
	if cs.MaxComponents < 1 {
		return nil, errors.NewValidationError("max_components", "must be at least 1", cs.MaxComponents)
	}
	if cs.Folds == nil {
		return nil, errors.NewValidationError("folds", "splitter is required", nil)
	}

	_, p := X.Dims()
	folds := cs.Folds.Split(X, y)

	// Cap the range by what the smallest training fold supports.
	maxH := cs.MaxComponents
	for _, fold := range folds {
		if cap := cross_decomposition.MaxComponents(len(fold.TrainIndices), p); cap < maxH {
			maxH = cap
		}
	}
	if maxH < 1 {
		return nil, errors.NewValidationError("max_components",
			"training folds too small for even one component", cs.MaxComponents)
	}

	logger := log.GetLoggerWithName("model_selection")
	logger.Debug("component search started",
		log.MaxComponentsKey, maxH, log.NSplitsKey, len(folds))

	result := &ComponentSearchResult{
		Components:     make([]int, 0, maxH),
		MSEByComponent: make([]float64, 0, maxH),
		PerFoldMSE:     make([][]float64, 0, maxH),
	}

	bestErr := 0.0
	for h := 1; h <= maxH; h++ {
		perFold := make([]float64, len(folds))
		for fi, fold := range folds {
			mse, err := fitPredictMSE(X, y, fold, h)
			if err != nil {
				return nil, errors.Wrapf(err, "component search: h=%d fold=%d", h, fi)
			}
			perFold[fi] = mse
		}

		mean := 0.0
		for _, v := range perFold {
			mean += v
		}
		mean /= float64(len(perFold))

		result.Components = append(result.Components, h)
		result.MSEByComponent = append(result.MSEByComponent, mean)
		result.PerFoldMSE = append(result.PerFoldMSE, perFold)

		if h == 1 || mean < bestErr {
			bestErr = mean
			result.BestComponents = h
		}
	}

	logger.Info("component search finished",
		log.ComponentsKey, result.BestComponents, log.MSEKey, bestErr)
	return result, nil
}

// fitPredictMSE fits a fresh model on the training rows of one fold and
// returns the mean squared error on the held-out rows.
func fitPredictMSE(X, y mat.Matrix, fold CVFold, h int) (float64, error) {
	trainX, trainY := extractSubset(X, y, fold.TrainIndices)
	testX, testY := extractSubset(X, y, fold.TestIndices)

	pls := cross_decomposition.NewPLSRegression(cross_decomposition.WithNComponents(h))
	if err := pls.Fit(trainX, trainY); err != nil {
		return 0, err
	}

	pred, err := pls.Predict(testX)
	if err != nil {
		return 0, err
	}
	return metrics.MSEMatrix(testY, pred)
}
