package model_selection

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/core/parallel"
	"github.com/YuminosukeSato/plsgo/cross_decomposition"
	"github.com/YuminosukeSato/plsgo/metrics"
	"github.com/YuminosukeSato/plsgo/pkg/errors"
	"github.com/YuminosukeSato/plsgo/pkg/log"
)

// PermutationTest assesses whether the observed cross-validated error is
// significantly lower than chance by comparing it against a null
// distribution of errors from label-shuffled models.
type PermutationTest struct {
	// Permutations is the number of null iterations; 100 resolves p-values
	// down to about 0.01.
	Permutations int

	// Components is the latent component count, normally the one selected
	// by ComponentSearch.
	Components int

	// Folds supplies the cross-validation partition reused by every
	// iteration.
	Folds Splitter

	// Seed derives one PCG stream per iteration (seed+i), making the null
	// distribution reproducible. Negative seeds draw from the current time
	// instead, preserving true randomness.
	Seed int64

	// Workers sets the worker count for the iteration pool. Zero or
	// negative uses all CPUs; 1 runs sequentially.
	Workers int
}

// PermutationTestResult holds the null distribution and the rank-test
// outcome against the observed per-fold errors.
type PermutationTestResult struct {
	// NullErrors are the fold-mean errors of the label-shuffled models,
	// ordered by iteration index regardless of worker scheduling.
	NullErrors []float64

	// RealErrors is the observed per-fold error sample the null is
	// compared against.
	RealErrors []float64

	// PValue is the one-sided Mann-Whitney p-value under the alternative
	// that real errors are smaller than null errors.
	PValue float64

	// UStatistic is the U value of the real sample.
	UStatistic float64
}

// Significant reports whether the p-value falls below the conventional 0.05
// threshold.
func (r *PermutationTestResult) Significant() bool {
	return r.PValue < 0.05
}

// Run executes the permutation test. Each iteration shuffles the training
// labels independently within every fold (held-out labels stay untouched),
// fits a fresh model per fold at the configured component count, and records
// the fold-mean held-out error.
func (pt *PermutationTest) Run(X, y mat.Matrix, realErrors []float64) (*PermutationTestResult, error) {
	if pt.Permutations < 1 {
		return nil, errors.NewValidationError("permutations", "must be at least 1", pt.Permutations)
	}
	if pt.Components < 1 {
		return nil, errors.NewValidationError("components", "must be at least 1", pt.Components)
	}
	if pt.Folds == nil {
		return nil, errors.NewValidationError("folds", "splitter is required", nil)
	}
	if len(realErrors) == 0 {
		return nil, errors.NewValueError("PermutationTest.Run", "empty observed error sample")
	}

	folds := pt.Folds.Split(X, y)

	logger := log.GetLoggerWithName("model_selection")
	logger.Info("permutation test started",
		log.PermutationsKey, pt.Permutations,
		log.ComponentsKey, pt.Components,
		log.WorkersKey, pt.Workers)
	start := time.Now()

	nullErrors := make([]float64, pt.Permutations)
	iterErrs := make([]error, pt.Permutations)

	baseSeed := pt.Seed
	if baseSeed < 0 {
		baseSeed = time.Now().UnixNano()
	}

	parallel.ParallelizeWorkers(pt.Permutations, pt.Workers, func(startIdx, endIdx int) {
		for i := startIdx; i < endIdx; i++ {
			r := rand.New(rand.NewPCG(uint64(baseSeed+int64(i)), uint64(i)+1))
			nullErrors[i], iterErrs[i] = pt.permutedIteration(X, y, folds, r)
		}
	})

	for i, err := range iterErrs {
		if err != nil {
			return nil, errors.Wrapf(err, "permutation iteration %d", i)
		}
	}

	test, err := metrics.MannWhitneyU(realErrors, nullErrors, metrics.AlternativeLess)
	if err != nil {
		return nil, errors.Wrap(err, "permutation test")
	}

	logger.Info("permutation test finished",
		log.PValueKey, test.PValue,
		log.UStatisticKey, test.U1,
		log.DurationMsKey, time.Since(start).Milliseconds())

	out := make([]float64, len(realErrors))
	copy(out, realErrors)
	return &PermutationTestResult{
		NullErrors: nullErrors,
		RealErrors: out,
		PValue:     test.PValue,
		UStatistic: test.U1,
	}, nil
}

// permutedIteration runs one label-shuffled cross-validation sweep and
// returns the fold-mean held-out error.
func (pt *PermutationTest) permutedIteration(X, y mat.Matrix, folds []CVFold, r *rand.Rand) (float64, error) {
	total := 0.0
	for _, fold := range folds {
		trainX, trainY := extractSubset(X, y, fold.TrainIndices)
		testX, testY := extractSubset(X, y, fold.TestIndices)

		// Shuffle the training labels within this fold only.
		n, _ := trainY.Dims()
		perm := r.Perm(n)
		shuffled := mat.NewDense(n, 1, nil)
		for i, j := range perm {
			shuffled.Set(i, 0, trainY.At(j, 0))
		}

		pls := cross_decomposition.NewPLSRegression(
			cross_decomposition.WithNComponents(pt.Components))
		if err := pls.Fit(trainX, shuffled); err != nil {
			return 0, err
		}

		pred, err := pls.Predict(testX)
		if err != nil {
			return 0, err
		}
		mse, err := metrics.MSEMatrix(testY, pred)
		if err != nil {
			return 0, err
		}
		total += mse
	}
	return total / float64(len(folds)), nil
}
