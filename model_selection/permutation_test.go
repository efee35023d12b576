package model_selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermutationTestSeparableSignal(t *testing.T) {
	X, y := makeSeparableData(12, 5, 6.0, 1)
	folds := NewStratifiedKFold(4, true, 42)

	search := &ComponentSearch{MaxComponents: 3, Folds: folds}
	sr, err := search.Search(X, y)
	require.NoError(t, err)

	pt := &PermutationTest{
		Permutations: 50,
		Components:   sr.BestComponents,
		Folds:        folds,
		Seed:         7,
		Workers:      1,
	}
	result, err := pt.Run(X, y, sr.BestPerFoldMSE())
	require.NoError(t, err)

	require.Len(t, result.NullErrors, 50)
	assert.Less(t, result.PValue, 0.01, "strong separation must beat the shuffled null")
	assert.True(t, result.Significant())
}

func TestPermutationTestNullCalibration(t *testing.T) {
	// No signal: the observed errors come from the same process as the null,
	// so the test should not report strong significance.
	X, y := makeSeparableData(15, 5, 0.0, 2)
	folds := NewStratifiedKFold(5, true, 42)

	search := &ComponentSearch{MaxComponents: 2, Folds: folds}
	sr, err := search.Search(X, y)
	require.NoError(t, err)

	pt := &PermutationTest{
		Permutations: 50,
		Components:   sr.BestComponents,
		Folds:        folds,
		Seed:         11,
		Workers:      1,
	}
	result, err := pt.Run(X, y, sr.BestPerFoldMSE())
	require.NoError(t, err)
	assert.Greater(t, result.PValue, 0.01)
}

func TestPermutationTestReproducibleAcrossWorkers(t *testing.T) {
	X, y := makeSeparableData(10, 4, 4.0, 3)
	folds := NewStratifiedKFold(4, true, 42)
	observed := []float64{0.05, 0.07, 0.04, 0.06}

	run := func(workers int) *PermutationTestResult {
		pt := &PermutationTest{
			Permutations: 20,
			Components:   2,
			Folds:        folds,
			Seed:         5,
			Workers:      workers,
		}
		result, err := pt.Run(X, y, observed)
		require.NoError(t, err)
		return result
	}

	sequential := run(1)
	parallel := run(4)

	// Per-iteration seeding makes the null distribution independent of the
	// worker count and ordered by iteration index.
	require.Equal(t, sequential.NullErrors, parallel.NullErrors)
	assert.Equal(t, sequential.PValue, parallel.PValue)
}

func TestPermutationTestValidation(t *testing.T) {
	X, y := makeSeparableData(8, 3, 2.0, 4)
	folds := NewStratifiedKFold(4, true, 42)
	observed := []float64{0.1, 0.1, 0.1, 0.1}

	_, err := (&PermutationTest{Permutations: 0, Components: 2, Folds: folds}).Run(X, y, observed)
	assert.Error(t, err)

	_, err = (&PermutationTest{Permutations: 10, Components: 0, Folds: folds}).Run(X, y, observed)
	assert.Error(t, err)

	_, err = (&PermutationTest{Permutations: 10, Components: 2, Folds: folds}).Run(X, y, nil)
	assert.Error(t, err)

	_, err = (&PermutationTest{Permutations: 10, Components: 2}).Run(X, y, observed)
	assert.Error(t, err)
}

func TestPermutationNullErrorsNearLabelVariance(t *testing.T) {
	// Shuffled labels carry no information, so held-out MSE should hover
	// around the variance of a balanced 0/1 label (0.25) rather than near 0.
	X, y := makeSeparableData(15, 5, 6.0, 5)
	folds := NewStratifiedKFold(5, true, 42)

	pt := &PermutationTest{
		Permutations: 30,
		Components:   2,
		Folds:        folds,
		Seed:         9,
		Workers:      1,
	}
	result, err := pt.Run(X, y, []float64{0.01, 0.01, 0.01, 0.01, 0.01})
	require.NoError(t, err)

	mean := 0.0
	for _, v := range result.NullErrors {
		mean += v
	}
	mean /= float64(len(result.NullErrors))
	assert.Greater(t, mean, 0.15)
}
