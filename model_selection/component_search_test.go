package model_selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentSearchSelectsArgmin(t *testing.T) {
	X, y := makeSeparableData(12, 5, 5.0, 1)

	search := &ComponentSearch{
		MaxComponents: 4,
		Folds:         NewStratifiedKFold(4, true, 42),
	}
	result, err := search.Search(X, y)
	require.NoError(t, err)

	require.NotEmpty(t, result.Components)
	assert.GreaterOrEqual(t, result.BestComponents, 1)
	assert.LessOrEqual(t, result.BestComponents, 4)

	// The selected count carries the minimum of the recorded curve, and the
	// first index attaining it.
	minErr := result.MSEByComponent[0]
	minH := result.Components[0]
	for i, v := range result.MSEByComponent {
		if v < minErr {
			minErr = v
			minH = result.Components[i]
		}
	}
	assert.Equal(t, minH, result.BestComponents)
}

func TestComponentSearchCurveShape(t *testing.T) {
	X, y := makeSeparableData(12, 5, 5.0, 2)

	search := &ComponentSearch{
		MaxComponents: 3,
		Folds:         NewStratifiedKFold(4, true, 42),
	}
	result, err := search.Search(X, y)
	require.NoError(t, err)

	require.Len(t, result.MSEByComponent, len(result.Components))
	require.Len(t, result.PerFoldMSE, len(result.Components))
	for i, perFold := range result.PerFoldMSE {
		require.Len(t, perFold, 4)
		mean := 0.0
		for _, v := range perFold {
			mean += v
		}
		mean /= 4
		assert.InDelta(t, result.MSEByComponent[i], mean, 1e-12)
	}
}

func TestComponentSearchSeparableDataLowError(t *testing.T) {
	// A strong mean shift makes the encoded label nearly a linear function
	// of the features, so the best cross-validated MSE is far below the
	// variance of the 0/1 labels (0.25).
	X, y := makeSeparableData(15, 5, 6.0, 3)

	search := &ComponentSearch{
		MaxComponents: 4,
		Folds:         NewStratifiedKFold(5, true, 42),
	}
	result, err := search.Search(X, y)
	require.NoError(t, err)

	best := result.MSEByComponent[result.BestComponents-1]
	assert.Less(t, best, 0.1)
}

func TestComponentSearchCapsRange(t *testing.T) {
	// 8 samples, 3 features: training folds of 6 keep at most 3 components.
	X, y := makeSeparableData(4, 3, 3.0, 4)

	search := &ComponentSearch{
		MaxComponents: 10,
		Folds:         NewStratifiedKFold(4, true, 42),
	}
	result, err := search.Search(X, y)
	require.NoError(t, err)
	assert.LessOrEqual(t, result.Components[len(result.Components)-1], 3)
}

func TestComponentSearchValidation(t *testing.T) {
	X, y := makeSeparableData(5, 3, 1.0, 5)

	_, err := (&ComponentSearch{MaxComponents: 0, Folds: NewStratifiedKFold(3, true, 1)}).Search(X, y)
	assert.Error(t, err)

	_, err = (&ComponentSearch{MaxComponents: 2}).Search(X, y)
	assert.Error(t, err)
}

func TestComponentSearchBestPerFoldMSE(t *testing.T) {
	X, y := makeSeparableData(10, 4, 4.0, 6)

	search := &ComponentSearch{
		MaxComponents: 3,
		Folds:         NewStratifiedKFold(4, true, 42),
	}
	result, err := search.Search(X, y)
	require.NoError(t, err)

	perFold := result.BestPerFoldMSE()
	require.Len(t, perFold, 4)
	assert.Equal(t, result.PerFoldMSE[result.BestComponents-1], perFold)
}
