package discriminant_analysis

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// makeBlobs builds two well-separated Gaussian clusters with encoded labels
// 0 and 1.
func makeBlobs(nPerClass int, shift float64, seed uint64) (*mat.Dense, *mat.Dense) {
	r := rand.New(rand.NewPCG(seed, seed))
	n := 2 * nPerClass
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < nPerClass; i++ {
		X.Set(i, 0, r.NormFloat64())
		X.Set(i, 1, r.NormFloat64())
		y.Set(i, 0, 0)

		X.Set(nPerClass+i, 0, shift+r.NormFloat64())
		X.Set(nPerClass+i, 1, shift+r.NormFloat64())
		y.Set(nPerClass+i, 0, 1)
	}
	return X, y
}

func TestLDASeparableClasses(t *testing.T) {
	X, y := makeBlobs(20, 6.0, 1)

	lda := NewLinearDiscriminantAnalysis()
	require.NoError(t, lda.Fit(X, y))

	acc, err := lda.Score(X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc, "widely separated blobs should be classified perfectly")

	assert.Equal(t, []int{0, 1}, lda.Classes())
}

func TestLDAPredictProba(t *testing.T) {
	X, y := makeBlobs(15, 5.0, 2)

	lda := NewLinearDiscriminantAnalysis()
	require.NoError(t, lda.Fit(X, y))

	proba, err := lda.PredictProba(X)
	require.NoError(t, err)

	n, k := proba.Dims()
	require.Equal(t, 30, n)
	require.Equal(t, 2, k)
	for i := 0; i < n; i++ {
		rowSum := 0.0
		for ci := 0; ci < k; ci++ {
			p := proba.At(i, ci)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
			rowSum += p
		}
		assert.InDelta(t, 1.0, rowSum, 1e-9)
	}
}

func TestLDAThreeClasses(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 3))
	n := 45
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	centers := [][2]float64{{0, 0}, {8, 0}, {0, 8}}
	for c := 0; c < 3; c++ {
		for i := 0; i < 15; i++ {
			row := c*15 + i
			X.Set(row, 0, centers[c][0]+r.NormFloat64())
			X.Set(row, 1, centers[c][1]+r.NormFloat64())
			y.Set(row, 0, float64(c))
		}
	}

	lda := NewLinearDiscriminantAnalysis()
	require.NoError(t, lda.Fit(X, y))

	acc, err := lda.Score(X, y)
	require.NoError(t, err)
	assert.Greater(t, acc, 0.95)
	assert.Equal(t, []int{0, 1, 2}, lda.Classes())
}

func TestLDASingularCovarianceRidgeRetry(t *testing.T) {
	// Duplicate columns make the pooled covariance singular; the ridge retry
	// must still produce a usable classifier.
	r := rand.New(rand.NewPCG(4, 4))
	n := 20
	X := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		v := r.NormFloat64()
		if i >= n/2 {
			v += 10
			y.Set(i, 0, 1)
		}
		X.Set(i, 0, v)
		X.Set(i, 1, v)
	}

	lda := NewLinearDiscriminantAnalysis()
	require.NoError(t, lda.Fit(X, y))

	acc, err := lda.Score(X, y)
	require.NoError(t, err)
	assert.Greater(t, acc, 0.9)
}

func TestLDAValidation(t *testing.T) {
	lda := NewLinearDiscriminantAnalysis()

	// Single class.
	X := mat.NewDense(4, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	y := mat.NewDense(4, 1, []float64{0, 0, 0, 0})
	assert.Error(t, lda.Fit(X, y))

	// Class with a single member.
	y2 := mat.NewDense(4, 1, []float64{0, 0, 0, 1})
	assert.Error(t, lda.Fit(X, y2))
}

func TestLDANotFitted(t *testing.T) {
	lda := NewLinearDiscriminantAnalysis()
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	_, err := lda.Predict(X)
	assert.Error(t, err)
	_, err = lda.PredictProba(X)
	assert.Error(t, err)
}
