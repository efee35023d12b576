// Package preprocessing provides the feature and label transformations that
// prepare a sample table for latent-variable modeling: a variance-stabilizing
// arcsinh transform, per-column standardization, and categorical label
// encoding.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/core/model"
	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// StandardScaler standardizes features to zero mean and unit variance,
// column by column. The mean and scale are captured on Fit and reused by
// every later Transform, so unseen samples are projected with the training
// statistics rather than their own.
type StandardScaler struct {
	model.BaseEstimator

	// Mean holds the per-column means captured on Fit.
	Mean []float64

	// Scale holds the per-column standard deviations captured on Fit.
	Scale []float64

	// NFeatures is the column count seen on Fit.
	NFeatures int

	// WithMean controls whether the mean is subtracted.
	WithMean bool

	// WithStd controls whether columns are divided by their deviation.
	WithStd bool
}

var _ model.Transformer = (*StandardScaler)(nil)

// NewStandardScaler creates a StandardScaler with explicit centering and
// scaling switches.
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault creates a StandardScaler that both centers and
// scales, matching the usual standardization.
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit captures the per-column mean and population standard deviation of X.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewValueError("StandardScaler.Fit", "empty matrix")
	}

	s.Mean = make([]float64, cols)
	s.Scale = make([]float64, cols)
	s.NFeatures = cols

	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += X.At(i, j)
		}
		mean := sum / float64(rows)
		s.Mean[j] = mean

		variance := 0.0
		for i := 0; i < rows; i++ {
			diff := X.At(i, j) - mean
			variance += diff * diff
		}
		scale := math.Sqrt(variance / float64(rows))

		// A constant column has no scale; leave it untouched instead of
		// dividing by zero. CheckFeatureVariance reports such columns to the
		// caller before fitting.
		if scale < 1e-8 {
			scale = 1.0
		}
		s.Scale[j] = scale
	}

	s.SetFitted()
	return nil
}

// Transform standardizes X using the statistics captured on Fit.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	rows, cols := X.Dims()
	if cols != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, cols, 1)
	}

	result := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := X.At(i, j)
			if s.WithMean {
				v -= s.Mean[j]
			}
			if s.WithStd {
				v /= s.Scale[j]
			}
			result.Set(i, j, v)
		}
	}
	return result, nil
}

// FitTransform runs Fit and Transform in one call.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized values back to the original units.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	rows, cols := X.Dims()
	if cols != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, cols, 1)
	}

	result := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := X.At(i, j)
			if s.WithStd {
				v *= s.Scale[j]
			}
			if s.WithMean {
				v += s.Mean[j]
			}
			result.Set(i, j, v)
		}
	}
	return result, nil
}

// GetParams returns the scaler's hyperparameters.
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

// String returns a compact description of the scaler.
func (s *StandardScaler) String() string {
	return fmt.Sprintf("StandardScaler(with_mean=%v, with_std=%v)", s.WithMean, s.WithStd)
}

// CheckFeatureVariance reports the indices of columns whose population
// variance is below tol. Constant columns break standardization and must be
// rejected before the pipeline runs, not silently propagated as NaN.
func CheckFeatureVariance(X mat.Matrix, tol float64) []int {
	rows, cols := X.Dims()
	var degenerate []int
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += X.At(i, j)
		}
		mean := sum / float64(rows)

		variance := 0.0
		for i := 0; i < rows; i++ {
			diff := X.At(i, j) - mean
			variance += diff * diff
		}
		variance /= float64(rows)
		if variance < tol {
			degenerate = append(degenerate, j)
		}
	}
	return degenerate
}
