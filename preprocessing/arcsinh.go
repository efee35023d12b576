package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/core/model"
	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// ArcsinhTransformer applies the inverse hyperbolic sine elementwise. The
// transform compresses large magnitudes like a logarithm but stays defined
// for zero and negative values, which is why it is preferred over log for
// measurement data.
type ArcsinhTransformer struct {
	model.BaseEstimator

	// NFeatures is the column count seen on Fit, used for dimension checks.
	NFeatures int
}

var _ model.Transformer = (*ArcsinhTransformer)(nil)

// NewArcsinhTransformer creates an ArcsinhTransformer.
func NewArcsinhTransformer() *ArcsinhTransformer {
	return &ArcsinhTransformer{}
}

// Fit records the feature width. The transform itself has no parameters.
func (t *ArcsinhTransformer) Fit(X mat.Matrix) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewValueError("ArcsinhTransformer.Fit", "empty matrix")
	}
	t.NFeatures = cols
	t.SetFitted()
	return nil
}

// Transform applies asinh to every cell of X.
func (t *ArcsinhTransformer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("ArcsinhTransformer", "Transform")
	}

	rows, cols := X.Dims()
	if cols != t.NFeatures {
		return nil, errors.NewDimensionError("ArcsinhTransformer.Transform", t.NFeatures, cols, 1)
	}

	result := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			result.Set(i, j, math.Asinh(X.At(i, j)))
		}
	}
	return result, nil
}

// FitTransform runs Fit and Transform in one call.
func (t *ArcsinhTransformer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}

// InverseTransform applies sinh to every cell, undoing Transform.
func (t *ArcsinhTransformer) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("ArcsinhTransformer", "InverseTransform")
	}

	rows, cols := X.Dims()
	if cols != t.NFeatures {
		return nil, errors.NewDimensionError("ArcsinhTransformer.InverseTransform", t.NFeatures, cols, 1)
	}

	result := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			result.Set(i, j, math.Sinh(X.At(i, j)))
		}
	}
	return result, nil
}
