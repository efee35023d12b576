package model

import "gonum.org/v1/gonum/mat"

// Transformer is the interface for data transformation steps.
type Transformer interface {
	// Fit learns the parameters needed for the transformation.
	Fit(X mat.Matrix) error

	// Transform applies the transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform runs Fit and Transform in one call.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
