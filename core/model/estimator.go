package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface for models that learn from data.
type Fitter interface {
	// Fit trains the model on X and targets y.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface for models that produce predictions.
type Predictor interface {
	// Predict returns predictions for the rows of X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator is the base interface for supervised models.
type Estimator interface {
	Fitter
	Predictor
}

// LatentModel is the interface for models that project samples into a
// lower-dimensional latent space after fitting.
type LatentModel interface {
	Estimator

	// Transform projects the rows of X onto the latent components.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// NComponents returns the number of latent components.
	NComponents() int
}
