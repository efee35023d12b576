package model

// EstimatorState represents the fitted state of a model.
type EstimatorState int

const (
	// NotFitted means the model has not been fitted yet.
	NotFitted EstimatorState = iota
	// Fitted means the model has been fitted.
	Fitted
)

// BaseEstimator is the embedding base for estimators that do not need the
// thread-safe StateManager.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as fitted.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to its initial state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
