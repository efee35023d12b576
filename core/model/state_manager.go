// Fitted-state tracking shared by the estimators. BaseEstimator covers the
// single-goroutine transformers; StateManager is the composed variant for
// models whose fitted artifacts are read concurrently, such as the PLS model
// queried from every permutation worker.

package model

import (
	"fmt"
	"sync"
)

// StateManager tracks whether a model is fitted and the data dimensions it
// was fitted on, safe for concurrent readers.
type StateManager struct {
	// Fitted is exported so gob state structs can carry it.
	Fitted bool
	mu     sync.RWMutex

	// NFeatures and NSamples record the training dimensions for
	// prediction-time shape checks.
	NFeatures int
	NSamples  int
}

// NewStateManager creates an unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted reports whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fitted
}

// SetFitted marks the model as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = true
}

// Reset returns the manager to its unfitted state and clears the recorded
// dimensions.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = false
	s.NFeatures = 0
	s.NSamples = 0
}

// SetDimensions records the feature and sample counts seen during fitting.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NFeatures = nFeatures
	s.NSamples = nSamples
}

// GetDimensions returns the feature and sample counts seen during fitting.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NFeatures, s.NSamples
}

// RequireFitted returns an error if the model has not been fitted.
func (s *StateManager) RequireFitted() error {
	if !s.IsFitted() {
		return fmt.Errorf("model has not been fitted yet. Call Fit() first")
	}
	return nil
}
