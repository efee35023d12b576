package preprocessing

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/core/model"
	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// LabelEncoder maps group label strings to small integer codes and back.
// Classes are sorted alphabetically on Fit so the mapping is stable across
// runs; the same encoder instance must be used for the whole pipeline so
// every stage agrees on the code of each class.
type LabelEncoder struct {
	model.BaseEstimator

	// ClassToIndex maps each label string to its integer code.
	ClassToIndex map[string]int

	// IndexToClass is the reverse lookup, indexed by code.
	IndexToClass []string
}

// NewLabelEncoder creates an unfitted LabelEncoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{}
}

// Fit establishes the label-to-code bijection from the distinct values of
// labels, in alphabetical order.
func (e *LabelEncoder) Fit(labels []string) error {
	if len(labels) == 0 {
		return errors.NewValueError("LabelEncoder.Fit", "empty label slice")
	}

	seen := make(map[string]bool)
	for _, l := range labels {
		seen[l] = true
	}

	classes := make([]string, 0, len(seen))
	for l := range seen {
		classes = append(classes, l)
	}
	sort.Strings(classes)

	e.IndexToClass = classes
	e.ClassToIndex = make(map[string]int, len(classes))
	for i, c := range classes {
		e.ClassToIndex[c] = i
	}

	e.SetFitted()
	return nil
}

// Transform encodes labels as an n-by-1 matrix of float64 codes, the shape
// the PLS regression consumes as its continuous target.
func (e *LabelEncoder) Transform(labels []string) (*mat.Dense, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("LabelEncoder", "Transform")
	}

	y := mat.NewDense(len(labels), 1, nil)
	for i, l := range labels {
		code, ok := e.ClassToIndex[l]
		if !ok {
			return nil, errors.NewValueError("LabelEncoder.Transform", "unknown label "+l)
		}
		y.Set(i, 0, float64(code))
	}
	return y, nil
}

// TransformInts encodes labels as an int slice, the shape classification
// metrics consume.
func (e *LabelEncoder) TransformInts(labels []string) ([]int, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("LabelEncoder", "TransformInts")
	}

	codes := make([]int, len(labels))
	for i, l := range labels {
		code, ok := e.ClassToIndex[l]
		if !ok {
			return nil, errors.NewValueError("LabelEncoder.TransformInts", "unknown label "+l)
		}
		codes[i] = code
	}
	return codes, nil
}

// FitTransform runs Fit and Transform in one call.
func (e *LabelEncoder) FitTransform(labels []string) (*mat.Dense, error) {
	if err := e.Fit(labels); err != nil {
		return nil, err
	}
	return e.Transform(labels)
}

// InverseTransform decodes integer codes back to the original label strings.
func (e *LabelEncoder) InverseTransform(codes []int) ([]string, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("LabelEncoder", "InverseTransform")
	}

	labels := make([]string, len(codes))
	for i, c := range codes {
		if c < 0 || c >= len(e.IndexToClass) {
			return nil, errors.NewValueError("LabelEncoder.InverseTransform", "code out of range")
		}
		labels[i] = e.IndexToClass[c]
	}
	return labels, nil
}

// Classes returns the label strings in code order.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.IndexToClass))
	copy(out, e.IndexToClass)
	return out
}

// NClasses returns the number of distinct classes seen on Fit.
func (e *LabelEncoder) NClasses() int {
	return len(e.IndexToClass)
}
