package discriminant_analysis

import (
	"bytes"
	"encoding/gob"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/core/model"
)

type matState struct {
	Rows, Cols int
	Data       []float64
}

func toMatState(m *mat.Dense) matState {
	if m == nil {
		return matState{}
	}
	r, c := m.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return matState{Rows: r, Cols: c, Data: data}
}

func fromMatState(s matState) *mat.Dense {
	if s.Rows == 0 || s.Cols == 0 {
		return nil
	}
	return mat.NewDense(s.Rows, s.Cols, s.Data)
}

type ldaState struct {
	Ridge     float64
	Classes   []int
	Priors    []float64
	Means     matState
	CovInv    matState
	Linear    matState
	Constants []float64
	NFeatures int
	NSamples  int
	Fitted    bool
}

// GobEncode serializes the classifier, including its fitted state.
func (lda *LinearDiscriminantAnalysis) GobEncode() ([]byte, error) {
	_, nSamples := lda.state.GetDimensions()
	state := ldaState{
		Ridge:     lda.ridge,
		Classes:   lda.classes_,
		Priors:    lda.priors_,
		Means:     toMatState(lda.means_),
		CovInv:    toMatState(lda.covInv_),
		Linear:    toMatState(lda.linear_),
		Constants: lda.constants_,
		NFeatures: lda.nFeatures_,
		NSamples:  nSamples,
		Fitted:    lda.state.IsFitted(),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode restores a classifier serialized by GobEncode.
func (lda *LinearDiscriminantAnalysis) GobDecode(data []byte) error {
	var state ldaState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}

	lda.ridge = state.Ridge
	lda.classes_ = state.Classes
	lda.priors_ = state.Priors
	lda.means_ = fromMatState(state.Means)
	lda.covInv_ = fromMatState(state.CovInv)
	lda.linear_ = fromMatState(state.Linear)
	lda.constants_ = state.Constants
	lda.nFeatures_ = state.NFeatures

	lda.state = model.NewStateManager()
	if state.Fitted {
		lda.state.SetDimensions(state.NFeatures, state.NSamples)
		lda.state.SetFitted()
	}
	return nil
}
