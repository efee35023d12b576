package cross_decomposition

import (
	"bytes"
	"encoding/gob"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/core/model"
)

// matState is the gob-friendly form of a dense matrix.
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

// plsState is the serialized form of a fitted PLSRegression.
type plsState struct {
	NComponents int
	Scale       bool
	MaxIter     int
	Tol         float64

	XScores, YScores     matState
	XWeights, XLoadings  matState
	YLoadings, Rotations matState
	Coef                 matState
	Intercept            []float64

	XMean, XStd []float64
	YMean, YStd []float64

	NSamples, NFeatures, NTargets int
	XTotalSS, YTotalSS            float64
	XCompSS, YCompSS              []float64

	Fitted bool
}

// GobEncode serializes the model, including its fitted state.
func (pls *PLSRegression) GobEncode() ([]byte, error) {
	state := plsState{
		NComponents: pls.nComponents,
		Scale:       pls.scale,
		MaxIter:     pls.maxIter,
		Tol:         pls.tol,
		XScores:     toMatState(pls.xScores),
		YScores:     toMatState(pls.yScores),
		XWeights:    toMatState(pls.xWeights),
		XLoadings:   toMatState(pls.xLoadings),
		YLoadings:   toMatState(pls.yLoadings),
		Rotations:   toMatState(pls.xRotations),
		Coef:        toMatState(pls.coef),
		Intercept:   pls.intercept,
		XMean:       pls.xMean,
		XStd:        pls.xStd,
		YMean:       pls.yMean,
		YStd:        pls.yStd,
		NSamples:    pls.nSamples,
		NFeatures:   pls.nFeatures,
		NTargets:    pls.nTargets,
		XTotalSS:    pls.xTotalSS,
		YTotalSS:    pls.yTotalSS,
		XCompSS:     pls.xCompSS,
		YCompSS:     pls.yCompSS,
		Fitted:      pls.state.IsFitted(),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode restores a model serialized by GobEncode.
func (pls *PLSRegression) GobDecode(data []byte) error {
	var state plsState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}

	pls.nComponents = state.NComponents
	pls.scale = state.Scale
	pls.maxIter = state.MaxIter
	pls.tol = state.Tol
	pls.xScores = fromMatState(state.XScores)
	pls.yScores = fromMatState(state.YScores)
	pls.xWeights = fromMatState(state.XWeights)
	pls.xLoadings = fromMatState(state.XLoadings)
	pls.yLoadings = fromMatState(state.YLoadings)
	pls.xRotations = fromMatState(state.Rotations)
	pls.coef = fromMatState(state.Coef)
	pls.intercept = state.Intercept
	pls.xMean, pls.xStd = state.XMean, state.XStd
	pls.yMean, pls.yStd = state.YMean, state.YStd
	pls.nSamples = state.NSamples
	pls.nFeatures = state.NFeatures
	pls.nTargets = state.NTargets
	pls.xTotalSS, pls.yTotalSS = state.XTotalSS, state.YTotalSS
	pls.xCompSS, pls.yCompSS = state.XCompSS, state.YCompSS

	pls.state = model.NewStateManager()
	if state.Fitted {
		pls.state.SetDimensions(state.NFeatures, state.NSamples)
		pls.state.SetFitted()
	}
	return nil
}
