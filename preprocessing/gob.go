package preprocessing

import (
	"bytes"
	"encoding/gob"
)

// Gob state structs carry every fitted parameter explicitly, including the
// fitted flag, which lives in an unexported field that default struct
// encoding cannot reach.

type arcsinhState struct {
	NFeatures int
	Fitted    bool
}

// GobEncode serializes the transformer, including its fitted state.
func (t *ArcsinhTransformer) GobEncode() ([]byte, error) {
	state := arcsinhState{
		NFeatures: t.NFeatures,
		Fitted:    t.IsFitted(),
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode restores a transformer serialized by GobEncode.
func (t *ArcsinhTransformer) GobDecode(data []byte) error {
	var state arcsinhState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}
	t.NFeatures = state.NFeatures
	t.Reset()
	if state.Fitted {
		t.SetFitted()
	}
	return nil
}

type scalerState struct {
	Mean, Scale []float64
	NFeatures   int
	WithMean    bool
	WithStd     bool
	Fitted      bool
}

// GobEncode serializes the scaler, including its fitted statistics.
func (s *StandardScaler) GobEncode() ([]byte, error) {
	state := scalerState{
		Mean:      s.Mean,
		Scale:     s.Scale,
		NFeatures: s.NFeatures,
		WithMean:  s.WithMean,
		WithStd:   s.WithStd,
		Fitted:    s.IsFitted(),
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode restores a scaler serialized by GobEncode.
func (s *StandardScaler) GobDecode(data []byte) error {
	var state scalerState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}
	s.Mean = state.Mean
	s.Scale = state.Scale
	s.NFeatures = state.NFeatures
	s.WithMean = state.WithMean
	s.WithStd = state.WithStd
	s.Reset()
	if state.Fitted {
		s.SetFitted()
	}
	return nil
}

type encoderState struct {
	Classes []string
	Fitted  bool
}

// GobEncode serializes the encoder. Only the class list is stored; the
// forward map is rebuilt on decode.
func (e *LabelEncoder) GobEncode() ([]byte, error) {
	state := encoderState{
		Classes: e.IndexToClass,
		Fitted:  e.IsFitted(),
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode restores an encoder serialized by GobEncode.
func (e *LabelEncoder) GobDecode(data []byte) error {
	var state encoderState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}
	e.IndexToClass = state.Classes
	e.ClassToIndex = make(map[string]int, len(state.Classes))
	for i, c := range state.Classes {
		e.ClassToIndex[c] = i
	}
	e.Reset()
	if state.Fitted {
		e.SetFitted()
	}
	return nil
}
