package preprocessing

import (
	"bytes"
	"encoding/gob"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func gobRoundTrip(t *testing.T, in, out interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(in); err != nil {
		t.Fatalf("gob encode error = %v", err)
	}
	if err := gob.NewDecoder(&buf).Decode(out); err != nil {
		t.Fatalf("gob decode error = %v", err)
	}
}

func TestLabelEncoderGobKeepsClasses(t *testing.T) {
	enc := NewLabelEncoder()
	if err := enc.Fit([]string{"control", "treated", "control", "treated"}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	restored := &LabelEncoder{}
	gobRoundTrip(t, enc, restored)

	if !restored.IsFitted() {
		t.Fatal("restored encoder should report fitted")
	}
	classes := restored.Classes()
	if len(classes) != 2 || classes[0] != "control" || classes[1] != "treated" {
		t.Errorf("restored Classes() = %v, want [control treated]", classes)
	}

	codes, err := restored.TransformInts([]string{"treated", "control"})
	if err != nil {
		t.Fatalf("restored TransformInts() error = %v", err)
	}
	if codes[0] != 1 || codes[1] != 0 {
		t.Errorf("restored codes = %v, want [1 0]", codes)
	}

	labels, err := restored.InverseTransform([]int{0, 1})
	if err != nil {
		t.Fatalf("restored InverseTransform() error = %v", err)
	}
	if labels[0] != "control" || labels[1] != "treated" {
		t.Errorf("restored labels = %v, want [control treated]", labels)
	}
}

func TestStandardScalerGobKeepsStatistics(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})

	scaler := NewStandardScalerDefault()
	if err := scaler.Fit(X); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	restored := &StandardScaler{}
	gobRoundTrip(t, scaler, restored)

	if !restored.IsFitted() {
		t.Fatal("restored scaler should report fitted")
	}
	if restored.NFeatures != 2 {
		t.Errorf("restored NFeatures = %d, want 2", restored.NFeatures)
	}
	for j := 0; j < 2; j++ {
		if restored.Mean[j] != scaler.Mean[j] || restored.Scale[j] != scaler.Scale[j] {
			t.Errorf("restored statistics differ: Mean %v vs %v, Scale %v vs %v",
				restored.Mean, scaler.Mean, restored.Scale, scaler.Scale)
		}
	}

	want, err := scaler.Transform(X)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	got, err := restored.Transform(X)
	if err != nil {
		t.Fatalf("restored Transform() error = %v", err)
	}
	if !mat.EqualApprox(want, got, 1e-12) {
		t.Error("restored scaler transforms differently from the original")
	}
}

func TestArcsinhTransformerGobKeepsDimensions(t *testing.T) {
	X := mat.NewDense(2, 3, []float64{0, 1, -2, 3, 4, 5})

	tr := NewArcsinhTransformer()
	if err := tr.Fit(X); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	restored := &ArcsinhTransformer{}
	gobRoundTrip(t, tr, restored)

	if !restored.IsFitted() {
		t.Fatal("restored transformer should report fitted")
	}
	if restored.NFeatures != 3 {
		t.Errorf("restored NFeatures = %d, want 3", restored.NFeatures)
	}
	if _, err := restored.Transform(X); err != nil {
		t.Errorf("restored Transform() error = %v", err)
	}
}

func TestLabelEncoderGobUnfitted(t *testing.T) {
	restored := &LabelEncoder{}
	gobRoundTrip(t, NewLabelEncoder(), restored)

	if restored.IsFitted() {
		t.Error("restored unfitted encoder should not report fitted")
	}
	if _, err := restored.TransformInts([]string{"x"}); err == nil {
		t.Error("restored unfitted encoder should refuse TransformInts")
	}
}
