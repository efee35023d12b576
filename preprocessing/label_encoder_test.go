package preprocessing

import (
	"testing"
)

func TestLabelEncoderBijection(t *testing.T) {
	labels := []string{"citrus", "apple", "berry", "apple", "citrus", "berry"}

	enc := NewLabelEncoder()
	codes, err := enc.FitTransform(labels)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// Alphabetical class order.
	wantClasses := []string{"apple", "berry", "citrus"}
	gotClasses := enc.Classes()
	if len(gotClasses) != len(wantClasses) {
		t.Fatalf("Classes() = %v, want %v", gotClasses, wantClasses)
	}
	for i := range wantClasses {
		if gotClasses[i] != wantClasses[i] {
			t.Fatalf("Classes() = %v, want %v", gotClasses, wantClasses)
		}
	}

	// Decode every code and re-encode; the round trip must be exact.
	ints := make([]int, len(labels))
	for i := range labels {
		ints[i] = int(codes.At(i, 0))
	}
	decoded, err := enc.InverseTransform(ints)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}
	for i, l := range decoded {
		if l != labels[i] {
			t.Errorf("decoded[%d] = %q, want %q", i, l, labels[i])
		}
	}

	reencoded, err := enc.TransformInts(decoded)
	if err != nil {
		t.Fatalf("TransformInts() error = %v", err)
	}
	for i := range reencoded {
		if reencoded[i] != ints[i] {
			t.Errorf("re-encoded[%d] = %d, want %d", i, reencoded[i], ints[i])
		}
	}
}

func TestLabelEncoderUnknownLabel(t *testing.T) {
	enc := NewLabelEncoder()
	if err := enc.Fit([]string{"a", "b"}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := enc.Transform([]string{"a", "c"}); err == nil {
		t.Error("Transform() with unseen label should fail")
	}
}

func TestLabelEncoderStableAcrossInputOrder(t *testing.T) {
	a := NewLabelEncoder()
	b := NewLabelEncoder()
	if err := a.Fit([]string{"x", "y", "z"}); err != nil {
		t.Fatal(err)
	}
	if err := b.Fit([]string{"z", "x", "y", "x"}); err != nil {
		t.Fatal(err)
	}
	for label, code := range a.ClassToIndex {
		if b.ClassToIndex[label] != code {
			t.Errorf("code for %q differs: %d vs %d", label, code, b.ClassToIndex[label])
		}
	}
}

func TestLabelEncoderNotFitted(t *testing.T) {
	enc := NewLabelEncoder()
	if _, err := enc.Transform([]string{"a"}); err == nil {
		t.Error("Transform() on unfitted encoder should fail")
	}
	if _, err := enc.InverseTransform([]int{0}); err == nil {
		t.Error("InverseTransform() on unfitted encoder should fail")
	}
}
