package metrics

import (
	"math"
	"strings"
	"testing"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []int
		yPred   []int
		want    float64
		wantErr bool
	}{
		{
			name:  "Perfect predictions",
			yTrue: []int{0, 1, 1, 0},
			yPred: []int{0, 1, 1, 0},
			want:  1.0,
		},
		{
			name:  "All wrong",
			yTrue: []int{0, 0, 1, 1},
			yPred: []int{1, 1, 0, 0},
			want:  0.0,
		},
		{
			name:  "Half correct",
			yTrue: []int{0, 1, 0, 1},
			yPred: []int{0, 1, 1, 0},
			want:  0.5,
		},
		{
			name:  "Multiclass",
			yTrue: []int{0, 1, 2, 2, 1, 0},
			yPred: []int{0, 1, 2, 1, 1, 2},
			want:  4.0 / 6.0,
		},
		{
			name:    "Empty input",
			yTrue:   []int{},
			yPred:   []int{},
			wantErr: true,
		},
		{
			name:    "Length mismatch",
			yTrue:   []int{0, 1, 0},
			yPred:   []int{0, 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}
			if math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfusionMatrix(t *testing.T) {
	labels := []string{"A", "B"}
	yTrue := []int{0, 0, 0, 1, 1, 1}
	yPred := []int{0, 0, 1, 1, 1, 0}

	cm, err := ConfusionMatrixFrom(yTrue, yPred, labels)
	if err != nil {
		t.Fatalf("ConfusionMatrixFrom() error = %v", err)
	}

	if cm.Counts[0][0] != 2 || cm.Counts[0][1] != 1 {
		t.Errorf("row A = %v, want [2 1]", cm.Counts[0])
	}
	if cm.Counts[1][0] != 1 || cm.Counts[1][1] != 2 {
		t.Errorf("row B = %v, want [1 2]", cm.Counts[1])
	}
	if got := cm.Total(); got != 6 {
		t.Errorf("Total() = %d, want 6", got)
	}
	if got := cm.Correct(); got != 4 {
		t.Errorf("Correct() = %d, want 4", got)
	}
	if got := cm.Accuracy(); math.Abs(got-4.0/6.0) > 1e-10 {
		t.Errorf("Accuracy() = %v, want %v", got, 4.0/6.0)
	}
}

func TestConfusionMatrixPoolsAcrossFolds(t *testing.T) {
	cm := NewConfusionMatrix([]string{"A", "B"})

	// Two held-out folds accumulated into one matrix.
	if err := cm.AddAll([]int{0, 1}, []int{0, 1}); err != nil {
		t.Fatalf("AddAll() fold 1 error = %v", err)
	}
	if err := cm.AddAll([]int{0, 1}, []int{1, 1}); err != nil {
		t.Fatalf("AddAll() fold 2 error = %v", err)
	}

	if got := cm.Total(); got != 4 {
		t.Errorf("Total() = %d, want 4", got)
	}
	if got := cm.Accuracy(); math.Abs(got-0.75) > 1e-10 {
		t.Errorf("Accuracy() = %v, want 0.75", got)
	}
}

func TestConfusionMatrixOutOfRange(t *testing.T) {
	cm := NewConfusionMatrix([]string{"A", "B"})

	if err := cm.Add(2, 0); err == nil {
		t.Error("Add() with out-of-range true class should return error")
	}
	if err := cm.Add(0, -1); err == nil {
		t.Error("Add() with out-of-range predicted class should return error")
	}
	if err := cm.AddAll([]int{0, 1}, []int{0}); err == nil {
		t.Error("AddAll() with mismatched lengths should return error")
	}
}

func TestConfusionMatrixEmptyAccuracy(t *testing.T) {
	cm := NewConfusionMatrix([]string{"A", "B"})
	if got := cm.Accuracy(); got != 0 {
		t.Errorf("Accuracy() on empty matrix = %v, want 0", got)
	}
}

func TestClassReport(t *testing.T) {
	// True: 3 A, 3 B. One swap each way, so every ratio is 2/3.
	cm, err := ConfusionMatrixFrom(
		[]int{0, 0, 0, 1, 1, 1},
		[]int{0, 0, 1, 1, 1, 0},
		[]string{"A", "B"},
	)
	if err != nil {
		t.Fatalf("ConfusionMatrixFrom() error = %v", err)
	}

	report := cm.ClassReport()
	if len(report) != 2 {
		t.Fatalf("ClassReport() returned %d entries, want 2", len(report))
	}

	for _, m := range report {
		if math.Abs(m.Precision-2.0/3.0) > 1e-10 {
			t.Errorf("class %s precision = %v, want %v", m.Label, m.Precision, 2.0/3.0)
		}
		if math.Abs(m.Recall-2.0/3.0) > 1e-10 {
			t.Errorf("class %s recall = %v, want %v", m.Label, m.Recall, 2.0/3.0)
		}
		if math.Abs(m.F1-2.0/3.0) > 1e-10 {
			t.Errorf("class %s F1 = %v, want %v", m.Label, m.F1, 2.0/3.0)
		}
		if m.Support != 3 {
			t.Errorf("class %s support = %d, want 3", m.Label, m.Support)
		}
	}
}

func TestClassReportUndefinedRatios(t *testing.T) {
	// Class B never predicted and never true: precision, recall, F1 all 0.
	cm, err := ConfusionMatrixFrom([]int{0, 0}, []int{0, 0}, []string{"A", "B"})
	if err != nil {
		t.Fatalf("ConfusionMatrixFrom() error = %v", err)
	}

	report := cm.ClassReport()
	b := report[1]
	if b.Precision != 0 || b.Recall != 0 || b.F1 != 0 || b.Support != 0 {
		t.Errorf("undefined class metrics = %+v, want all zero", b)
	}
}

func TestConfusionMatrixString(t *testing.T) {
	cm, err := ConfusionMatrixFrom([]int{0, 1}, []int{0, 0}, []string{"healthy", "treated"})
	if err != nil {
		t.Fatalf("ConfusionMatrixFrom() error = %v", err)
	}

	s := cm.String()
	for _, want := range []string{"healthy", "treated"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing label %q:\n%s", want, s)
		}
	}
	if lines := strings.Count(strings.TrimRight(s, "\n"), "\n") + 1; lines != 3 {
		t.Errorf("String() has %d lines, want 3 (header + 2 rows)", lines)
	}
}
