package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

func TestStandardScalerFitTransform(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		rows int
		cols int
	}{
		{
			name: "two columns",
			data: []float64{1, 10, 2, 20, 3, 30, 4, 40},
			rows: 4,
			cols: 2,
		},
		{
			name: "negative values",
			data: []float64{-5, 0, 1, 5, -2, 3},
			rows: 3,
			cols: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			X := mat.NewDense(tt.rows, tt.cols, tt.data)
			scaler := NewStandardScalerDefault()
			scaled, err := scaler.FitTransform(X)
			if err != nil {
				t.Fatalf("FitTransform() error = %v", err)
			}

			// Each standardized column has mean 0 and deviation 1.
			for j := 0; j < tt.cols; j++ {
				sum := 0.0
				for i := 0; i < tt.rows; i++ {
					sum += scaled.At(i, j)
				}
				mean := sum / float64(tt.rows)
				if math.Abs(mean) > 1e-10 {
					t.Errorf("column %d mean = %v, want 0", j, mean)
				}

				variance := 0.0
				for i := 0; i < tt.rows; i++ {
					d := scaled.At(i, j) - mean
					variance += d * d
				}
				std := math.Sqrt(variance / float64(tt.rows))
				if math.Abs(std-1.0) > 1e-10 {
					t.Errorf("column %d std = %v, want 1", j, std)
				}
			}
		})
	}
}

func TestStandardScalerInverseTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{1, 4, 2, 5, 3, 6})
	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	back, err := scaler.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(back.At(i, j)-X.At(i, j)) > 1e-10 {
				t.Errorf("round trip at (%d,%d) = %v, want %v", i, j, back.At(i, j), X.At(i, j))
			}
		}
	}
}

func TestStandardScalerNotFitted(t *testing.T) {
	scaler := NewStandardScalerDefault()
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	if _, err := scaler.Transform(X); err == nil {
		t.Error("Transform() on unfitted scaler should fail")
	} else {
		var nf *errors.NotFittedError
		if !errors.As(err, &nf) {
			t.Errorf("Transform() error = %v, want NotFittedError", err)
		}
	}
}

func TestStandardScalerDimensionMismatch(t *testing.T) {
	scaler := NewStandardScalerDefault()
	X := mat.NewDense(3, 2, []float64{1, 4, 2, 5, 3, 6})
	if err := scaler.Fit(X); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	wide := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	if _, err := scaler.Transform(wide); err == nil {
		t.Error("Transform() with wrong width should fail")
	}
}

func TestCheckFeatureVariance(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		rows int
		cols int
		want []int
	}{
		{
			name: "no degenerate columns",
			data: []float64{1, 10, 2, 20, 3, 30},
			rows: 3,
			cols: 2,
			want: nil,
		},
		{
			name: "one constant column",
			data: []float64{1, 7, 2, 7, 3, 7},
			rows: 3,
			cols: 2,
			want: []int{1},
		},
		{
			name: "all constant",
			data: []float64{5, 5, 5, 5},
			rows: 2,
			cols: 2,
			want: []int{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			X := mat.NewDense(tt.rows, tt.cols, tt.data)
			got := CheckFeatureVariance(X, 1e-12)
			if len(got) != len(tt.want) {
				t.Fatalf("CheckFeatureVariance() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("CheckFeatureVariance() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
