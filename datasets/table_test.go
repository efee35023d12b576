package datasets

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Table)
		wantErr bool
	}{
		{
			name:   "valid table",
			mutate: func(*Table) {},
		},
		{
			name: "NaN feature cell",
			mutate: func(tb *Table) {
				tb.X.Set(0, 0, math.NaN())
			},
			wantErr: true,
		},
		{
			name: "infinite feature cell",
			mutate: func(tb *Table) {
				tb.X.Set(1, 1, math.Inf(1))
			},
			wantErr: true,
		},
		{
			name: "single-member class",
			mutate: func(tb *Table) {
				for i := 1; i < len(tb.Groups); i++ {
					tb.Groups[i] = "B"
				}
			},
			wantErr: true,
		},
		{
			name: "single class",
			mutate: func(tb *Table) {
				for i := range tb.Groups {
					tb.Groups[i] = "A"
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := MakeSeparated(5, 3, 2.0, 1)
			tt.mutate(tb)
			err := tb.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMakeSeparatedDeterministic(t *testing.T) {
	a := MakeSeparated(6, 4, 5.0, 42)
	b := MakeSeparated(6, 4, 5.0, 42)

	require.Equal(t, a.IDs, b.IDs)
	require.Equal(t, a.Groups, b.Groups)
	assert.True(t, mat.EqualApprox(a.X, b.X, 0), "same seed must reproduce the same table")

	c := MakeSeparated(6, 4, 5.0, 43)
	assert.False(t, mat.EqualApprox(a.X, c.X, 1e-12), "different seeds must differ")
}

func TestMakeSeparatedShapeAndGroups(t *testing.T) {
	tb := MakeSeparated(8, 5, 4.0, 7)
	require.NoError(t, tb.Validate())

	assert.Equal(t, 16, tb.NSamples())
	assert.Equal(t, 5, tb.NFeatures())

	counts := tb.ClassCounts()
	assert.Equal(t, 8, counts["A"])
	assert.Equal(t, 8, counts["B"])

	// The mean shift shows up in every feature column.
	for j := 0; j < 5; j++ {
		meanA, meanB := 0.0, 0.0
		for i := 0; i < 8; i++ {
			meanA += tb.X.At(i, j)
			meanB += tb.X.At(8+i, j)
		}
		assert.Greater(t, meanB/8-meanA/8, 1.0, "feature %d", j)
	}
}

func TestCorrelationMatrix(t *testing.T) {
	tb := MakeNull(10, 4, 3)
	corr := tb.CorrelationMatrix()

	r, c := corr.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 4, c)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 1.0, corr.At(i, i), 1e-12)
		for j := 0; j < 4; j++ {
			assert.GreaterOrEqual(t, corr.At(i, j), -1.0)
			assert.LessOrEqual(t, corr.At(i, j), 1.0)
		}
	}
}
