// Package datasets holds the sample table consumed by the PLS-DA pipeline,
// its CSV loader, and seeded synthetic generators used by tests and the
// example program.
package datasets

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// Table is the in-memory sample table: one row per sample, with an
// identifier, a group label, and numeric feature measurements. All derived
// artifacts of the pipeline are computed from a Table; the Table itself is
// never mutated.
type Table struct {
	IDs          []string
	Groups       []string
	FeatureNames []string
	X            *mat.Dense
}

// NSamples returns the number of rows.
func (t *Table) NSamples() int {
	if t.X == nil {
		return 0
	}
	n, _ := t.X.Dims()
	return n
}

// NFeatures returns the number of feature columns.
func (t *Table) NFeatures() int {
	if t.X == nil {
		return 0
	}
	_, p := t.X.Dims()
	return p
}

// ClassCounts returns the number of samples per distinct group label.
func (t *Table) ClassCounts() map[string]int {
	counts := make(map[string]int)
	for _, g := range t.Groups {
		counts[g]++
	}
	return counts
}

// Validate checks input adequacy before any computation: consistent shapes,
// at least two samples and one feature, finite feature cells, and at least
// two members in every class so stratified folding and pooled covariance
// estimation stay defined.
func (t *Table) Validate() error {
	n, p := t.NSamples(), t.NFeatures()
	if n < 2 {
		return errors.NewValidationError("samples", "need at least 2 samples", n)
	}
	if p < 1 {
		return errors.NewValidationError("features", "need at least 1 feature", p)
	}
	if len(t.IDs) != n {
		return errors.NewDimensionError("Table.Validate", n, len(t.IDs), 0)
	}
	if len(t.Groups) != n {
		return errors.NewDimensionError("Table.Validate", n, len(t.Groups), 0)
	}
	if len(t.FeatureNames) != p {
		return errors.NewDimensionError("Table.Validate", p, len(t.FeatureNames), 1)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			v := t.X.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.NewValueError("Table.Validate",
					"non-finite value in feature "+t.FeatureNames[j])
			}
		}
	}

	counts := t.ClassCounts()
	if len(counts) < 2 {
		return errors.NewValidationError("groups", "need at least 2 distinct groups", len(counts))
	}
	for g, c := range counts {
		if c < 2 {
			return errors.NewValidationError("groups",
				"class "+g+" has fewer than 2 samples", c)
		}
	}
	return nil
}

// CorrelationMatrix returns the p-by-p Pearson correlation matrix of the
// feature columns, the source of the correlation heatmap.
func (t *Table) CorrelationMatrix() *mat.SymDense {
	p := t.NFeatures()
	corr := mat.NewSymDense(p, nil)
	stat.CorrelationMatrix(corr, t.X, nil)
	return corr
}
