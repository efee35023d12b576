package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// Alternative selects the alternative hypothesis of a rank-sum test.
type Alternative string

const (
	// AlternativeLess tests whether values in the first sample tend to be
	// smaller than values in the second.
	AlternativeLess Alternative = "less"
	// AlternativeGreater tests whether values in the first sample tend to be
	// larger than values in the second.
	AlternativeGreater Alternative = "greater"
	// AlternativeTwoSided tests for any location shift between the samples.
	AlternativeTwoSided Alternative = "two-sided"
)

// MannWhitneyUResult holds the outcome of a Mann-Whitney U test.
type MannWhitneyUResult struct {
	// U1 is the U statistic of the first sample, U2 of the second.
	// U1 + U2 = n1*n2 always holds.
	U1 float64
	U2 float64

	// PValue is computed from the normal approximation with tie and
	// continuity corrections.
	PValue float64

	// EffectSize is the rank-biserial correlation, 1 - 2*U1/(n1*n2).
	// Positive values mean the first sample tends to be smaller.
	EffectSize float64
}

// MannWhitneyU compares two independent samples by rank. Ranks are midranks
// (ties share the average of the positions they occupy) and the p-value uses
// the normal approximation with tie and continuity corrections, matching the
// asymptotic method of common statistics packages.
//
// When every observation is identical the variance of the rank distribution
// is zero and no ordering evidence exists; the test raises an
// UndefinedMetricWarning and reports p = 1.
func MannWhitneyU(x, y []float64, alternative Alternative) (*MannWhitneyUResult, error) {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "MannWhitneyU")
	}
	switch alternative {
	case AlternativeLess, AlternativeGreater, AlternativeTwoSided:
	default:
		return nil, errors.NewValueError("MannWhitneyU", "unknown alternative: "+string(alternative))
	}
	if err := errors.CheckNumericalStability("MannWhitneyU", x, 0); err != nil {
		return nil, err
	}
	if err := errors.CheckNumericalStability("MannWhitneyU", y, 0); err != nil {
		return nil, err
	}

	combined := make([]float64, 0, n1+n2)
	combined = append(combined, x...)
	combined = append(combined, y...)

	ranks, tieSizes := midranks(combined)

	var r1 float64
	for i := 0; i < n1; i++ {
		r1 += ranks[i]
	}

	u1 := r1 - float64(n1)*float64(n1+1)/2
	u2 := float64(n1)*float64(n2) - u1

	result := &MannWhitneyUResult{
		U1:         u1,
		U2:         u2,
		EffectSize: 1 - 2*u1/(float64(n1)*float64(n2)),
	}

	n := float64(n1 + n2)
	mu := float64(n1) * float64(n2) / 2

	// Variance with tie correction:
	// sigma^2 = (n1*n2/12) * ((n+1) - sum(t^3-t)/(n*(n-1)))
	var tieSum float64
	for _, t := range tieSizes {
		tf := float64(t)
		tieSum += tf*tf*tf - tf
	}
	sigma2 := float64(n1) * float64(n2) / 12 * ((n + 1) - tieSum/(n*(n-1)))

	if sigma2 <= 0 {
		errors.Warn(errors.NewUndefinedMetricWarning(
			"mannwhitneyu", "zero variance in rank distribution (all values tied)", 1.0))
		result.PValue = 1.0
		return result, nil
	}
	sigma := math.Sqrt(sigma2)

	stdNormal := distuv.Normal{Mu: 0, Sigma: 1}

	// Continuity correction shifts the statistic half a step toward the mean.
	switch alternative {
	case AlternativeLess:
		result.PValue = stdNormal.CDF((u1 + 0.5 - mu) / sigma)
	case AlternativeGreater:
		result.PValue = stdNormal.Survival((u1 - 0.5 - mu) / sigma)
	case AlternativeTwoSided:
		u := u1
		if u2 > u {
			u = u2
		}
		p := 2 * stdNormal.Survival((u-0.5-mu)/sigma)
		if p > 1 {
			p = 1
		}
		result.PValue = p
	}

	return result, nil
}

// midranks assigns 1-based ranks to values, giving tied runs the average of
// the positions they occupy. It also returns the size of each tied run for
// the variance correction.
func midranks(values []float64) ([]float64, []int) {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, n)
	var tieSizes []int

	for i := 0; i < n; {
		j := i
		for j < n && values[idx[j]] == values[idx[i]] {
			j++
		}
		// Average of 1-based positions i+1 .. j.
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		if j-i > 1 {
			tieSizes = append(tieSizes, j-i)
		}
		i = j
	}

	return ranks, tieSizes
}
