package cross_decomposition

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// VIPScores computes the Variable Importance in Projection score for every
// feature of a fitted PLS model. Each component a contributes a weight
// proportional to SS_a = (t_a . t_a)(q_a . q_a), the share of the target it
// explains; the VIP of feature i is
//
//	VIP_i = sqrt(p * sum_a SS_a (w_ia / ||w_a||)^2 / sum_a SS_a)
//
// Scores are non-negative and satisfy mean(VIP^2) = 1, so the conventional
// interpretive threshold of 1.0 marks features above the average importance.
func VIPScores(pls *PLSRegression) ([]float64, error) {
	if pls == nil || pls.xWeights == nil {
		return nil, errors.NewNotFittedError("PLSRegression", "VIPScores")
	}

	p, h := pls.xWeights.Dims()

	compSS := make([]float64, h)
	totalSS := 0.0
	for a := 0; a < h; a++ {
		t := pls.xScores.ColView(a)
		q := pls.yLoadings.ColView(a)
		compSS[a] = mat.Dot(t, t) * mat.Dot(q, q)
		totalSS += compSS[a]
	}
	if totalSS <= 0 {
		return nil, errors.NewModelError("VIPScores", "no explained target variance",
			errors.ErrSingularMatrix)
	}

	vip := make([]float64, p)
	for i := 0; i < p; i++ {
		weighted := 0.0
		for a := 0; a < h; a++ {
			w := pls.xWeights.ColView(a)
			wNorm := mat.Norm(w, 2)
			frac := errors.SafeDivide(pls.xWeights.At(i, a), wNorm)
			weighted += compSS[a] / totalSS * frac * frac
		}
		vip[i] = math.Sqrt(float64(p) * weighted)
	}
	return vip, nil
}
