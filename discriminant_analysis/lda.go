// Package discriminant_analysis implements linear discriminant analysis,
// the classifier applied to PLS latent scores in the PLS-DA pipeline.
package discriminant_analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/core/model"
	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// LinearDiscriminantAnalysis fits per-class means with a shared pooled
// covariance and classifies by the largest linear discriminant score.
type LinearDiscriminantAnalysis struct {
	state *model.StateManager

	// ridge is added to the pooled covariance diagonal when plain inversion
	// fails, mirroring the ridge retry of the linear regression solver.
	ridge float64

	// Fitted parameters
	classes_   []int
	priors_    []float64    // class priors, by class index
	means_     *mat.Dense   // k x d class means
	covInv_    *mat.Dense   // d x d inverse pooled covariance
	linear_    *mat.Dense   // k x d: rows are Sigma^-1 mu_k
	constants_ []float64    // per-class constant term of the discriminant
	nFeatures_ int
}

// LDAOption is a functional option for LinearDiscriminantAnalysis.
type LDAOption func(*LinearDiscriminantAnalysis)

// WithRidge sets the diagonal loading used when the pooled covariance is
// singular.
func WithRidge(ridge float64) LDAOption {
	return func(lda *LinearDiscriminantAnalysis) {
		lda.ridge = ridge
	}
}

var _ model.Classifier = (*LinearDiscriminantAnalysis)(nil)

// NewLinearDiscriminantAnalysis creates an LDA classifier.
func NewLinearDiscriminantAnalysis(opts ...LDAOption) *LinearDiscriminantAnalysis {
	lda := &LinearDiscriminantAnalysis{
		state: model.NewStateManager(),
		ridge: 1e-6,
	}
	for _, opt := range opts {
		opt(lda)
	}
	return lda
}

// Fit estimates class means, priors and the pooled covariance from X
// (n x d) and the encoded labels y (n x 1). Every class must have at least
// two samples so the pooled covariance is defined.
func (lda *LinearDiscriminantAnalysis) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearDiscriminantAnalysis.Fit")

	n, d := X.Dims()
	yn, yc := y.Dims()
	if n == 0 || d == 0 {
		return errors.NewValueError("LinearDiscriminantAnalysis.Fit", "empty matrix")
	}
	if yn != n || yc != 1 {
		return errors.NewDimensionError("LinearDiscriminantAnalysis.Fit", n, yn, 0)
	}

	// Extract and sort the distinct encoded classes.
	classSet := make(map[int][]int)
	for i := 0; i < n; i++ {
		c := int(y.At(i, 0))
		classSet[c] = append(classSet[c], i)
	}
	if len(classSet) < 2 {
		return errors.NewValidationError("y", "need at least 2 classes", len(classSet))
	}

	classes := make([]int, 0, len(classSet))
	for c := range classSet {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	for _, c := range classes {
		if len(classSet[c]) < 2 {
			return errors.NewValidationError("y",
				"every class needs at least 2 samples for the pooled covariance", c)
		}
	}

	k := len(classes)
	means := mat.NewDense(k, d, nil)
	priors := make([]float64, k)
	for ci, c := range classes {
		idx := classSet[c]
		priors[ci] = float64(len(idx)) / float64(n)
		for j := 0; j < d; j++ {
			sum := 0.0
			for _, i := range idx {
				sum += X.At(i, j)
			}
			means.Set(ci, j, sum/float64(len(idx)))
		}
	}

	// Pooled within-class covariance with n-k denominator.
	cov := mat.NewDense(d, d, nil)
	for ci, c := range classes {
		for _, i := range classSet[c] {
			for a := 0; a < d; a++ {
				da := X.At(i, a) - means.At(ci, a)
				for b := 0; b < d; b++ {
					db := X.At(i, b) - means.At(ci, b)
					cov.Set(a, b, cov.At(a, b)+da*db)
				}
			}
		}
	}
	cov.Scale(1/float64(n-k), cov)

	var covInv mat.Dense
	if err := covInv.Inverse(cov); err != nil {
		// Singular pooled covariance: retry with diagonal loading.
		for j := 0; j < d; j++ {
			cov.Set(j, j, cov.At(j, j)+lda.ridge)
		}
		if err := covInv.Inverse(cov); err != nil {
			return errors.NewModelError("LinearDiscriminantAnalysis.Fit",
				"pooled covariance is singular", errors.ErrSingularMatrix)
		}
	}

	// Precompute the linear terms Sigma^-1 mu_k and constants.
	linear := mat.NewDense(k, d, nil)
	linear.Mul(means, &covInv)
	constants := make([]float64, k)
	for ci := 0; ci < k; ci++ {
		quad := 0.0
		for j := 0; j < d; j++ {
			quad += linear.At(ci, j) * means.At(ci, j)
		}
		constants[ci] = -0.5*quad + math.Log(priors[ci])
	}

	lda.classes_ = classes
	lda.priors_ = priors
	lda.means_ = means
	lda.covInv_ = &covInv
	lda.linear_ = linear
	lda.constants_ = constants
	lda.nFeatures_ = d
	lda.state.SetDimensions(d, n)
	lda.state.SetFitted()
	return nil
}

// DecisionFunction returns the n-by-k matrix of linear discriminant scores.
func (lda *LinearDiscriminantAnalysis) DecisionFunction(X mat.Matrix) (*mat.Dense, error) {
	if err := lda.state.RequireFitted(); err != nil {
		return nil, errors.NewNotFittedError("LinearDiscriminantAnalysis", "DecisionFunction")
	}

	n, d := X.Dims()
	if d != lda.nFeatures_ {
		return nil, errors.NewDimensionError("LinearDiscriminantAnalysis.DecisionFunction",
			lda.nFeatures_, d, 1)
	}

	k := len(lda.classes_)
	scores := mat.NewDense(n, k, nil)
	scores.Mul(X, lda.linear_.T())
	for i := 0; i < n; i++ {
		for ci := 0; ci < k; ci++ {
			scores.Set(i, ci, scores.At(i, ci)+lda.constants_[ci])
		}
	}
	return scores, nil
}

// Predict returns the encoded class with the highest discriminant score for
// each row of X, as an n-by-1 matrix.
func (lda *LinearDiscriminantAnalysis) Predict(X mat.Matrix) (mat.Matrix, error) {
	scores, err := lda.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	n, k := scores.Dims()
	pred := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		best, bestScore := 0, scores.At(i, 0)
		for ci := 1; ci < k; ci++ {
			if s := scores.At(i, ci); s > bestScore {
				best, bestScore = ci, s
			}
		}
		pred.Set(i, 0, float64(lda.classes_[best]))
	}
	return pred, nil
}

// PredictInts returns predictions as an int slice of encoded classes.
func (lda *LinearDiscriminantAnalysis) PredictInts(X mat.Matrix) ([]int, error) {
	pred, err := lda.Predict(X)
	if err != nil {
		return nil, err
	}
	n, _ := pred.Dims()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = int(pred.At(i, 0))
	}
	return out, nil
}

// PredictProba returns posterior class probabilities computed as a softmax
// over the discriminant scores, stabilized through log-sum-exp.
func (lda *LinearDiscriminantAnalysis) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	scores, err := lda.DecisionFunction(X)
	if err != nil {
		return nil, err
	}

	n, k := scores.Dims()
	proba := mat.NewDense(n, k, nil)
	row := make([]float64, k)
	for i := 0; i < n; i++ {
		for ci := 0; ci < k; ci++ {
			row[ci] = scores.At(i, ci)
		}
		lse := errors.LogSumExp(row)
		for ci := 0; ci < k; ci++ {
			proba.Set(i, ci, math.Exp(row[ci]-lse))
		}
	}
	return proba, nil
}

// Score returns the accuracy of the classifier on X against the encoded
// labels y (n x 1).
func (lda *LinearDiscriminantAnalysis) Score(X, y mat.Matrix) (float64, error) {
	pred, err := lda.Predict(X)
	if err != nil {
		return 0, err
	}

	n, _ := y.Dims()
	correct := 0
	for i := 0; i < n; i++ {
		if int(pred.At(i, 0)) == int(y.At(i, 0)) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// Classes returns the encoded class labels seen during fitting, ascending.
func (lda *LinearDiscriminantAnalysis) Classes() []int {
	out := make([]int, len(lda.classes_))
	copy(out, lda.classes_)
	return out
}

// Means returns the fitted k-by-d class mean matrix.
func (lda *LinearDiscriminantAnalysis) Means() *mat.Dense { return lda.means_ }

// Priors returns the fitted class priors in class order.
func (lda *LinearDiscriminantAnalysis) Priors() []float64 {
	out := make([]float64, len(lda.priors_))
	copy(out, lda.priors_)
	return out
}
