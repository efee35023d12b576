// Package cross_decomposition implements partial least squares regression,
// the latent-variable model at the center of the PLS-DA pipeline. The
// estimator follows scikit-learn's PLSRegression surface: NIPALS fitting
// with regression deflation, projection of new samples into the latent
// space, prediction in original units, and variance-explained diagnostics.
package cross_decomposition

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/core/model"
	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// PLSRegression is a partial least squares regression estimator fitted with
// the NIPALS algorithm. For PLS-DA the target Y is the encoded class label
// treated as a continuous value.
type PLSRegression struct {
	state *model.StateManager

	// Hyperparameters
	nComponents int
	scale       bool
	maxIter     int
	tol         float64

	// Fitted parameters, all in the centered (and optionally scaled) space.
	xScores    *mat.Dense // T: n x h
	yScores    *mat.Dense // U: n x h
	xWeights   *mat.Dense // W: p x h, each column unit norm
	xLoadings  *mat.Dense // P: p x h
	yLoadings  *mat.Dense // Q: m x h
	xRotations *mat.Dense // R = W (P^T W)^-1: p x h

	coef      *mat.Dense // p x m, original units
	intercept []float64  // length m, original units

	xMean, xStd []float64
	yMean, yStd []float64

	nSamples  int
	nFeatures int
	nTargets  int

	// Sum of squares of the centered/scaled X and Y, and the per-component
	// shares captured, for VarianceExplained.
	xTotalSS, yTotalSS float64
	xCompSS, yCompSS   []float64
}

// Option configures a PLSRegression.
type Option func(*PLSRegression)

// WithNComponents sets the number of latent components to extract.
func WithNComponents(h int) Option {
	return func(p *PLSRegression) {
		p.nComponents = h
	}
}

// WithScale sets whether columns are divided by their standard deviation
// before fitting, in addition to centering.
func WithScale(scale bool) Option {
	return func(p *PLSRegression) {
		p.scale = scale
	}
}

// WithMaxIter sets the NIPALS inner-loop iteration cap.
func WithMaxIter(maxIter int) Option {
	return func(p *PLSRegression) {
		p.maxIter = maxIter
	}
}

// WithTol sets the NIPALS inner-loop convergence tolerance.
func WithTol(tol float64) Option {
	return func(p *PLSRegression) {
		p.tol = tol
	}
}

var _ model.LatentModel = (*PLSRegression)(nil)

// NewPLSRegression creates a PLSRegression with scikit-learn's defaults:
// 2 components, scaling on, 500 iterations, tolerance 1e-06.
func NewPLSRegression(opts ...Option) *PLSRegression {
	pls := &PLSRegression{
		state:       model.NewStateManager(),
		nComponents: 2,
		scale:       true,
		maxIter:     500,
		tol:         1e-06,
	}
	for _, opt := range opts {
		opt(pls)
	}
	return pls
}

// Fit runs NIPALS on X (n x p) and Y (n x m). The component count must lie
// in [1, min(n-1, p)]; NIPALS may extract fewer components than requested if
// the residual is exhausted, in which case a ConvergenceWarning is emitted
// and all fitted shapes shrink to the extracted count.
func (pls *PLSRegression) Fit(X, Y mat.Matrix) (err error) {
	defer errors.Recover(&err, "PLSRegression.Fit")

	n, p := X.Dims()
	yn, m := Y.Dims()
	if n == 0 || p == 0 {
		return errors.NewValueError("PLSRegression.Fit", "empty matrix")
	}
	if yn != n {
		return errors.NewDimensionError("PLSRegression.Fit", n, yn, 0)
	}

	maxH := n - 1
	if p < maxH {
		maxH = p
	}
	if pls.nComponents < 1 || pls.nComponents > maxH {
		return errors.NewValidationError("n_components",
			"must lie in [1, min(n_samples-1, n_features)]", pls.nComponents)
	}

	if err := errors.CheckMatrix("PLSRegression.Fit", X, n, p, 0); err != nil {
		return err
	}

	Xc, xMean, xStd := centerScale(X, pls.scale)
	Yc, yMean, yStd := centerScale(Y, pls.scale)
	pls.xMean, pls.xStd = xMean, xStd
	pls.yMean, pls.yStd = yMean, yStd

	pls.xTotalSS = sumSquares(Xc)
	pls.yTotalSS = sumSquares(Yc)

	h := pls.nComponents
	T := mat.NewDense(n, h, nil)
	U := mat.NewDense(n, h, nil)
	W := mat.NewDense(p, h, nil)
	P := mat.NewDense(p, h, nil)
	Q := mat.NewDense(m, h, nil)
	xCompSS := make([]float64, 0, h)
	yCompSS := make([]float64, 0, h)

	Xres := mat.DenseCopyOf(Xc)
	Yres := mat.DenseCopyOf(Yc)

	const eps = 1e-12
	extracted := 0
	for a := 0; a < h; a++ {
		w, t, q, u, ok := pls.nipalsComponent(Xres, Yres)
		if !ok {
			errors.Warn(errors.NewConvergenceWarning("NIPALS", a,
				"residual exhausted, truncating to extracted components"))
			break
		}

		tt := mat.Dot(t, t)
		if tt < eps {
			errors.Warn(errors.NewConvergenceWarning("NIPALS", a,
				"degenerate score vector, truncating to extracted components"))
			break
		}

		// X loading and regression deflation of both blocks on t.
		pVec := mat.NewVecDense(p, nil)
		pVec.MulVec(Xres.T(), t)
		pVec.ScaleVec(1/tt, pVec)

		qq := mat.Dot(q, q)

		deflate(Xres, t, pVec)
		deflate(Yres, t, q)

		setCol(T, a, t)
		setCol(U, a, u)
		setCol(W, a, w)
		setCol(P, a, pVec)
		setCol(Q, a, q)
		xCompSS = append(xCompSS, tt*mat.Dot(pVec, pVec))
		yCompSS = append(yCompSS, tt*qq)
		extracted++
	}

	if extracted == 0 {
		return errors.NewModelError("PLSRegression.Fit", "no components could be extracted",
			errors.ErrSingularMatrix)
	}

	pls.xScores = T.Slice(0, n, 0, extracted).(*mat.Dense)
	pls.yScores = U.Slice(0, n, 0, extracted).(*mat.Dense)
	pls.xWeights = W.Slice(0, p, 0, extracted).(*mat.Dense)
	pls.xLoadings = P.Slice(0, p, 0, extracted).(*mat.Dense)
	pls.yLoadings = Q.Slice(0, m, 0, extracted).(*mat.Dense)
	pls.nComponents = extracted
	pls.xCompSS = xCompSS
	pls.yCompSS = yCompSS

	if err := pls.computeRotations(extracted); err != nil {
		return err
	}
	pls.computeCoef(extracted, m)

	pls.nSamples = n
	pls.nFeatures = p
	pls.nTargets = m
	pls.state.SetDimensions(p, n)
	pls.state.SetFitted()
	return nil
}

// nipalsComponent runs the NIPALS inner loop on the current residual blocks
// and returns the unit weight vector w, score t, y-loading q, and y-score u.
// ok is false when the residual carries no usable signal.
func (pls *PLSRegression) nipalsComponent(Xres, Yres *mat.Dense) (w, t, q, u *mat.VecDense, ok bool) {
	n, p := Xres.Dims()
	_, m := Yres.Dims()

	const eps = 1e-12

	// Start u from the Y column with the largest sum of squares.
	best, bestSS := 0, -1.0
	for j := 0; j < m; j++ {
		col := Yres.ColView(j)
		ss := mat.Dot(col, col)
		if ss > bestSS {
			best, bestSS = j, ss
		}
	}
	if bestSS < eps {
		return nil, nil, nil, nil, false
	}
	u = mat.VecDenseCopyOf(Yres.ColView(best))

	w = mat.NewVecDense(p, nil)
	t = mat.NewVecDense(n, nil)
	q = mat.NewVecDense(m, nil)
	wOld := mat.NewVecDense(p, nil)

	for iter := 0; iter < pls.maxIter; iter++ {
		// w = X^T u / (u^T u), normalized.
		w.MulVec(Xres.T(), u)
		norm := mat.Norm(w, 2)
		if norm < eps {
			return nil, nil, nil, nil, false
		}
		w.ScaleVec(1/norm, w)

		t.MulVec(Xres, w)
		tt := mat.Dot(t, t)
		if tt < eps {
			return nil, nil, nil, nil, false
		}

		q.MulVec(Yres.T(), t)
		q.ScaleVec(1/tt, q)

		qq := mat.Dot(q, q)
		if qq < eps {
			return nil, nil, nil, nil, false
		}
		u.MulVec(Yres, q)
		u.ScaleVec(1/qq, u)

		// With a single y column the loop is stationary after one pass.
		diff := mat.NewVecDense(p, nil)
		diff.SubVec(w, wOld)
		if mat.Norm(diff, 2) < pls.tol || m == 1 {
			break
		}
		wOld.CopyVec(w)
	}

	return w, t, q, u, true
}

// computeRotations forms R = W (P^T W)^-1, the projection matrix that maps
// preprocessed X rows directly to scores.
func (pls *PLSRegression) computeRotations(h int) error {
	ptw := mat.NewDense(h, h, nil)
	ptw.Mul(pls.xLoadings.T(), pls.xWeights)

	var inv mat.Dense
	if err := inv.Inverse(ptw); err != nil {
		return errors.NewModelError("PLSRegression.Fit", "P^T W is singular", err)
	}

	p, _ := pls.xWeights.Dims()
	pls.xRotations = mat.NewDense(p, h, nil)
	pls.xRotations.Mul(pls.xWeights, &inv)
	return nil
}

// computeCoef converts the latent-space regression B = R Q^T back to the
// original units of X and Y.
func (pls *PLSRegression) computeCoef(h, m int) {
	p := pls.nFeaturesFitted()
	B := mat.NewDense(p, m, nil)
	B.Mul(pls.xRotations, pls.yLoadings.T())

	pls.coef = mat.NewDense(p, m, nil)
	for j := 0; j < p; j++ {
		for k := 0; k < m; k++ {
			pls.coef.Set(j, k, B.At(j, k)*pls.yStd[k]/pls.xStd[j])
		}
	}

	pls.intercept = make([]float64, m)
	for k := 0; k < m; k++ {
		dot := 0.0
		for j := 0; j < p; j++ {
			dot += pls.xMean[j] * pls.coef.At(j, k)
		}
		pls.intercept[k] = pls.yMean[k] - dot
	}
}

func (pls *PLSRegression) nFeaturesFitted() int {
	p, _ := pls.xWeights.Dims()
	return p
}

// Transform projects the rows of X into the fitted latent space, returning
// an n-by-h score matrix.
func (pls *PLSRegression) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := pls.state.RequireFitted(); err != nil {
		return nil, errors.NewNotFittedError("PLSRegression", "Transform")
	}

	n, p := X.Dims()
	if p != pls.nFeatures {
		return nil, errors.NewDimensionError("PLSRegression.Transform", pls.nFeatures, p, 1)
	}

	Xs := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			Xs.Set(i, j, (X.At(i, j)-pls.xMean[j])/pls.xStd[j])
		}
	}

	scores := mat.NewDense(n, pls.nComponents, nil)
	scores.Mul(Xs, pls.xRotations)
	return scores, nil
}

// Predict returns the continuous target estimate for the rows of X, in the
// original units of Y.
func (pls *PLSRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := pls.state.RequireFitted(); err != nil {
		return nil, errors.NewNotFittedError("PLSRegression", "Predict")
	}

	n, p := X.Dims()
	if p != pls.nFeatures {
		return nil, errors.NewDimensionError("PLSRegression.Predict", pls.nFeatures, p, 1)
	}

	pred := mat.NewDense(n, pls.nTargets, nil)
	pred.Mul(X, pls.coef)
	for i := 0; i < n; i++ {
		for k := 0; k < pls.nTargets; k++ {
			pred.Set(i, k, pred.At(i, k)+pls.intercept[k])
		}
	}
	return pred, nil
}

// NComponents returns the number of components actually extracted.
func (pls *PLSRegression) NComponents() int {
	return pls.nComponents
}

// XScores returns the fitted sample score matrix T (n x h).
func (pls *PLSRegression) XScores() *mat.Dense { return pls.xScores }

// YScores returns the fitted y-score matrix U (n x h).
func (pls *PLSRegression) YScores() *mat.Dense { return pls.yScores }

// XWeights returns the weight matrix W (p x h); columns have unit norm.
func (pls *PLSRegression) XWeights() *mat.Dense { return pls.xWeights }

// XLoadings returns the X loading matrix P (p x h), the interpretation
// weights of each feature on each component.
func (pls *PLSRegression) XLoadings() *mat.Dense { return pls.xLoadings }

// YLoadings returns the Y loading matrix Q (m x h).
func (pls *PLSRegression) YLoadings() *mat.Dense { return pls.yLoadings }

// XRotations returns R = W (P^T W)^-1 (p x h).
func (pls *PLSRegression) XRotations() *mat.Dense { return pls.xRotations }

// Coef returns the regression coefficients (p x m) in original units.
func (pls *PLSRegression) Coef() *mat.Dense { return pls.coef }

// Intercept returns the per-target intercepts in original units.
func (pls *PLSRegression) Intercept() []float64 {
	out := make([]float64, len(pls.intercept))
	copy(out, pls.intercept)
	return out
}

// VarianceExplained holds the fraction of the X and Y sum of squares
// captured by each latent component, plus the running totals.
type VarianceExplained struct {
	X           []float64
	Y           []float64
	CumulativeX []float64
	CumulativeY []float64
}

// VarianceExplained reports per-component and cumulative variance shares of
// the preprocessed X and Y blocks.
func (pls *PLSRegression) VarianceExplained() (*VarianceExplained, error) {
	if err := pls.state.RequireFitted(); err != nil {
		return nil, errors.NewNotFittedError("PLSRegression", "VarianceExplained")
	}

	h := pls.nComponents
	ve := &VarianceExplained{
		X:           make([]float64, h),
		Y:           make([]float64, h),
		CumulativeX: make([]float64, h),
		CumulativeY: make([]float64, h),
	}
	cumX, cumY := 0.0, 0.0
	for a := 0; a < h; a++ {
		ve.X[a] = errors.SafeDivide(pls.xCompSS[a], pls.xTotalSS)
		ve.Y[a] = errors.SafeDivide(pls.yCompSS[a], pls.yTotalSS)
		cumX += ve.X[a]
		cumY += ve.Y[a]
		ve.CumulativeX[a] = cumX
		ve.CumulativeY[a] = cumY
	}
	return ve, nil
}

// GetParams returns the model's hyperparameters.
func (pls *PLSRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_components": pls.nComponents,
		"scale":        pls.scale,
		"max_iter":     pls.maxIter,
		"tol":          pls.tol,
	}
}

// MaxComponents returns the largest valid component count for an n-by-p
// feature matrix, min(n-1, p).
func MaxComponents(n, p int) int {
	if n-1 < p {
		return n - 1
	}
	return p
}

// centerScale centers the columns of M and, if scale is set, divides them by
// their population standard deviation. Columns with near-zero deviation keep
// scale 1 so constant targets do not blow up.
func centerScale(M mat.Matrix, scale bool) (*mat.Dense, []float64, []float64) {
	n, c := M.Dims()
	means := make([]float64, c)
	stds := make([]float64, c)

	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += M.At(i, j)
		}
		means[j] = sum / float64(n)

		if scale {
			variance := 0.0
			for i := 0; i < n; i++ {
				d := M.At(i, j) - means[j]
				variance += d * d
			}
			stds[j] = math.Sqrt(variance / float64(n))
			if stds[j] < 1e-8 {
				stds[j] = 1.0
			}
		} else {
			stds[j] = 1.0
		}
	}

	out := mat.NewDense(n, c, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (M.At(i, j)-means[j])/stds[j])
		}
	}
	return out, means, stds
}

func sumSquares(M *mat.Dense) float64 {
	n, c := M.Dims()
	ss := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			v := M.At(i, j)
			ss += v * v
		}
	}
	return ss
}

// deflate subtracts the rank-one update t v^T from M in place.
func deflate(M *mat.Dense, t, v *mat.VecDense) {
	n, c := M.Dims()
	for i := 0; i < n; i++ {
		ti := t.AtVec(i)
		for j := 0; j < c; j++ {
			M.Set(i, j, M.At(i, j)-ti*v.AtVec(j))
		}
	}
}

func setCol(M *mat.Dense, j int, v *mat.VecDense) {
	for i := 0; i < v.Len(); i++ {
		M.Set(i, j, v.AtVec(i))
	}
}
