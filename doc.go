// Package plsgo implements a PLS-DA (Partial Least Squares Discriminant
// Analysis) pipeline for classifying grouped multivariate samples, built on
// gonum with a scikit-learn-like API.
//
// The pipeline takes a table of samples with a group label and numeric
// features, stabilizes and standardizes the features, fits a PLS regression
// on the encoded labels, selects the component count by cross-validated MSE,
// evaluates an LDA classifier on the latent scores, ranks features by VIP,
// and checks significance with a permutation test.
//
// # Quick Start
//
// Running the whole pipeline on a CSV table:
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/plsgo/pipeline"
//	    "github.com/YuminosukeSato/plsgo/plotting"
//	)
//
//	func main() {
//	    cfg := pipeline.DefaultConfig()
//	    cfg.InputPath = "samples.csv"
//	    cfg.OutputDir = "out"
//
//	    p, err := pipeline.New(cfg, plotting.NewRenderer(cfg.OutputDir))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    result, err := p.RunCSV(context.Background())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("best components: %d, p = %.4f\n",
//	        result.BestComponents, result.Permutation.PValue)
//	}
//
// The individual stages are also usable on their own:
//
//	pls := cross_decomposition.NewPLSRegression(cross_decomposition.WithNComponents(3))
//	if err := pls.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//	scores, err := pls.Transform(X)
//
// # Packages
//
//   - pipeline: end-to-end orchestration, configuration, text report
//   - datasets: CSV loading, sample tables, synthetic data generation
//   - preprocessing: arcsinh transform, standardization, label encoding
//   - cross_decomposition: NIPALS PLS regression and VIP scores
//   - discriminant_analysis: linear discriminant analysis
//   - model_selection: cross-validation splitters, component search,
//     classifier evaluation, permutation testing
//   - metrics: regression and classification metrics, Mann-Whitney U
//   - plotting: score, loading, VIP and heatmap figures via gonum/plot
//   - core/model: shared estimator interfaces and fit-state management
//   - core/parallel: worker pools used by the permutation test
package plsgo
