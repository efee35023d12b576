package pipeline

import (
	"fmt"
	"sort"
)

// Report prints the console summary of a run: variance explained, the
// component selection curve, both accuracy estimates, the confusion matrix,
// the VIP table and the permutation p-value.
func (p *Pipeline) Report(r *Result) {
	w := p.out

	fmt.Fprintf(w, "PLS-DA analysis (run %s)\n", r.RunID)
	fmt.Fprintf(w, "Classes: %v\n\n", r.Classes)

	fmt.Fprintln(w, "Variance explained per component:")
	for a := 0; a < len(r.Variance.X); a++ {
		fmt.Fprintf(w, "  PLS%d: X %5.1f%% (cum %5.1f%%)   Y %5.1f%% (cum %5.1f%%)\n",
			a+1,
			100*r.Variance.X[a], 100*r.Variance.CumulativeX[a],
			100*r.Variance.Y[a], 100*r.Variance.CumulativeY[a])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Optimal number of components: %d\n", r.BestComponents)
	fmt.Fprintln(w, "Cross-validated MSE by component count:")
	for i, h := range r.Search.Components {
		marker := " "
		if h == r.BestComponents {
			marker = "*"
		}
		fmt.Fprintf(w, " %s h=%-2d  MSE=%.4f\n", marker, h, r.Search.MSEByComponent[i])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Cross-validated accuracy (scores-CV, full-data projection): %.3f\n",
		r.QuickEval.Accuracy)
	fmt.Fprintf(w, "Cross-validated accuracy (nested, per-fold refit):          %.3f\n\n",
		r.NestedEval.Accuracy)

	fmt.Fprintln(w, "Confusion matrix (nested CV, rows = true class):")
	fmt.Fprint(w, r.NestedEval.Confusion.String())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "VIP scores (>= 1.0 conventionally influential):")
	type vipEntry struct {
		name  string
		score float64
	}
	entries := make([]vipEntry, len(r.VIP))
	for i, v := range r.VIP {
		entries[i] = vipEntry{name: r.FeatureNames[i], score: v}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].score > entries[j].score })
	for _, e := range entries {
		marker := " "
		if e.score >= 1.0 {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %-20s %.3f\n", marker, e.name, e.score)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Permutation test (%d permutations): p = %.4f\n",
		len(r.Permutation.NullErrors), r.Permutation.PValue)
	if r.Permutation.Significant() {
		fmt.Fprintln(w, "Class separation is significant at the 0.05 level.")
	} else {
		fmt.Fprintln(w, "Class separation is not significant at the 0.05 level.")
	}
}
