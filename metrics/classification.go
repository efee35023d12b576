package metrics

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// Accuracy computes the fraction of labels where yPred matches yTrue.
func Accuracy(yTrue, yPred []int) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "Accuracy")
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewDimensionError("Accuracy", len(yTrue), len(yPred), 0)
	}

	correct := 0
	for i, p := range yPred {
		if p == yTrue[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ClassMetrics holds per-class classification quality measures.
type ClassMetrics struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ConfusionMatrix accumulates counts of true versus predicted class labels.
// Rows index the true class, columns the predicted class. Labels are encoded
// as indices into Labels, so the matrix can be pooled across folds by calling
// AddAll once per fold.
type ConfusionMatrix struct {
	Labels []string
	Counts [][]int
}

// NewConfusionMatrix creates an empty confusion matrix over the given labels.
func NewConfusionMatrix(labels []string) *ConfusionMatrix {
	counts := make([][]int, len(labels))
	for i := range counts {
		counts[i] = make([]int, len(labels))
	}
	return &ConfusionMatrix{
		Labels: append([]string(nil), labels...),
		Counts: counts,
	}
}

// ConfusionMatrixFrom builds a confusion matrix from one pair of label slices.
func ConfusionMatrixFrom(yTrue, yPred []int, labels []string) (*ConfusionMatrix, error) {
	cm := NewConfusionMatrix(labels)
	if err := cm.AddAll(yTrue, yPred); err != nil {
		return nil, err
	}
	return cm, nil
}

// Add records a single observation.
func (cm *ConfusionMatrix) Add(trueClass, predClass int) error {
	k := len(cm.Labels)
	if trueClass < 0 || trueClass >= k {
		return errors.NewValueError("ConfusionMatrix.Add", fmt.Sprintf("true class %d out of range [0, %d)", trueClass, k))
	}
	if predClass < 0 || predClass >= k {
		return errors.NewValueError("ConfusionMatrix.Add", fmt.Sprintf("predicted class %d out of range [0, %d)", predClass, k))
	}
	cm.Counts[trueClass][predClass]++
	return nil
}

// AddAll records a batch of observations, e.g. the held-out fold of a
// cross-validation round.
func (cm *ConfusionMatrix) AddAll(yTrue, yPred []int) error {
	if len(yTrue) != len(yPred) {
		return errors.NewDimensionError("ConfusionMatrix.AddAll", len(yTrue), len(yPred), 0)
	}
	for i := range yTrue {
		if err := cm.Add(yTrue[i], yPred[i]); err != nil {
			return err
		}
	}
	return nil
}

// Total returns the number of recorded observations.
func (cm *ConfusionMatrix) Total() int {
	total := 0
	for _, row := range cm.Counts {
		for _, c := range row {
			total += c
		}
	}
	return total
}

// Correct returns the number of observations on the diagonal.
func (cm *ConfusionMatrix) Correct() int {
	correct := 0
	for i := range cm.Counts {
		correct += cm.Counts[i][i]
	}
	return correct
}

// Accuracy returns the fraction of correct observations, or 0 for an empty
// matrix.
func (cm *ConfusionMatrix) Accuracy() float64 {
	total := cm.Total()
	if total == 0 {
		return 0
	}
	return float64(cm.Correct()) / float64(total)
}

// ClassReport computes precision, recall, F1 and support per class.
// Undefined ratios (empty denominators) are reported as 0.
func (cm *ConfusionMatrix) ClassReport() []ClassMetrics {
	k := len(cm.Labels)
	report := make([]ClassMetrics, k)

	for i := 0; i < k; i++ {
		tp := cm.Counts[i][i]
		fp, fn, support := 0, 0, 0
		for j := 0; j < k; j++ {
			support += cm.Counts[i][j]
			if j != i {
				fp += cm.Counts[j][i]
				fn += cm.Counts[i][j]
			}
		}

		precision := errors.SafeDivide(float64(tp), float64(tp+fp))
		recall := errors.SafeDivide(float64(tp), float64(tp+fn))
		f1 := errors.SafeDivide(2*precision*recall, precision+recall)

		report[i] = ClassMetrics{
			Label:     cm.Labels[i],
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   support,
		}
	}

	return report
}

// String renders the matrix as an aligned text table with true classes on
// rows and predicted classes on columns.
func (cm *ConfusionMatrix) String() string {
	width := 8
	for _, l := range cm.Labels {
		if len(l)+2 > width {
			width = len(l) + 2
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%*s", width, "")
	for _, l := range cm.Labels {
		fmt.Fprintf(&b, "%*s", width, l)
	}
	b.WriteString("\n")

	for i, l := range cm.Labels {
		fmt.Fprintf(&b, "%*s", width, l)
		for j := range cm.Labels {
			fmt.Fprintf(&b, "%*d", width, cm.Counts[i][j])
		}
		b.WriteString("\n")
	}

	return b.String()
}
