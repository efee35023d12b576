package pipeline

import (
	"github.com/YuminosukeSato/plsgo/core/model"
	"github.com/YuminosukeSato/plsgo/cross_decomposition"
	"github.com/YuminosukeSato/plsgo/discriminant_analysis"
	"github.com/YuminosukeSato/plsgo/preprocessing"
)

// Bundle is the set of fitted models needed to classify unseen samples with
// the training-time statistics: the variance stabilizer, the scaler fitted
// on the training columns, the label encoder, the final PLS model, and the
// discriminant classifier over its scores.
type Bundle struct {
	Arcsinh *preprocessing.ArcsinhTransformer
	Scaler  *preprocessing.StandardScaler
	Encoder *preprocessing.LabelEncoder
	PLS     *cross_decomposition.PLSRegression
	LDA     *discriminant_analysis.LinearDiscriminantAnalysis
}

// SaveBundle writes the bundle to path with gob.
func SaveBundle(b *Bundle, path string) error {
	return model.SaveModel(b, path)
}

// LoadBundle reads a bundle written by SaveBundle.
func LoadBundle(path string) (*Bundle, error) {
	b := &Bundle{}
	if err := model.LoadModel(b, path); err != nil {
		return nil, err
	}
	return b, nil
}
