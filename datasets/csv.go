package datasets

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/plsgo/pkg/errors"
)

// LoadOptions names the metadata columns of the input file. Every other
// column is treated as a numeric feature.
type LoadOptions struct {
	// IDColumn is the sample identifier column.
	IDColumn string

	// GroupColumn is the categorical group label column.
	GroupColumn string
}

// LoadCSV reads a tabular file into a Table. The file must carry the two
// metadata columns named in opts; the remaining columns are parsed as
// float64 features, and a non-numeric cell fails with the offending row and
// column named. Group labels are cleaned of stray non-ASCII bytes, which
// real instrument exports occasionally carry.
func LoadCSV(ctx context.Context, path string, opts LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewModelError("LoadCSV", "cannot open input file", err)
	}
	defer f.Close()

	df, err := imports.LoadFromCSV(ctx, f)
	if err != nil {
		return nil, errors.NewModelError("LoadCSV", "cannot parse input file", err)
	}
	return fromDataFrame(df, opts)
}

// fromDataFrame converts a loaded dataframe into a Table.
func fromDataFrame(df *dataframe.DataFrame, opts LoadOptions) (*Table, error) {
	if opts.IDColumn == "" || opts.GroupColumn == "" {
		return nil, errors.NewValidationError("columns",
			"both the ID and the group column must be named", opts)
	}

	n := df.NRows()
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "LoadCSV")
	}

	var idSeries, groupSeries dataframe.Series
	var featureSeries []dataframe.Series
	var featureNames []string
	for _, s := range df.Series {
		switch s.Name() {
		case opts.IDColumn:
			idSeries = s
		case opts.GroupColumn:
			groupSeries = s
		default:
			featureSeries = append(featureSeries, s)
			featureNames = append(featureNames, s.Name())
		}
	}
	if idSeries == nil {
		return nil, errors.NewValidationError("columns", "ID column not found", opts.IDColumn)
	}
	if groupSeries == nil {
		return nil, errors.NewValidationError("columns", "group column not found", opts.GroupColumn)
	}
	if len(featureSeries) == 0 {
		return nil, errors.NewValidationError("columns", "no feature columns remain", nil)
	}

	ids := make([]string, n)
	groups := make([]string, n)
	X := mat.NewDense(n, len(featureSeries), nil)

	for i := 0; i < n; i++ {
		ids[i] = cellString(idSeries.Value(i))
		groups[i] = CleanLabel(cellString(groupSeries.Value(i)))

		for j, s := range featureSeries {
			v, err := cellFloat(s.Value(i))
			if err != nil {
				return nil, errors.NewValueError("LoadCSV",
					fmt.Sprintf("non-numeric value in row %d, column %q: %v", i+1, featureNames[j], err))
			}
			X.Set(i, j, v)
		}
	}

	return &Table{
		IDs:          ids,
		Groups:       groups,
		FeatureNames: featureNames,
		X:            X,
	}, nil
}

// CleanLabel strips non-ASCII and non-printable runes from a group label and
// trims surrounding whitespace.
func CleanLabel(label string) string {
	var b strings.Builder
	for _, r := range label {
		if r <= unicode.MaxASCII && unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func cellFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("missing value")
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported cell type %T", v)
	}
}
