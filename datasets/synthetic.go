package datasets

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// MakeSeparated builds a two-group table whose feature means differ by
// shift, so the groups are separable when shift is large relative to the
// unit noise. Generation is fully determined by seed.
func MakeSeparated(nPerGroup, nFeatures int, shift float64, seed uint64) *Table {
	return makeTwoGroups(nPerGroup, nFeatures, shift, seed)
}

// MakeNull builds a two-group table with identical feature distributions in
// both groups, carrying no true class signal.
func MakeNull(nPerGroup, nFeatures int, seed uint64) *Table {
	return makeTwoGroups(nPerGroup, nFeatures, 0, seed)
}

func makeTwoGroups(nPerGroup, nFeatures int, shift float64, seed uint64) *Table {
	r := rand.New(rand.NewPCG(seed, seed))
	n := 2 * nPerGroup

	ids := make([]string, n)
	groups := make([]string, n)
	X := mat.NewDense(n, nFeatures, nil)
	names := make([]string, nFeatures)
	for j := range names {
		names[j] = fmt.Sprintf("feature_%02d", j+1)
	}

	for i := 0; i < n; i++ {
		ids[i] = fmt.Sprintf("S%03d", i+1)
		offset := 0.0
		if i >= nPerGroup {
			offset = shift
			groups[i] = "B"
		} else {
			groups[i] = "A"
		}
		for j := 0; j < nFeatures; j++ {
			X.Set(i, j, offset+r.NormFloat64())
		}
	}

	return &Table{
		IDs:          ids,
		Groups:       groups,
		FeatureNames: names,
		X:            X,
	}
}
