package training

import (
	"math"
	"math/rand/v2"

	"github.com/kilianp07/quote-genie/core/model"
)

// Split shuffles recs with a seeded permutation and holds out testSize of
// them. Both partitions keep at least one row when len(recs) >= 2.
func Split(recs []model.QuoteRecord, testSize float64, seed uint64) (train, test []model.QuoteRecord) {
	n := len(recs)
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest >= n {
		nTest = n - 1
	}
	if nTest < 0 {
		nTest = 0
	}
	perm := rand.New(rand.NewPCG(seed, 0)).Perm(n)
	test = make([]model.QuoteRecord, 0, nTest)
	train = make([]model.QuoteRecord, 0, n-nTest)
	for i, p := range perm {
		if i < nTest {
			test = append(test, recs[p])
		} else {
			train = append(train, recs[p])
		}
	}
	return train, test
}
