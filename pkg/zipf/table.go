package zipf

import (
	"math"
)

// Table samples the ranks {0, ..., n-1} from a precomputed cumulative
// distribution. Rank i has mass proportional to (i+1)^(-exponent).
//
// Construction is O(n) in time and space, sampling is a binary search.
// Any exponent is accepted: zero gives a uniform law and negative values
// invert the skew.
type Table struct {
	n        int
	exponent float64

	// cumulative[0] is a zero sentinel, cumulative[i] holds the mass of
	// ranks 1..i. It has n+1 entries.
	cumulative []float64
}

// NewTable builds the table for n ranks. It panics if n < 1.
func NewTable(n int, exponent float64) *Table {
	if n < 1 {
		panic("zipf: invalid table size")
	}
	t := &Table{
		n:          n,
		exponent:   exponent,
		cumulative: make([]float64, n+1),
	}
	t.init()
	return t
}

func (t *Table) init() {
	// weights are taken relative to the heaviest rank, so each lies in
	// [0, 1], the heaviest is exactly 1 and sum never over- or underflows
	heaviest := 0.0
	if t.exponent < 0 {
		heaviest = math.Log(float64(t.n))
	}
	sum := 0.0
	for i := 1; i <= t.n; i++ {
		w := math.Exp(-t.exponent * (math.Log(float64(i)) - heaviest))
		sum += w
		t.cumulative[i] = sum
	}
	for i := 1; i <= t.n; i++ {
		t.cumulative[i] /= sum
	}
}

// Sample draws one uniform value from src and maps it to a rank.
func (t *Table) Sample(src Source) uint64 {
	return uint64(t.Index(src.Float64()))
}

// Index maps a uniform value r in [0, 1) to its rank. It returns i-1 for
// the first entry cumulative[i] strictly greater than r, so an entry equal
// to r never terminates the search.
func (t *Table) Index(r float64) int {
	l, h := 0, len(t.cumulative)
	for l < h {
		mid := int(uint(l+h) >> 1)
		if t.cumulative[mid] > r {
			h = mid
		} else {
			l = mid + 1
		}
	}
	switch {
	case l == 0:
		return 0
	case l > t.n:
		// rounding left the last entry at or below r
		return t.n - 1
	}
	return l - 1
}

// Len returns the number of ranks.
func (t *Table) Len() int {
	return t.n
}

func (t *Table) Exponent() float64 {
	return t.exponent
}

// Cumulative returns a copy of the table, sentinel included.
func (t *Table) Cumulative() []float64 {
	res := make([]float64, len(t.cumulative))
	copy(res, t.cumulative)
	return res
}

// Probabilities returns the mass of every rank as stored in the table.
func (t *Table) Probabilities() []float64 {
	res := make([]float64, t.n)
	for i := range res {
		res[i] = t.cumulative[i+1] - t.cumulative[i]
	}
	return res
}
