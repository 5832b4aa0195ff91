package zipf

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// minExpected is the smallest expected bin count the chi-square
// approximation tolerates; sparser tail bins are pooled.
const minExpected = 5.0

// Masses returns the normalized law over {0, ..., n-1} where index k has
// mass proportional to (start+k)^(-exponent).
func Masses(n int, exponent, start float64) []float64 {
	res := make([]float64, n)
	heaviest := math.Log(start)
	if exponent < 0 {
		heaviest = math.Log(start + float64(n-1))
	}
	sum := 0.0
	for k := range res {
		res[k] = math.Exp(-exponent * (math.Log(start+float64(k)) - heaviest))
		sum += res[k]
	}
	for k := range res {
		res[k] /= sum
	}
	return res
}

// Fit is the outcome of a chi-square goodness-of-fit test.
type Fit struct {
	Statistic float64
	Freedom   int
	PValue    float64
}

// GoodnessOfFit compares observed counts with the expected masses.
// Counts past the last mass are folded into the last bin.
func GoodnessOfFit(counts []uint64, masses []float64) (Fit, error) {
	if len(masses) == 0 {
		return Fit{}, errors.New("no masses")
	}
	observed := make([]float64, len(masses))
	total := 0.0
	for i, c := range counts {
		j := i
		if j >= len(observed) {
			j = len(observed) - 1
		}
		observed[j] += float64(c)
		total += float64(c)
	}
	if total == 0 {
		return Fit{}, errors.New("no observations")
	}

	type bin struct{ obs, exp float64 }
	var (
		pooled []bin
		cur    bin
	)
	for i, m := range masses {
		cur.obs += observed[i]
		cur.exp += m * total
		if cur.exp >= minExpected {
			pooled = append(pooled, cur)
			cur = bin{}
		}
	}
	if cur.obs > 0 || cur.exp > 0 {
		if len(pooled) == 0 {
			pooled = append(pooled, cur)
		} else {
			pooled[len(pooled)-1].obs += cur.obs
			pooled[len(pooled)-1].exp += cur.exp
		}
	}
	if len(pooled) < 2 {
		return Fit{}, errors.Errorf("too few bins: %d", len(pooled))
	}

	stat := 0.0
	for _, b := range pooled {
		stat += (b.obs - b.exp) * (b.obs - b.exp) / b.exp
	}
	bins := len(pooled)
	df := bins - 1
	chi := distuv.ChiSquared{K: float64(df)}
	return Fit{
		Statistic: stat,
		Freedom:   df,
		PValue:    chi.Survival(stat),
	}, nil
}
