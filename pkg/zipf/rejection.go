package zipf

import (
	"math"

	"github.com/pkg/errors"
)

// RejectionInversion samples Zipf variates without a table, using
//
//	W. Hörmann, G. Derflinger:
//	"Rejection-Inversion to Generate Variates from Monotone Discrete Distributions"
//	http://eeyore.wu-wien.ac.at/papers/96-04-04.wh-der.ps.gz
//
// Raising the exponent makes large values rarer, raising start makes
// them more likely. Typical settings are start 1 and an exponent slightly
// above 1, such as 1.1.
//
// Values are shaped towards [0, imax] but not clamped to it.
type RejectionInversion struct {
	q    float64
	v    float64
	imax uint64

	oneMinusQ    float64
	oneMinusQInv float64
	hxm          float64
	hx0MinusHxm  float64
}

// NewRejectionInversion precomputes a sampler for exponent > 1 and
// start >= 1.
func NewRejectionInversion(exponent, start float64, imax uint64) (*RejectionInversion, error) {
	if !(exponent > 1.0) {
		return nil, errors.Wrapf(ErrInvalidExponent, "exponent %v", exponent)
	}
	if !(start >= 1.0) {
		return nil, errors.Wrapf(ErrInvalidStart, "start %v", start)
	}
	z := &RejectionInversion{
		q:    exponent,
		v:    start,
		imax: imax,
	}
	z.oneMinusQ = 1.0 - z.q
	z.oneMinusQInv = 1.0 / z.oneMinusQ
	z.hxm = z.h(float64(imax) + 0.5)
	z.hx0MinusHxm = z.h(0.5) - math.Exp(math.Log(z.v)*(-z.q)) - z.hxm
	return z, nil
}

func (z *RejectionInversion) h(x float64) float64 {
	return math.Exp(z.oneMinusQ*math.Log(z.v+x)) * z.oneMinusQInv
}

func (z *RejectionInversion) hinv(x float64) float64 {
	return math.Exp(math.Log(z.oneMinusQ*x)*z.oneMinusQInv) - z.v
}

// Sample draws from src until a candidate is accepted. The loop is not
// bounded; src must produce genuine uniform values.
func (z *RejectionInversion) Sample(src Source) uint64 {
	for {
		r := src.Float64()
		ur := z.hxm + r*z.hx0MinusHxm
		x := z.hinv(ur)
		k := math.Floor(x + 0.5)
		if k-x < z.oneMinusQ {
			return uint64(k)
		}
		if ur >= z.h(k+0.5)-math.Exp(-(k+z.v)) {
			return uint64(k)
		}
	}
}

func (z *RejectionInversion) Exponent() float64 {
	return z.q
}

func (z *RejectionInversion) Start() float64 {
	return z.v
}

func (z *RejectionInversion) Max() uint64 {
	return z.imax
}
