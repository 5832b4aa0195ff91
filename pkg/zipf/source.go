package zipf

// Source yields uniform float64 values in [0.0, 1.0).
// *math/rand.Rand and *golang.org/x/exp/rand.Rand both satisfy it.
type Source interface {
	Float64() float64
}

// Uint64Source yields uniform 64-bit values.
type Uint64Source interface {
	Uint64() uint64
}

// FromUint64 turns a raw 64-bit source into a Source using its top 53 bits.
func FromUint64(src Uint64Source) Source {
	return uint64Source{src: src}
}

type uint64Source struct {
	src Uint64Source
}

func (s uint64Source) Float64() float64 {
	return float64(s.src.Uint64()>>11) / (1 << 53)
}

// Func adapts a plain function into a Source.
type Func func() float64

func (f Func) Float64() float64 {
	return f()
}

// Sampler draws one Zipf distributed index per call.
// Implementations are immutable and may be shared between goroutines,
// the Source may not.
type Sampler interface {
	Sample(src Source) uint64
}
