package zipf

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewRejectionInversion(t *testing.T) {
	tests := []struct {
		name     string
		exponent float64
		start    float64
		err      error
	}{
		{"exponent of one", 1.0, 1.0, ErrInvalidExponent},
		{"exponent below one", 0.5, 1.0, ErrInvalidExponent},
		{"exponent NaN", math.NaN(), 1.0, ErrInvalidExponent},
		{"start below one", 1.2, 0.5, ErrInvalidStart},
		{"start NaN", 1.2, math.NaN(), ErrInvalidStart},
		{"exponent checked first", 1.0, 0.5, ErrInvalidExponent},
		{"valid", 1.2, 1.0, nil},
		{"valid large start", 2.5, 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zipf, err := NewRejectionInversion(tt.exponent, tt.start, 99)
			if tt.err != nil {
				assert.Nil(t, zipf)
				assert.ErrorIs(t, err, tt.err)
				assert.Equal(t, tt.err, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.exponent, zipf.Exponent())
			assert.Equal(t, tt.start, zipf.Start())
			assert.Equal(t, uint64(99), zipf.Max())
		})
	}
}

func TestRejectionInversionMaxUnvalidated(t *testing.T) {
	_, err := NewRejectionInversion(1.2, 1.0, 0)
	assert.NoError(t, err)
	_, err = NewRejectionInversion(1.2, 1.0, math.MaxUint64)
	assert.NoError(t, err)
}

func TestRejectionInversion(t *testing.T) {
	const n = 100
	zipf, err := NewRejectionInversion(1.2, 1.0, n-1)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))
	counts := make([]int, n)
	over := 0
	for i := 0; i < n*10; i++ {
		k := zipf.Sample(rng)
		if k >= n {
			over++
			continue
		}
		counts[k]++
	}
	assert.LessOrEqual(t, over, n*10/100)
	total := over
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, n*10, total)
	assert.NotZero(t, counts[0])
}

func TestRejectionInversionSkew(t *testing.T) {
	zipf, err := NewRejectionInversion(1.5, 1.0, 999)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(5))
	head, tail := 0, 0
	for i := 0; i < 20000; i++ {
		k := zipf.Sample(rng)
		switch {
		case k < 10:
			head++
		case k >= 990:
			tail++
		}
	}
	assert.Greater(t, head, tail*10)
}

// recorder remembers every value handed out by the wrapped source.
type recorder struct {
	src    Source
	values []float64
}

func (r *recorder) Float64() float64 {
	v := r.src.Float64()
	r.values = append(r.values, v)
	return v
}

func replay(values []float64) Source {
	i := 0
	return Func(func() float64 {
		v := values[i]
		i++
		return v
	})
}

func TestRejectionInversionDeterministic(t *testing.T) {
	zipf, err := NewRejectionInversion(1.2, 1.0, 99)
	require.NoError(t, err)
	rec := &recorder{src: rand.New(rand.NewSource(8))}
	var first []uint64
	for i := 0; i < 500; i++ {
		first = append(first, zipf.Sample(rec))
	}
	src := replay(rec.values)
	for i := 0; i < 500; i++ {
		require.Equal(t, first[i], zipf.Sample(src), "sample %d", i)
	}
}

func TestRejectionInversionRetries(t *testing.T) {
	zipf, err := NewRejectionInversion(1.2, 1.0, 99)
	require.NoError(t, err)
	// 0 lands past imax and 0.5 between ranks, both are rejected
	rec := &recorder{src: replay([]float64{0, 0.5, 0.75})}
	assert.Equal(t, uint64(0), zipf.Sample(rec))
	assert.Len(t, rec.values, 3)
}

func TestSamplerInterface(t *testing.T) {
	zipf, err := NewRejectionInversion(1.1, 1.0, 9)
	require.NoError(t, err)
	for _, s := range []Sampler{NewTable(10, 1.1), zipf} {
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 100; i++ {
			assert.Less(t, s.Sample(rng), uint64(11))
		}
	}
}
