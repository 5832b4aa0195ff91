package workload

import (
	"github.com/Yunpeng-J/zipf/pkg/zipf"
	"github.com/pkg/errors"
)

const (
	SamplerTable     = "table"
	SamplerRejection = "rejection"
	SamplerUniform   = "uniform"
)

type Config struct {
	// Sampler is one of table, rejection or uniform.
	Sampler   string  `yaml:"sampler" mapstructure:"sampler"`
	Keys      int     `yaml:"keys" mapstructure:"keys"`
	Exponent  float64 `yaml:"exponent" mapstructure:"exponent"`
	Start     float64 `yaml:"start" mapstructure:"start"`
	Seed      uint64  `yaml:"seed" mapstructure:"seed"`
	Buffer    int     `yaml:"buffer" mapstructure:"buffer"`
	KeyLength int     `yaml:"keyLength" mapstructure:"keyLength"`
}

var defaultConfig = Config{
	Sampler:   SamplerTable,
	Keys:      100000,
	Exponent:  1.1,
	Start:     1,
	Seed:      0,
	Buffer:    1024,
	KeyLength: 64,
}

// DefaultConfig returns the settings used for zero valued fields.
func DefaultConfig() Config {
	return defaultConfig
}

// WithDefaults fills zero valued fields. A zero exponent is kept for the
// table and uniform samplers, where it is meaningful.
func (c Config) WithDefaults() Config {
	if c.Sampler == "" {
		c.Sampler = defaultConfig.Sampler
	}
	if c.Keys == 0 {
		c.Keys = defaultConfig.Keys
	}
	if c.Exponent == 0 && c.Sampler == SamplerRejection {
		c.Exponent = defaultConfig.Exponent
	}
	if c.Start == 0 {
		c.Start = defaultConfig.Start
	}
	if c.Buffer == 0 {
		c.Buffer = defaultConfig.Buffer
	}
	if c.KeyLength == 0 {
		c.KeyLength = defaultConfig.KeyLength
	}
	return c
}

func (c Config) Validate() error {
	if c.Buffer < 0 {
		return errors.Errorf("buffer must not be negative, got %d", c.Buffer)
	}
	if c.KeyLength < 1 {
		return errors.Errorf("keyLength must be positive, got %d", c.KeyLength)
	}
	_, err := NewSampler(c)
	return err
}

// NewSampler builds the sampler named by the config over c.Keys ranks.
func NewSampler(c Config) (zipf.Sampler, error) {
	if c.Keys < 1 {
		return nil, errors.Errorf("keys must be positive, got %d", c.Keys)
	}
	switch c.Sampler {
	case SamplerTable:
		return zipf.NewTable(c.Keys, c.Exponent), nil
	case SamplerRejection:
		s, err := zipf.NewRejectionInversion(c.Exponent, c.Start, uint64(c.Keys-1))
		if err != nil {
			return nil, errors.Wrap(err, "create rejection-inversion sampler")
		}
		return s, nil
	case SamplerUniform:
		return newUniform(c.Keys), nil
	default:
		return nil, errors.Errorf("unknown sampler type: %s", c.Sampler)
	}
}

// Masses returns the law the configured sampler targets, used to judge
// observed access counts. It is nil for the rejection-inversion sampler,
// whose output has no closed-form law to test against.
func Masses(c Config) []float64 {
	switch c.Sampler {
	case SamplerTable:
		return zipf.Masses(c.Keys, c.Exponent, 1)
	case SamplerRejection:
		return nil
	default:
		return zipf.Masses(c.Keys, 0, 1)
	}
}

type uniform struct {
	n uint64
}

func newUniform(n int) *uniform {
	return &uniform{n: uint64(n)}
}

func (u *uniform) Sample(src zipf.Source) uint64 {
	k := uint64(src.Float64() * float64(u.n))
	if k >= u.n {
		k = u.n - 1
	}
	return k
}
