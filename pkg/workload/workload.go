package workload

import (
	"strconv"

	"github.com/Yunpeng-J/zipf/pkg/metrics"
	"github.com/Yunpeng-J/zipf/pkg/zipf"
	"github.com/pkg/errors"
)

type Provider interface {
	ForEachClient(i int) Generator
}

// WorkloadProvider shares one immutable sampler and keyspace between all
// clients. Every client draws from its own source seeded with seed+i+1.
type WorkloadProvider struct {
	conf    Config
	sampler zipf.Sampler
	keys    Keyspace
	metrics *Metrics
}

// NewWorkloadProvider builds the sampler named in conf. A nil keyspace is
// generated from the configured seed.
func NewWorkloadProvider(conf Config, keys Keyspace, p metrics.Provider) (*WorkloadProvider, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid workload config")
	}
	sampler, err := NewSampler(conf)
	if err != nil {
		return nil, err
	}
	if keys == nil {
		keys, err = NewKeyspace(conf.Keys, conf.KeyLength, conf.Seed)
		if err != nil {
			return nil, err
		}
	}
	if len(keys) != conf.Keys {
		return nil, errors.Errorf("keyspace holds %d keys, config wants %d", len(keys), conf.Keys)
	}
	return &WorkloadProvider{
		conf:    conf,
		sampler: sampler,
		keys:    keys,
		metrics: NewMetrics(p),
	}, nil
}

func (wlp *WorkloadProvider) Config() Config {
	return wlp.conf
}

func (wlp *WorkloadProvider) Sampler() zipf.Sampler {
	return wlp.sampler
}

func (wlp *WorkloadProvider) Keyspace() Keyspace {
	return wlp.keys
}

// Stream returns a synchronous stream for client i.
func (wlp *WorkloadProvider) Stream(i int) *Stream {
	return newStream(strconv.Itoa(i), wlp.sampler, wlp.keys, wlp.conf.Seed+uint64(i)+1, wlp.metrics)
}

// ForEachClient starts a generator goroutine for client i. Callers must
// Stop it.
func (wlp *WorkloadProvider) ForEachClient(i int) Generator {
	return newGenerator(wlp.Stream(i), wlp.conf.Buffer, wlp.metrics)
}
