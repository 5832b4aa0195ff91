package workload

import (
	"time"

	"github.com/Yunpeng-J/zipf/pkg/metrics"
	"github.com/Yunpeng-J/zipf/pkg/zipf"
	"golang.org/x/exp/rand"
)

// Access is one drawn key.
type Access struct {
	Seq   uint64
	Index uint64
	Key   string
}

// Stream draws accesses synchronously from its own source. It is not safe
// for concurrent use.
type Stream struct {
	id      string
	sampler zipf.Sampler
	keys    Keyspace
	rng     *rand.Rand
	seq     uint64

	overflow metrics.Counter
	latency  metrics.Histogram
}

func newStream(id string, sampler zipf.Sampler, keys Keyspace, seed uint64, m *Metrics) *Stream {
	return &Stream{
		id:       id,
		sampler:  sampler,
		keys:     keys,
		rng:      rand.New(rand.NewSource(seed)),
		overflow: m.OverflowCounter.With("generator", id),
		latency:  m.GeneratorLatency.With("generator", id),
	}
}

// Next draws the next access. Indices past the keyspace are redrawn.
func (s *Stream) Next() Access {
	start := time.Now()
	n := uint64(len(s.keys))
	idx := s.sampler.Sample(s.rng)
	for idx >= n {
		s.overflow.Add(1)
		idx = s.sampler.Sample(s.rng)
	}
	s.latency.Observe(time.Since(start).Seconds())
	s.seq++
	return Access{
		Seq:   s.seq,
		Index: idx,
		Key:   s.keys[idx],
	}
}
