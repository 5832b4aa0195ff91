package workload

import (
	"sync"

	"github.com/Yunpeng-J/zipf/pkg/metrics"
)

// Generator hands out accesses produced by a background goroutine.
type Generator interface {
	// Generate returns the next access, or false once the generator stopped.
	Generate() (Access, bool)
	Stop()
}

type generator struct {
	stream *Stream
	ch     chan Access
	done   chan struct{}
	once   sync.Once

	generated metrics.Counter
}

func newGenerator(stream *Stream, buffer int, m *Metrics) *generator {
	gen := &generator{
		stream:    stream,
		ch:        make(chan Access, buffer),
		done:      make(chan struct{}),
		generated: m.GeneratorCounter.With("generator", stream.id),
	}
	go gen.run()
	return gen
}

func (gen *generator) run() {
	defer close(gen.ch)
	for {
		select {
		case <-gen.done:
			return
		default:
		}
		access := gen.stream.Next()
		select {
		case gen.ch <- access:
		case <-gen.done:
			return
		}
	}
}

func (gen *generator) Generate() (Access, bool) {
	access, ok := <-gen.ch
	if ok {
		gen.generated.Add(1)
	}
	return access, ok
}

// Stop ends the producer. Buffered accesses are still handed out.
func (gen *generator) Stop() {
	gen.once.Do(func() {
		close(gen.done)
	})
}
