package workload

import "github.com/Yunpeng-J/zipf/pkg/metrics"

var (
	generatorLatency = metrics.HistogramOpts{
		Name:       "generatorLatencyZipf",
		Help:       "time to draw one accepted key",
		Buckets:    []float64{1e-7, 5e-7, 1e-6, 5e-6, 1e-5, 1e-4, 1e-3},
		LabelNames: []string{"generator"},
	}
	generatorCnt = metrics.CounterOpts{
		Name:       "generatorZipf",
		Help:       "number of keys handed out by generators",
		LabelNames: []string{"generator"},
	}
	overflowCnt = metrics.CounterOpts{
		Name:       "overflowZipf",
		Help:       "number of draws above the keyspace that were redrawn",
		LabelNames: []string{"generator"},
	}
)

type Metrics struct {
	GeneratorCounter metrics.Counter
	OverflowCounter  metrics.Counter
	GeneratorLatency metrics.Histogram
}

func NewMetrics(p metrics.Provider) *Metrics {
	return &Metrics{
		GeneratorCounter: p.NewCounter(generatorCnt),
		OverflowCounter:  p.NewCounter(overflowCnt),
		GeneratorLatency: p.NewHistogram(generatorLatency),
	}
}
