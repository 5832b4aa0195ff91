package client

import "github.com/Yunpeng-J/zipf/pkg/metrics"

var (
	drawLatency = metrics.HistogramOpts{
		Name:       "drawLatency",
		Help:       "time a client waits for its generator",
		Buckets:    []float64{1e-7, 1e-6, 1e-5, 1e-4, 1e-3, 1e-2},
		LabelNames: []string{"ClientID"},
	}
	numOfAccess = metrics.CounterOpts{
		Name:       "numOfAccess",
		Help:       "the number of accesses issued by clients",
		LabelNames: []string{"ClientID"},
	}
	observedAccess = metrics.CounterOpts{
		Name: "observedAccess",
		Help: "the number of accesses tallied by the observer",
	}
	distinctKeys = metrics.GaugeOpts{
		Name: "distinctKeys",
		Help: "the number of distinct keys observed so far",
	}
)

type Metrics struct {
	DrawLatency    metrics.Histogram
	NumOfAccess    metrics.Counter
	ObservedAccess metrics.Counter
	DistinctKeys   metrics.Gauge
}

func NewMetrics(p metrics.Provider) *Metrics {
	return &Metrics{
		DrawLatency:    p.NewHistogram(drawLatency),
		NumOfAccess:    p.NewCounter(numOfAccess),
		ObservedAccess: p.NewCounter(observedAccess),
		DistinctKeys:   p.NewGauge(distinctKeys),
	}
}
