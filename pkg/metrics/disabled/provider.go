package disabled

import (
	"github.com/Yunpeng-J/zipf/pkg/metrics"
	"github.com/go-kit/kit/metrics/discard"
)

// Provider hands out meters that drop every update.
type Provider struct{}

func (p *Provider) NewCounter(metrics.CounterOpts) metrics.Counter       { return &Counter{} }
func (p *Provider) NewGauge(metrics.GaugeOpts) metrics.Gauge             { return &Gauge{} }
func (p *Provider) NewHistogram(metrics.HistogramOpts) metrics.Histogram { return &Histogram{} }

var (
	discardCounter   = discard.NewCounter()
	discardGauge     = discard.NewGauge()
	discardHistogram = discard.NewHistogram()
)

type Counter struct{}

func (c *Counter) Add(delta float64)                          { discardCounter.Add(delta) }
func (c *Counter) With(labelValues ...string) metrics.Counter { return c }

type Gauge struct{}

func (g *Gauge) Add(delta float64)                        { discardGauge.Add(delta) }
func (g *Gauge) Set(delta float64)                        { discardGauge.Set(delta) }
func (g *Gauge) With(labelValues ...string) metrics.Gauge { return g }

type Histogram struct{}

func (h *Histogram) Observe(value float64)                        { discardHistogram.Observe(value) }
func (h *Histogram) With(labelValues ...string) metrics.Histogram { return h }
