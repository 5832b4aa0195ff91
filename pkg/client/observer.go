package client

import (
	"sort"
	"time"

	"github.com/Yunpeng-J/zipf/pkg/workload"
	"github.com/Yunpeng-J/zipf/pkg/zipf"
	log "github.com/sirupsen/logrus"
)

// Observer tallies the accesses issued by a ClientManager.
type Observer struct {
	ch       <-chan workload.Access
	keys     workload.Keyspace
	masses   []float64
	topK     int
	recorder *Recorder
	logger   *log.Logger

	metrics *Metrics
}

// NewObserver judges the tally against masses when they are given. The
// recorder may be nil.
func NewObserver(ch <-chan workload.Access, keys workload.Keyspace, masses []float64, topK int, recorder *Recorder, metrics *Metrics, logger *log.Logger) *Observer {
	return &Observer{
		ch:       ch,
		keys:     keys,
		masses:   masses,
		topK:     topK,
		recorder: recorder,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run drains the channel until it is closed and reports the tally.
func (o *Observer) Run() Report {
	o.logger.Debugf("start observer")
	start := time.Now()
	counts := make([]uint64, len(o.keys))
	var total uint64
	distinct := 0
	for access := range o.ch {
		if counts[access.Index] == 0 {
			distinct++
			o.metrics.DistinctKeys.Set(float64(distinct))
		}
		counts[access.Index]++
		total++
		o.metrics.ObservedAccess.Add(1)
		if o.recorder != nil {
			o.recorder.Record(access)
		}
	}
	return o.report(counts, total, distinct, time.Since(start))
}

func (o *Observer) report(counts []uint64, total uint64, distinct int, duration time.Duration) Report {
	r := Report{
		Total:    total,
		Distinct: distinct,
		Duration: duration,
	}
	if total == 0 {
		return r
	}

	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})
	for _, idx := range order {
		if len(r.Top) >= o.topK || counts[idx] == 0 {
			break
		}
		r.Top = append(r.Top, Rank{
			Index: uint64(idx),
			Key:   o.keys[idx],
			Count: counts[idx],
			Share: float64(counts[idx]) / float64(total),
		})
	}

	if o.masses != nil {
		fit, err := zipf.GoodnessOfFit(counts, o.masses)
		if err != nil {
			o.logger.Warnf("skip goodness of fit: %v", err)
		} else {
			r.Fit = &fit
		}
	}
	return r
}

type Rank struct {
	Index uint64
	Key   string
	Count uint64
	Share float64
}

type Report struct {
	Total    uint64
	Distinct int
	Duration time.Duration
	Top      []Rank
	Fit      *zipf.Fit
}

// Throughput returns accesses per second.
func (r Report) Throughput() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Total) / r.Duration.Seconds()
}

func (r Report) Log(logger *log.Logger) {
	fields := log.Fields{
		"total":    r.Total,
		"distinct": r.Distinct,
		"duration": r.Duration,
		"tps":      r.Throughput(),
	}
	if r.Fit != nil {
		fields["chi2"] = r.Fit.Statistic
		fields["freedom"] = r.Fit.Freedom
		fields["pvalue"] = r.Fit.PValue
	}
	logger.WithFields(fields).Info("completed observing accesses")
	for i, rank := range r.Top {
		logger.WithFields(log.Fields{
			"rank":  i,
			"index": rank.Index,
			"key":   rank.Key,
			"count": rank.Count,
			"share": rank.Share,
		}).Info("hot key")
	}
}
