package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Yunpeng-J/zipf/pkg/metrics/disabled"
	"github.com/Yunpeng-J/zipf/pkg/operations"
	"github.com/Yunpeng-J/zipf/pkg/workload"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var MAX_BUF = 100010

// resolveSeed replaces a zero seed with the current time.
func resolveSeed(config Config) Config {
	if config.Workload.Seed == 0 {
		config.Workload.Seed = uint64(time.Now().UnixNano())
	}
	return config
}

// loadKeyspace prefers a keyspace saved by a previous trace run.
func loadKeyspace(config Config, logger *log.Logger) (workload.Keyspace, error) {
	keys, err := workload.LoadKeyspace(config.Directory)
	if err == nil {
		logger.Infof("read %d keys from %s", len(keys), config.Directory)
		return keys, nil
	}
	if os.IsNotExist(errors.Cause(err)) {
		return nil, nil
	}
	return nil, err
}

// RunLoadCmd issues accesses from config.Clients clients for
// config.Interval seconds, or until config.Number accesses when the
// config caps it, and reports the observed distribution.
func RunLoadCmd(config Config, capped bool, logger *log.Logger) (Report, error) {
	config = resolveSeed(config)
	if err := config.Validate(); err != nil {
		return Report{}, err
	}
	start := time.Now()
	system, err := operations.NewSystem(operations.Options{
		ListenAddress: config.MetricsAddr,
		Provider:      config.MetricsType,
		Version:       Version,
	}, logger)
	if err != nil {
		return Report{}, err
	}
	if err := system.Start(); err != nil {
		return Report{}, err
	}
	defer system.Stop(context.Background())

	keys, err := loadKeyspace(config, logger)
	if err != nil {
		return Report{}, err
	}
	wlp, err := workload.NewWorkloadProvider(config.Workload, keys, system.Provider)
	if err != nil {
		return Report{}, err
	}
	metric := NewMetrics(system.Provider)

	var recorder *Recorder
	if config.Record {
		if recorder, err = NewRecorder(config.Directory, MAX_BUF, logger); err != nil {
			return Report{}, err
		}
	}

	total := 0
	if capped {
		total = config.Number
	}
	accessCh := make(chan workload.Access, MAX_BUF)
	cm := NewClientManager(accessCh, wlp, config.Clients, total, metric, logger)
	observer := NewObserver(accessCh, wlp.Keyspace(), workload.Masses(config.Workload), config.TopK, recorder, metric, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.Interval)*time.Second)
	defer cancel()
	cm.Run(ctx)
	report := observer.Run()

	if recorder != nil {
		if err := recorder.Close(); err != nil {
			return report, err
		}
	}
	logger.Infof("finish RunLoadCmd in %d ms", time.Since(start).Milliseconds())
	return report, nil
}

// RunTraceCmd writes the keyspace and config.Number accesses split over
// config.Clients trace files.
func RunTraceCmd(config Config, logger *log.Logger) error {
	config = resolveSeed(config)
	if err := config.Validate(); err != nil {
		return err
	}
	now := time.Now()
	defer func() {
		logger.Infof("generate trace in %d ms", time.Since(now).Milliseconds())
	}()
	wlp, err := workload.NewWorkloadProvider(config.Workload, nil, &disabled.Provider{})
	if err != nil {
		return err
	}
	if err := wlp.Keyspace().Save(config.Directory); err != nil {
		return err
	}
	logger.Infof("create %d keys with seed %d", len(wlp.Keyspace()), config.Workload.Seed)
	return wlp.Trace(config.Directory, config.Clients, config.Number)
}

// RunSingleCmd prints n accesses of a single stream to w.
func RunSingleCmd(config Config, n int, w io.Writer, logger *log.Logger) error {
	config = resolveSeed(config)
	if err := config.Validate(); err != nil {
		return err
	}
	keys, err := loadKeyspace(config, logger)
	if err != nil {
		return err
	}
	wlp, err := workload.NewWorkloadProvider(config.Workload, keys, &disabled.Provider{})
	if err != nil {
		return err
	}
	stream := wlp.Stream(0)
	for i := 0; i < n; i++ {
		a := stream.Next()
		if _, err := fmt.Fprintf(w, "%d %s\n", a.Index, a.Key); err != nil {
			return errors.Wrap(err, "write sample")
		}
	}
	return nil
}
