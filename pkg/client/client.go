package client

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/Yunpeng-J/zipf/pkg/metrics"
	"github.com/Yunpeng-J/zipf/pkg/workload"
	log "github.com/sirupsen/logrus"
)

type ClientManager struct {
	clients  []*Client
	accessCh chan workload.Access
	logger   *log.Logger
	wg       sync.WaitGroup
}

// NewClientManager creates n clients sharing accessCh. A positive total
// caps the accesses issued, split evenly over the clients; when total is
// below n only total clients are created.
func NewClientManager(accessCh chan workload.Access, provider workload.Provider, n, total int, metrics *Metrics, logger *log.Logger) *ClientManager {
	if n < 1 {
		panic("clients must be greater than 0")
	}
	if total > 0 && total < n {
		n = total
	}
	cm := &ClientManager{
		accessCh: accessCh,
		logger:   logger,
	}
	for i := 0; i < n; i++ {
		limit := 0
		if total > 0 {
			limit = total / n
			if i < total%n {
				limit++
			}
		}
		cm.clients = append(cm.clients, NewClient(i, provider, limit, metrics, logger))
	}
	return cm
}

// Run starts every client. accessCh is closed once all of them returned.
func (cm *ClientManager) Run(ctx context.Context) {
	for _, cli := range cm.clients {
		cm.wg.Add(1)
		go func(cli *Client) {
			defer cm.wg.Done()
			cli.Run(ctx, cm.accessCh)
		}(cli)
	}
	go func() {
		cm.wg.Wait()
		close(cm.accessCh)
	}()
}

type Client struct {
	id     int
	gen    workload.Generator
	limit  int
	logger *log.Logger

	accesses metrics.Counter
	latency  metrics.Histogram
}

func NewClient(id int, provider workload.Provider, limit int, m *Metrics, logger *log.Logger) *Client {
	label := strconv.Itoa(id)
	return &Client{
		id:       id,
		gen:      provider.ForEachClient(id),
		limit:    limit,
		logger:   logger,
		accesses: m.NumOfAccess.With("ClientID", label),
		latency:  m.DrawLatency.With("ClientID", label),
	}
}

// Run pulls accesses until the context ends, the limit is reached or the
// generator runs dry.
func (client *Client) Run(ctx context.Context, out chan<- workload.Access) {
	defer client.gen.Stop()
	sent := 0
	for client.limit == 0 || sent < client.limit {
		select {
		case <-ctx.Done():
			client.logger.Debugf("client %d is ready to stop after %d accesses", client.id, sent)
			return
		default:
		}
		start := time.Now()
		access, ok := client.gen.Generate()
		if !ok {
			client.logger.Debugf("generator of client %d stopped", client.id)
			return
		}
		client.latency.Observe(time.Since(start).Seconds())
		select {
		case out <- access:
			client.accesses.Add(1)
			sent++
		case <-ctx.Done():
			return
		}
	}
	client.logger.Debugf("client %d reached its limit of %d accesses", client.id, client.limit)
}
