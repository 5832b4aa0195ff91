package operations

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/Yunpeng-J/zipf/pkg/metrics"
	"github.com/Yunpeng-J/zipf/pkg/metrics/disabled"
	"github.com/Yunpeng-J/zipf/pkg/metrics/prometheus"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	ListenAddress string
	Provider      string
	Version       string
}

// System owns the metrics provider and the HTTP endpoint exposing it.
type System struct {
	metrics.Provider
	options Options
	logger  *log.Logger

	router   *mux.Router
	server   *http.Server
	listener net.Listener
}

func NewSystem(o Options, logger *log.Logger) (*System, error) {
	system := &System{
		options: o,
		logger:  logger,
		router:  mux.NewRouter(),
	}
	if err := system.initializeMetricsProvider(); err != nil {
		return nil, err
	}
	system.router.HandleFunc("/healthz", system.healthz).Methods(http.MethodGet)
	system.router.HandleFunc("/version", system.version).Methods(http.MethodGet)
	return system, nil
}

func (s *System) initializeMetricsProvider() error {
	switch s.options.Provider {
	case "prometheus":
		s.Provider = &prometheus.Provider{}
		s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
		return nil
	case "disabled", "":
		s.Provider = &disabled.Provider{}
		return nil
	default:
		return errors.Errorf("unknown provider type: %s", s.options.Provider)
	}
}

// Handler exposes the router, mostly for tests.
func (s *System) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves in the background.
// An empty address disables the endpoint.
func (s *System) Start() error {
	if s.options.ListenAddress == "" {
		return nil
	}
	listener, err := net.Listen("tcp", s.options.ListenAddress)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.options.ListenAddress)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Errorf("operations server stopped: %v", err)
		}
	}()
	s.logger.Infof("operations endpoint listening on %s", listener.Addr())
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *System) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *System) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *System) healthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "OK"})
}

func (s *System) version(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"version": s.options.Version})
}

func (s *System) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("failed to encode response: %v", err)
	}
}
