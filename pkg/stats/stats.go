// Package stats serves the prometheus metrics of grantflow.
package stats

import (
	"context"
	"net/http"
	"time"

	"github.com/grantflow/grantflow/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsServer exposes /metrics on its own listener so the scrape endpoint
// never shares the public API address.
type StatsServer struct { //nolint:revive
	cfg    *config.Config
	server *http.Server
}

// NewHandler returns the metrics handler.
func NewHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// NewStatsServer returns a new StatsServer listening on the stats address
// of the config in ctx.
func NewStatsServer(ctx context.Context) (*StatsServer, error) {
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return nil, config.ErrNilConfig
	}

	return &StatsServer{
		cfg: cfg,
		server: &http.Server{
			Addr:              cfg.Stats.ListenAddr,
			Handler:           NewHandler(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
		},
	}, nil
}

// Addr returns the address the server listens on.
func (s *StatsServer) Addr() string {
	return s.server.Addr
}

// ListenAndServe starts the StatsServer.
func (s *StatsServer) ListenAndServe() error {
	return s.server.ListenAndServe() //nolint:wrapcheck
}

// Shutdown gracefully shuts down the StatsServer.
func (s *StatsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx) //nolint:wrapcheck
}

// Close closes the StatsServer.
func (s *StatsServer) Close() error {
	return s.server.Close() //nolint:wrapcheck
}
