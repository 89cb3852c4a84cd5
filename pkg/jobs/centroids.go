package jobs

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/grantflow/grantflow/pkg/backend"
	"github.com/grantflow/grantflow/pkg/config"
)

func init() {
	Register("centroid-reload", centroidReload{})
}

// centroidReload reloads the postal code centroid table from the configured
// dump so distance filters pick up new postal codes.
type centroidReload struct{}

var _ Runner = centroidReload{}

// Spec implements Runner.
func (centroidReload) Spec(ctx context.Context) string {
	cfg := config.FromContext(ctx)
	if cfg == nil || cfg.Geo.CentroidsPath == "" {
		return ""
	}
	return cfg.Jobs.CentroidReload
}

// Func implements Runner.
func (centroidReload) Func(ctx context.Context) func() {
	cfg := config.FromContext(ctx)
	be := backend.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("jobs.centroids")
	return func() {
		if cfg == nil || be == nil || cfg.Geo.CentroidsPath == "" {
			return
		}

		imported, skipped, err := be.ImportCentroidsFile(ctx, cfg.Geo.CentroidsPath)
		if err != nil {
			logger.Error("error reloading centroids", "path", cfg.Geo.CentroidsPath, "err", err)
			return
		}
		logger.Debug("reloaded centroids", "imported", imported, "skipped", skipped)
	}
}
