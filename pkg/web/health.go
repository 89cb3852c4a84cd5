package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/grantflow/grantflow/pkg/db"
)

// HealthController registers the health check routes for the web server.
func HealthController(_ context.Context, r *mux.Router) {
	r.HandleFunc("/livez", getLiveness).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/readyz", getReadiness).Methods(http.MethodGet, http.MethodHead)
}

func getLiveness(w http.ResponseWriter, _ *http.Request) {
	renderStatus(http.StatusOK)(w, nil)
}

func getReadiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dbx := db.FromContext(ctx)
	if dbx == nil {
		renderStatus(http.StatusServiceUnavailable)(w, r)
		return
	}

	if err := dbx.PingContext(ctx); err != nil {
		log.FromContext(ctx).Error("readiness check failed", "err", err)
		renderStatus(http.StatusServiceUnavailable)(w, r)
		return
	}

	renderStatus(http.StatusOK)(w, r)
}
