// Package httptransport wires the public HTTP surface: middleware chain,
// health and metrics endpoints, and the per-domain route groups.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accounthandler "finattr/internal/account/handler"
	"finattr/internal/platform/middleware"
	taxyearhandler "finattr/internal/taxyear/handler"
)

// NewRouter assembles the full router. Handlers stay thin; transport
// concerns (request ids, recovery, logging, timeouts) live here.
func NewRouter(logger *slog.Logger, accounts *accounthandler.Handler, taxYears *taxyearhandler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		accounts.Register(r)
		taxYears.Register(r)
	})
	return r
}
