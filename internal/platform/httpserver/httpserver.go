package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults. Validation passes are fast
// and CPU-bound, so the timeouts stay tight.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
