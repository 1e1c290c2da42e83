package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tcgarvin/spacesim2/internal/sim"
)

// NewRouter creates a chi router exposing the read-only monitor API over a
// running simulation, with request logging. The monitor only observes:
// every mutation of simulation state happens through the turn loop.
func NewRouter(s *sim.Simulation, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(requestLogging(logger))

	marketH := NewMarketHandler(s)
	actorH := NewActorHandler(s)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Simulation status.
	r.Get("/status", marketH.GetStatus)
	r.Get("/commodities", marketH.ListCommodities)

	// Per-planet market routes.
	r.Get("/planets/{planet}/commodities/{commodity}/stats", marketH.GetStats)
	r.Get("/planets/{planet}/commodities/{commodity}/book", marketH.GetBook)

	// Actor routes.
	r.Get("/actors", actorH.List)
	r.Get("/actors/{actor_id}", actorH.Get)
	r.Get("/actors/{actor_id}/orders", actorH.ListOrders)

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
