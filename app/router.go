package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/quote-genie/api/quotes"
)

// NewRouter mounts the quote endpoints and the Prometheus handler for g.
// A nil gatherer serves the default registry.
func NewRouter(h *quotes.Handler, metricsPath string, g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// The quote form is served from another origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Post("/predict", h.Predict)
	r.Route("/api/v1/quotes", func(r chi.Router) {
		r.Post("/predict", h.Predict)
	})
	r.Method(http.MethodGet, metricsPath, promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
