package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contentgen/internal/handlers"
	"contentgen/internal/middleware"
)

func New(contentHandler *handlers.ContentHandler, corsOrigin string, rateLimitPerMinute int) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(corsOrigin))

	// Model-backed endpoints share a per-IP limiter
	modelLimiter := middleware.NewRateLimiter(rateLimitPerMinute, time.Minute)

	r.Get("/", contentHandler.Home)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", contentHandler.Health)
		r.Get("/content-types", contentHandler.ContentTypes)
		r.Get("/usage", contentHandler.Usage)

		r.Group(func(r chi.Router) {
			r.Use(modelLimiter.Middleware)
			r.Post("/generate", contentHandler.Generate)
			r.Post("/summarize", contentHandler.Summarize)
		})
	})

	return r
}
