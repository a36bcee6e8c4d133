package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the chi router with middleware and every route
func NewRouter(deps Dependencies) http.Handler {
	h := NewHandler(deps)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/sets", func(r chi.Router) {
			r.Get("/", h.ListSets)
			r.Post("/", h.CreateSet)
			r.Route("/{setID}", func(r chi.Router) {
				r.Get("/", h.GetSet)
				r.Put("/", h.UpdateSet)
				r.Delete("/", h.DeleteSet)
				r.Post("/cards", h.CreateCard)
				r.Get("/number-crunch", h.NumberCrunch)
				r.Get("/archetypes", h.ListArchetypes)
				r.Post("/archetypes", h.CreateArchetype)
			})
		})
		r.Route("/cards/{cardID}", func(r chi.Router) {
			r.Get("/", h.GetCard)
			r.Put("/", h.UpdateCard)
			r.Delete("/", h.DeleteCard)
		})
		r.Route("/archetypes/{archetypeID}", func(r chi.Router) {
			r.Get("/", h.GetArchetype)
			r.Put("/", h.UpdateArchetype)
			r.Delete("/", h.DeleteArchetype)
		})
		r.Post("/mana/colors", h.DeriveColors)
	})

	return r
}

// logRequests logs each request and records its latency by route pattern
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)

		h.metrics.ObserveRequest(r.Method, route, status, elapsed)

		fields := map[string]interface{}{
			"status":      status,
			"bytes":       ww.BytesWritten(),
			"duration_ms": elapsed.Milliseconds(),
			"remote_addr": r.RemoteAddr,
		}
		logger := h.requestLogger(r)
		switch {
		case status >= 500:
			logger.Warn("Request completed with server error", fields)
		default:
			logger.Debug("Request completed", fields)
		}
	})
}
