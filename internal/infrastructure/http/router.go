package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/idolbase/internal/infrastructure/http/middleware"
)

// APIVersion is reported in the X-API-Version response header.
const APIVersion = "1.0"

type RouterConfig struct {
	Content       *handlers.Content
	HealthHandler *handlers.HealthHandler
	RequireAdmin  func(http.Handler) http.Handler // X-Idolbase-Admin-Key for writes, export and import
	CORS          func(http.Handler) http.Handler
	Log           zerolog.Logger
	Secure        func(http.Handler) http.Handler
	IPRateLimit   func(http.Handler) http.Handler
	Metrics       bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(chimid.SetHeader("X-API-Version", APIVersion))

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	requireAdmin := cfg.RequireAdmin
	if requireAdmin == nil {
		requireAdmin = middleware.RequireAdminKey("", nil)
	}

	c := cfg.Content
	r.Route("/api", func(r chi.Router) {
		r.Use(chimid.AllowContentType("application/json"))
		r.Use(chimid.SetHeader("Content-Type", "application/json"))
		if cfg.IPRateLimit != nil {
			r.Use(cfg.IPRateLimit)
		}
		mountResource(r, "/groups", c.Groups, requireAdmin)
		mountResource(r, "/members", c.Members, requireAdmin)
		mountResource(r, "/songs", c.Songs, requireAdmin)
		mountResource(r, "/formations", c.Formations, requireAdmin)
		mountResource(r, "/setlists", c.Setlists, requireAdmin)
		mountResource(r, "/conversations", c.Conversations, requireAdmin)
		r.Route("/data", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/export", c.Data.Export)
			r.Post("/import", c.Data.Import)
		})
	})

	return r
}

// resourceHandler is implemented by every content handler.
type resourceHandler interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
	BulkDelete(http.ResponseWriter, *http.Request)
}

// mountResource registers public reads and admin-only writes for one resource.
func mountResource(r chi.Router, path string, h resourceHandler, requireAdmin func(http.Handler) http.Handler) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", h.Create)
			r.Post("/bulk-delete", h.BulkDelete)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", chimid.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
