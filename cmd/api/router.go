package main

import (
	"log/slog"
	"net/http"
	"time"

	"folio-backend/internal/admin"
	"folio-backend/internal/auth"
	"folio-backend/internal/casestudies"
	"folio-backend/internal/contact"
	"folio-backend/internal/middleware"
	"folio-backend/internal/transport"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routerDeps struct {
	Log             *slog.Logger
	CaseStudies     *casestudies.Handler
	Contact         *contact.Handler
	Admin           *admin.Handler
	JWT             *auth.Manager
	AdminAPIKey     string
	FrontendOrigins []string
	ContactLimiter  *middleware.RateLimiter
	Registry        *prometheus.Registry
}

func newRouter(d routerDeps) http.Handler {
	metrics := middleware.NewMetrics(d.Registry)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Log))
	r.Use(metrics.Middleware)
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))

	r.Get("/work", d.CaseStudies.WorkIndex)
	r.Get("/work/{slug}", d.CaseStudies.WorkPage)
	r.NotFound(d.CaseStudies.NotFound)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.CORS(d.FrontendOrigins...))

		api.Get("/case-studies", d.CaseStudies.PublicList)
		api.Get("/case-studies/{slug}", d.CaseStudies.PublicGetBySlug)
		api.Get("/categories", d.CaseStudies.Categories)
		api.With(d.ContactLimiter.Middleware).Post("/contact", d.Contact.Create)

		api.Route("/admin", func(adm chi.Router) {
			adm.With(d.ContactLimiter.Middleware).Post("/login", d.Admin.Login)
			adm.Post("/logout", d.Admin.Logout)

			// chi requires middlewares before routes, so protected routes
			// live in their own group.
			adm.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(d.AdminAPIKey, d.JWT))
				protected.Post("/case-studies/validate", d.Admin.ValidateCaseStudy)
				protected.Post("/catalog/validate", d.Admin.ValidateCatalog)
				protected.Post("/cache/purge", d.Admin.PurgeCache)
				protected.Get("/contact", d.Contact.AdminList)
				protected.Get("/contact/{id}", d.Contact.AdminGetByID)
				protected.Patch("/contact/{id}", d.Contact.AdminUpdateStatus)
			})
		})
	})

	return r
}
