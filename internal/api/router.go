package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	_ "crm-admin/docs"
	"crm-admin/internal/api/handler"
	mw "crm-admin/internal/api/middleware"
	"crm-admin/internal/config"
	"crm-admin/internal/domain/contact"
	"crm-admin/internal/domain/customer"
	"crm-admin/internal/domain/formlink"
	"crm-admin/internal/domain/offer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Services groups the domain services the HTTP layer exposes.
type Services struct {
	Customers customer.Service
	Contacts  contact.Service
	Offers    offer.Service
	FormLinks formlink.Service
}

// SetupRouter builds the HTTP router. ctx bounds the lifetime of the
// rate limiters' background cleanup.
func SetupRouter(ctx context.Context, svc Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg.Server, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	adminLimiter := mw.NewRateLimiterMiddleware(ctx, "admin", cfg.Server.RateLimit, logger)
	publicLimiter := mw.NewRateLimiterMiddleware(ctx, "public", cfg.Server.PublicRateLimit, logger)

	setupAuthRoutes(router, cfg, adminLimiter, logger)
	setupPublicRoutes(router, svc.FormLinks, publicLimiter, logger)
	router.Group(func(r chi.Router) {
		r.Use(adminLimiter.Middleware)
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		setupCustomerRoutes(r, svc.Customers, svc.Contacts, logger)
		setupOfferRoutes(r, svc.Offers, logger)
		setupFormLinkRoutes(r, svc.FormLinks, logger)
	})

	return router
}

func setupMiddleware(router *chi.Mux, cfg config.ServerConfig, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	// Forwarded headers are client controlled unless a proxy in front rewrites them.
	if cfg.TrustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, limiter *mw.RateLimiterMiddleware, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupPublicRoutes(router *chi.Mux, svc formlink.Service, limiter *mw.RateLimiterMiddleware, logger *slog.Logger) {
	h := handler.NewPublicFormHandler(svc, logger)
	router.Route("/public/forms", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Get("/{token}", h.GetForm)
		r.Post("/{token}", h.SubmitForm)
	})
}

func setupCustomerRoutes(r chi.Router, customers customer.Service, contacts contact.Service, logger *slog.Logger) {
	h := handler.NewCustomerHandler(customers, logger)
	ch := handler.NewContactHandler(contacts, logger)

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.CreateCustomer)
		r.Get("/", h.ListCustomers)
		r.Get("/stats", h.GetStats)
		r.Post("/duplicates", h.CheckDuplicates)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.UpdateCustomer)
			r.Delete("/", h.DeleteCustomer)
			r.Post("/restore", h.RestoreCustomer)
			r.Get("/duplicates", h.GetCustomerDuplicates)
			r.Post("/contacts", ch.CreateContact)
			r.Get("/contacts", ch.ListContacts)
		})
	})

	r.Route("/contacts/{contactID}", func(r chi.Router) {
		r.Get("/", ch.GetContact)
		r.Put("/", ch.UpdateContact)
		r.Delete("/", ch.DeleteContact)
		r.Put("/primary", ch.SetPrimary)
	})
}

func setupOfferRoutes(r chi.Router, svc offer.Service, logger *slog.Logger) {
	h := handler.NewOfferHandler(svc, logger)

	r.Route("/offers", func(r chi.Router) {
		r.Post("/", h.CreateOffer)
		r.Get("/", h.ListOffers)
		r.Get("/counts", h.CountOffers)
		r.Route("/{offerID}", func(r chi.Router) {
			r.Get("/", h.GetOffer)
			r.Put("/", h.UpdateOffer)
			r.Delete("/", h.DeleteOffer)
			r.Put("/status", h.ChangeStatus)
		})
	})
}

func setupFormLinkRoutes(r chi.Router, svc formlink.Service, logger *slog.Logger) {
	h := handler.NewFormLinkHandler(svc, logger)

	r.Route("/form-links", func(r chi.Router) {
		r.Post("/", h.IssueFormLink)
		r.Get("/", h.ListFormLinks)
		r.Delete("/{linkID}", h.RevokeFormLink)
	})
}
