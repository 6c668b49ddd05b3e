package api

import (
	"context"
	"lending-api/internal/api/handler"
	mw "lending-api/internal/api/middleware"
	"lending-api/internal/config"
	"lending-api/internal/domain/loan"
	"lending-api/internal/domain/product"
	"lending-api/internal/domain/user"
	"log/slog"
	"net/http"
	"time"

	_ "lending-api/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Services struct {
	Loans    loan.LoanService
	Users    user.Service
	Products product.Service
}

// SetupRouter builds the HTTP surface. ctx bounds background work owned by the
// router such as rate limiter cleanup.
func SetupRouter(ctx context.Context, svc Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	if cfg.Server.Auth.DevTokens {
		logger.Warn("Development token endpoint is mounted, tokens are issued without credentials", "path", "/auth/token")
		authHandler := handler.NewAuthHandler(cfg.Server.Auth, svc.Users, logger)
		router.Route("/auth", func(r chi.Router) {
			r.Post("/token", authHandler.GenerateBearerToken)
		})
	}

	router.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, svc.Users, logger))
		setupUserRoutes(r, svc.Users, logger)
		setupProductRoutes(r, svc.Products, logger)
		setupLoanRoutes(r, svc.Loans, logger)
	})

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger).Middleware)
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

func setupUserRoutes(r chi.Router, svc user.Service, logger *slog.Logger) {
	h := handler.NewUserHandler(svc, logger)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.FindByEmail)
		r.Get("/me", h.Me)
		r.Route("/{email}", func(r chi.Router) {
			r.Post("/block", h.BlockUser)
			r.Post("/unblock", h.UnblockUser)
			r.Post("/make-accountant", h.MakeAccountant)
		})
	})
}

func setupProductRoutes(r chi.Router, svc product.Service, logger *slog.Logger) {
	h := handler.NewProductHandler(svc, logger)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{productID}", h.GetProduct)
	})
}

func setupLoanRoutes(r chi.Router, svc loan.LoanService, logger *slog.Logger) {
	h := handler.NewLoanHandler(svc, logger)

	r.Route("/loans", func(r chi.Router) {
		r.Get("/", h.ListLoans)
		r.Post("/fast", h.CreateFastLoan)
		r.Post("/installment", h.CreateInstallmentLoan)
		r.Post("/auto", h.CreateAutoLoan)
		r.Route("/{loanID}", func(r chi.Router) {
			r.Get("/", h.GetLoan)
			r.Put("/", h.ModifyLoan)
			r.Delete("/", h.DeleteLoan)
			r.Post("/accept", h.AcceptLoan)
			r.Post("/decline", h.DeclineLoan)
			r.Post("/payments", h.PayMonthlyDue)
		})
	})
}
