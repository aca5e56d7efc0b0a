package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/oseme/esusu/internal/adapter/http/handler"
	"github.com/oseme/esusu/internal/adapter/http/middleware"
	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/infrastructure/auth"
	"github.com/oseme/esusu/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PolicyHandler       *handler.PolicyHandler
	FundHandler         *handler.FundHandler
	TransferHandler     *handler.TransferHandler
	DepositHandler      *handler.DepositHandler
	NotificationHandler *handler.NotificationHandler
	MemberHandler       *handler.MemberHandler
	ActivityHandler     *handler.ActivityHandler
	LedgerHandler       *handler.LedgerHandler
	HealthHandler       *handler.HealthHandler
	JWTManager          *auth.JWTManager
	IdempotencyStore    usecase.IdempotencyStore
	RateLimiter         *middleware.RateLimiter
	Logger              zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTManager))

		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap)
		}

		// Policies. Creation and deletion are manager operations;
		// resolution is open to every member.
		r.Route("/policies", func(r chi.Router) {
			r.Get("/", cfg.PolicyHandler.List)
			r.Get("/effective", cfg.PolicyHandler.ResolveEffective)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleManager))
				r.Post("/", cfg.PolicyHandler.Create)
				r.Delete("/{id}", cfg.PolicyHandler.Delete)
			})
		})

		// Funds
		r.Route("/funds", func(r chi.Router) {
			r.Get("/", cfg.FundHandler.List)
			r.Get("/{id}", cfg.FundHandler.Get)
			r.Get("/{id}/transactions", cfg.TransferHandler.ListByFund)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleManager))
				r.Post("/", cfg.FundHandler.Create)
				r.Delete("/{id}", cfg.FundHandler.Delete)
			})
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Get("/{id}", cfg.TransferHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleManager))
				r.Post("/", cfg.TransferHandler.Create)
			})
		})

		// Deposits
		r.Route("/deposits", func(r chi.Router) {
			r.Post("/", cfg.DepositHandler.Submit)
			r.Get("/mine", cfg.DepositHandler.ListMine)
			r.Get("/{id}", cfg.DepositHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleManager))
				r.Get("/", cfg.DepositHandler.ListByStatus)
				r.Post("/{id}/verify", cfg.DepositHandler.Verify)
				r.Post("/{id}/reject", cfg.DepositHandler.Reject)
			})
		})

		// Notifications
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", cfg.NotificationHandler.List)
			r.Post("/{id}/read", cfg.NotificationHandler.MarkRead)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))
				r.Post("/reminders/run", cfg.NotificationHandler.RunReminders)
			})
		})

		// Members
		r.Route("/members", func(r chi.Router) {
			r.Get("/{id}", cfg.MemberHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleManager))
				r.Get("/", cfg.MemberHandler.List)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))
				r.Post("/", cfg.MemberHandler.Register)
			})
		})

		// Activity log and ledger checks are manager surfaces.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(domain.RoleManager))
			r.Get("/activity", cfg.ActivityHandler.List)
			r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
		})
	})

	return r
}
