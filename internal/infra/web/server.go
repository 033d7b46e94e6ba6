package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"internship-marketplace/internal/domain/model"
	red "internship-marketplace/internal/infra/redis"
	"internship-marketplace/internal/usecase"
)

type Server struct {
	paymentUC     usecase.PaymentUseCase
	planUC        usecase.PlanUseCase
	internshipUC  usecase.InternshipUseCase
	companyUC     usecase.CompanyUseCase
	statsUC       usecase.StatsUseCase
	auth          *AuthManager
	limiter       *red.RateLimiter
	rateLimit     int
	webhookSecret string
	log           *zerolog.Logger

	server *http.Server
}

func NewServer(
	paymentUC usecase.PaymentUseCase,
	planUC usecase.PlanUseCase,
	internshipUC usecase.InternshipUseCase,
	companyUC usecase.CompanyUseCase,
	statsUC usecase.StatsUseCase,
	auth *AuthManager,
	limiter *red.RateLimiter,
	rateLimit int,
	webhookSecret string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		paymentUC:     paymentUC,
		planUC:        planUC,
		internshipUC:  internshipUC,
		companyUC:     companyUC,
		statsUC:       statsUC,
		auth:          auth,
		limiter:       limiter,
		rateLimit:     rateLimit,
		webhookSecret: webhookSecret,
		log:           logger,
	}
}

// Router builds the chi route tree. Split out so tests can drive it with
// httptest directly.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log), Timeout(30*time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Invoked by the gateway, not a browser session; unauthenticated.
	r.Get("/api/payment/callback", s.handlePaymentCallback)
	r.Post("/api/payment/webhook", s.handlePaymentWebhook)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/plans", s.handlePlansList)
		r.Get("/internships", s.handleInternshipsList)
		r.Get("/internships/{id}", s.handleInternshipGet)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)

			r.Post("/plans/select", s.handlePlanSelect)
			r.Post("/internships/{id}/apply", s.handleInternshipApply)
			r.Get("/applications", s.handleApplicationsList)
			r.Post("/companies/apply", s.handleCompanyApply)

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(model.RoleCompany))
				r.Post("/internships", s.handleInternshipCreate)
			})

			r.Group(func(r chi.Router) {
				r.Use(RequireRole(model.RoleAdmin))
				r.Post("/plans", s.handlePlanCreate)
				r.Put("/plans/{id}", s.handlePlanUpdate)
				r.Delete("/plans/{id}", s.handlePlanDelete)
				r.Get("/companies/applications", s.handleCompanyApplicationsList)
				r.Post("/companies/applications/{id}/review", s.handleCompanyReview)
				r.Get("/stats", s.handleStats)
			})
		})
	})

	return r
}

func (s *Server) Start(port int) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}
	s.log.Info().Int("port", port).Msg("http server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
