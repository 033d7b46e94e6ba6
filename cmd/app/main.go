// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"internship-marketplace/internal/config"
	"internship-marketplace/internal/domain/ports/adapter"
	pg "internship-marketplace/internal/infra/db/postgres"
	"internship-marketplace/internal/infra/logging"
	"internship-marketplace/internal/infra/metrics"
	pay "internship-marketplace/internal/infra/payment"
	red "internship-marketplace/internal/infra/redis"
	"internship-marketplace/internal/infra/sched"
	"internship-marketplace/internal/infra/web"
	"internship-marketplace/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop gateway, console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)
	locker := red.NewLocker(redisClient)

	// ---- Repositories ----
	userRepo := pg.NewUserRepo(pool)
	planRepo := pg.NewPlanRepoCacheDecorator(pg.NewPostgresPlanRepo(pool), redisClient, cfg.Redis.TTL)
	paymentRepo := pg.NewPaymentRepo(pool)
	internshipRepo := pg.NewInternshipRepo(pool)
	applicationRepo := pg.NewApplicationRepo(pool)
	companyAppRepo := pg.NewCompanyApplicationRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Payment gateway (chapa default, stripe alternative, noop in dev) ----
	var gateway adapter.PaymentGateway
	switch {
	case cfg.Runtime.Dev:
		gateway = pay.NewNoopGateway()
		logger.Warn().Msg("payment gateway: noop (dev)")
	case cfg.Payment.Provider == "stripe":
		gateway, err = pay.NewStripeGateway(cfg.Payment.Stripe.SecretKey)
		if err != nil {
			log.Fatalf("stripe gateway: %v", err)
		}
		logger.Info().Msg("payment gateway: stripe")
	default:
		gateway, err = pay.NewChapaGateway(cfg.Payment.Chapa.SecretKey, cfg.Payment.Chapa.BaseURL)
		if err != nil {
			log.Fatalf("chapa gateway: %v", err)
		}
		logger.Info().Str("base_url", cfg.Payment.Chapa.BaseURL).Msg("payment gateway: chapa")
	}

	// ---- Use cases ----
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, planRepo, userRepo, gateway, txManager, cfg.Payment.Currency, usecase.PaymentURLs{
		CallbackBase: cfg.Server.PublicURL,
		FrontendBase: cfg.Server.FrontendURL,
	}, logger)
	planUC := usecase.NewPlanUseCase(planRepo)
	internshipUC := usecase.NewInternshipUseCase(internshipRepo, applicationRepo)
	companyUC := usecase.NewCompanyUseCase(companyAppRepo, planRepo, userRepo)
	statsUC := usecase.NewStatsUseCase(userRepo, paymentRepo)

	// ---- Reconciler ----
	reconciler := sched.NewPaymentReconciler(paymentUC, locker, cfg.Reconciler.Interval, cfg.Reconciler.StaleAfter, logger)
	go reconciler.Start(ctx)

	// ---- HTTP ----
	auth := web.NewAuthManager(cfg.Auth.JWTSecret)
	server := web.NewServer(paymentUC, planUC, internshipUC, companyUC, statsUC, auth, rateLimiter, cfg.Payment.RateLimit, cfg.Payment.Chapa.WebhookSecret, logger)
	go func() {
		if err := server.Start(cfg.Server.Port); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// ---- Shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
