package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chefdhundo-backend/config"
	_ "chefdhundo-backend/docs" // Important for Swagger
	"chefdhundo-backend/internal/delivery/http/middleware"
	v1 "chefdhundo-backend/internal/delivery/http/v1"
	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/internal/repository/memory"
	notionrepo "chefdhundo-backend/internal/repository/notion"
	"chefdhundo-backend/internal/repository/postgres"
	redisrepo "chefdhundo-backend/internal/repository/redis"
	"chefdhundo-backend/internal/scheduler"
	"chefdhundo-backend/internal/store"
	"chefdhundo-backend/internal/usecase"
	"chefdhundo-backend/pkg/auth"
	"chefdhundo-backend/pkg/cashfree"
	"chefdhundo-backend/pkg/clerk"
	"chefdhundo-backend/pkg/database"
	"chefdhundo-backend/pkg/email"
	"chefdhundo-backend/pkg/logger"
	"chefdhundo-backend/pkg/notion"
	"chefdhundo-backend/pkg/redis"
	"chefdhundo-backend/pkg/security"
	"chefdhundo-backend/pkg/validation"

	"github.com/jackc/pgx/v5/pgxpool"
)

// @title           ChefDhundo Backend API
// @version         1.0
// @description     Chef directory, resumes, plan upgrades and account provisioning.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting chefdhundo backend", "port", cfg.Port, "env", cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup optional Database (payment receipts, security events)
	var dbPool *pgxpool.Pool
	if cfg.DBUrl != "" {
		dbPool, err = database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Warn("Database unavailable; receipts and security events will not be persisted", "error", err)
			dbPool = nil
		} else {
			defer dbPool.Close()
		}
	}

	// 4. Setup Security Logger
	zapLogger := security.NewZapLogger()
	defer func() { _ = zapLogger.Sync() }()
	secLog := security.NewSecurityLogger(zapLogger, "chefdhundo-backend", cfg.Environment)
	if dbPool != nil && cfg.SecurityLogToDB {
		secLog.SetPersistFunc(security.NewSecurityEventRepository(dbPool).PersistFunc(security.SeverityWARN))
	}

	// 5. Setup Redis
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable; using in-memory fallbacks", "error", err)
		}
	}
	defer func() { _ = redis.Close() }()
	redisClient := redis.Client()

	// 6. Setup Document Store (one integration per database)
	notionOpts := []notion.Option{notion.WithBaseURL(cfg.NotionBaseURL), notion.WithVersion(cfg.NotionVersion)}
	resumePages := notion.NewClient(cfg.NotionResumeToken, notionOpts...)
	userPages := notion.NewClient(cfg.NotionUserDBToken, notionOpts...)

	// 7. Setup Repositories and cached collections
	candidateRepo := notionrepo.NewCandidateRepository(resumePages, cfg.NotionResumeDBID)
	userRepo := notionrepo.NewUserRepository(userPages, cfg.NotionUserDBID)
	candidates := store.NewCandidateStore(candidateRepo)
	users := store.NewUserStore(userRepo)

	var pendingEdits domain.PendingEditRepository = memory.NewPendingEditRepository(cfg.PendingEditTTL)
	if redisClient != nil {
		pendingEdits = redisrepo.NewPendingEditRepository(redisClient, cfg.PendingEditTTL)
	}

	var receipts domain.PaymentReceiptRepository
	if dbPool != nil {
		receipts = postgres.NewPaymentReceiptRepository(dbPool)
	}

	// 8. Setup External Services
	emailService := email.NewEmailService(email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFromEmail,
		To:       cfg.ContactEmailTo,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable")
	}

	if cashfree.CredentialMismatch(cfg.CashfreeClientID, cfg.CashfreeClientSecret) {
		logger.Log.Warn("Cashfree credentials mix test and production values")
	}
	gateway := cashfree.NewClient(cfg.CashfreeClientID, cfg.CashfreeClientSecret, cashfree.WithAPIVersion(cfg.CashfreeAPIVersion))

	var clerkVerifier *clerk.Verifier
	if cfg.ClerkWebhookSecret != "" {
		clerkVerifier, err = clerk.NewVerifier(cfg.ClerkWebhookSecret)
		if err != nil {
			logger.Log.Error("Invalid CLERK_WEBHOOK_SECRET; identity webhooks will be rejected", "error", err)
		}
	}

	// 9. Setup UseCases
	validate := validation.New()
	roleUC := usecase.NewRoleUsecase(users, cfg.DirectoryMaxAge)
	directoryUC := usecase.NewDirectoryUsecase(candidates, roleUC, cfg.DirectoryMaxAge)
	resumeUC := usecase.NewResumeUsecase(candidateRepo, candidates, validate, cfg.DirectoryMaxAge)
	editUC := usecase.NewEditUsecase(pendingEdits, candidates, validate, cfg.DirectoryMaxAge)
	accountUC := usecase.NewAccountUsecase(userRepo, users)
	paymentUC := usecase.NewPaymentUsecase(gateway, receipts, usecase.PaymentConfig{
		AppURL:        cfg.AppURL,
		WebhookSecret: cfg.CashfreeClientSecret,
		VerifyWebhook: cfg.CashfreeVerifyWebhook,
	})
	contactUC := usecase.NewContactUsecase(emailService)

	checks := map[string]usecase.Pinger{"redis": nil, "database": nil}
	if redisClient != nil {
		checks["redis"] = redis.HealthCheck
	}
	if dbPool != nil {
		checks["database"] = dbPool.Ping
	}
	healthUC := usecase.NewHealthUsecase(resumePages.Configured() && userPages.Configured(), checks)

	// 10. Setup Session Verification (JWKS)
	var verifier middleware.TokenVerifier
	if cfg.ClerkJWKSURL != "" {
		jwksProvider := auth.NewProvider(cfg.ClerkJWKSURL)
		verifier = auth.NewVerifier(jwksProvider.KeyFunc, cfg.ClerkIssuer, cfg.ClerkEmailClaim)
	}

	// 11. Background refresh of the cached collections
	refresher := scheduler.New(cfg.DirectoryRefreshSpec, map[string]scheduler.Refresher{
		"resumes": candidates,
		"users":   users,
	})
	if err := refresher.Start(ctx); err != nil {
		logger.Log.Error("Failed to start directory refresh", "error", err, "spec", cfg.DirectoryRefreshSpec)
		os.Exit(1)
	}

	// 12. Setup Router
	allowed := append([]string{cfg.FrontendURL}, cfg.CORSAllowedOrigins...)
	router := v1.NewRouter(v1.RouterDeps{
		HealthUC:    healthUC,
		RoleUC:      roleUC,
		DirectoryUC: directoryUC,
		ResumeUC:    resumeUC,
		EditUC:      editUC,
		AccountUC:   accountUC,
		PaymentUC:   paymentUC,
		ContactUC:   contactUC,

		Verifier:      verifier,
		ClerkVerifier: clerkVerifier,
		SecurityLog:   secLog,
		Redis:         redisClient,

		AllowedOrigins: allowed,
		Production:     cfg.IsProduction(),

		RateLimitWindow:  time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		GlobalRateLimit:  cfg.RateLimitGlobalThreshold,
		WebhookRateLimit: cfg.RateLimitWebhookThreshold,
	})

	// 13. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	refresher.Stop()

	logger.Log.Info("Server exiting")
}
