package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "memberfund-backend/internal/api/http"
	"memberfund-backend/internal/config"
	"memberfund-backend/internal/logger"
	"memberfund-backend/internal/repository/postgres"
	"memberfund-backend/internal/security"
	"memberfund-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Member Fund Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Governance configuration",
		"fund_threshold_cents", cfg.Governance.FundThresholdCents,
		"grace_period_days", cfg.Governance.GracePeriodDays,
		"launch_date", cfg.Governance.LaunchDate)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize outbound channels
	emailSvc := service.NewEmailService(cfg.Email)
	pushSvc, err := service.NewPushService(context.Background(), cfg.Push)
	if err != nil {
		logger.Error("Failed to initialize push service", "error", err)
		log.Fatalf("Failed to initialize push service: %v", err)
	}

	// Initialize Services
	params := service.NewGovernanceParams(cfg)
	authSvc := service.NewAuthService(store.MemberRepository, tokenManager)
	memberSvc := service.NewMemberService(store.MemberRepository, store.PaymentRepository, store.QueueRepository)
	tenureSvc := service.NewTenureService(store.MemberRepository, store.PaymentRepository, params)
	payoutSvc := service.NewPayoutService(
		store.MemberRepository,
		store.PaymentRepository,
		store.QueueRepository,
		store.ProposalRepository,
		store.WorkflowRepository,
		store.NotificationRepository,
		emailSvc,
		pushSvc,
		params,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Set up HTTP server
	router := httpapi.NewRouter(tokenManager, authSvc, memberSvc, tenureSvc, payoutSvc, noteSvc, cfg.ApproverRoles())
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
