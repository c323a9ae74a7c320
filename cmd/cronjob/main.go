package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"memberfund-backend/internal/config"
	"memberfund-backend/internal/jobs"
	"memberfund-backend/internal/logger"
	"memberfund-backend/internal/repository/postgres"
	"memberfund-backend/internal/scheduler"
	"memberfund-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'sweep-defaults', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Member Fund Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services
	params := service.NewGovernanceParams(cfg)
	emailSvc := service.NewEmailService(cfg.Email)
	pushSvc, err := service.NewPushService(context.Background(), cfg.Push)
	if err != nil {
		logger.Error("Failed to initialize push service", "error", err)
		log.Fatalf("Failed to initialize push service: %v", err)
	}

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

	jobServices := &jobs.Services{
		Email:  emailSvc,
		Tenure: tenureSvc,
		Payout: payoutSvc,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "sweep-defaults":
		jobRunner.SweepDefaults()
	case "evaluate-fund":
		jobRunner.EvaluateFund()
	case "expire-stale-workflows":
		jobRunner.ExpireStaleWorkflows()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - sweep-defaults\n")
		fmt.Printf("  - evaluate-fund\n")
		fmt.Printf("  - expire-stale-workflows\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
