package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airplain-service/internal/infrastructure/config"
	"airplain-service/internal/infrastructure/persistence"
	"airplain-service/internal/infrastructure/scheduler"
	"airplain-service/internal/interface/api"
	"airplain-service/internal/interface/provider"
	"airplain-service/internal/interface/repository"
	"airplain-service/internal/usecase"
	"airplain-service/pkg/emitter"
	"airplain-service/pkg/logger"
	"airplain-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Starting AirPlain Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up reference data repositories
	airlineRepository := repository.NewGormAirlineRepository(gormDB)
	airportRepository := repository.NewGormAirportRepository(gormDB)

	// Set up flight storage and settings
	flightRepository := repository.NewMongoFlightRepository(db)
	settingsRepository := repository.NewMongoSettingsRepository(db)
	notifier := repository.NewPushRepository(cfg.PushGatewayURL, cfg.PushGatewayToken, log)

	m := metrics.NewMetrics("airplain")
	events := emitter.New()
	flightProvider := provider.Select(cfg, airportRepository, log)

	engine := usecase.NewEngine(
		flightRepository,
		airlineRepository,
		settingsRepository,
		notifier,
		flightProvider,
		events,
		m,
		cfg,
		log,
	)
	lookup := usecase.NewFlightLookup(flightRepository, airlineRepository, airportRepository, flightProvider, log)
	transfer := usecase.NewFlightTransfer(flightRepository, log)
	stats := usecase.NewStatsService(flightRepository, log)

	// Start the reconciliation loop in a goroutine
	sched := scheduler.NewScheduler(engine, events, log)
	go sched.Run(ctx)

	// Archived flights invalidate cached statistics downstream; log the
	// event so operators can correlate.
	go func() {
		pastChanged := events.Subscribe(emitter.PastFlightsChanged)
		for {
			select {
			case <-ctx.Done():
				return
			case <-pastChanged:
				log.Info("Past flights changed")
			}
		}
	}()

	// Set up HTTP server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	api.NewHandlers(lookup, transfer, stats, events, log).Register(mux)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("AirPlain Service stopped")
}
