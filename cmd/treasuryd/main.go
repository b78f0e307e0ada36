package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bibbank/treasury/internal/application/usecase"
	"github.com/bibbank/treasury/internal/domain/port"
	"github.com/bibbank/treasury/internal/domain/service"
	"github.com/bibbank/treasury/internal/infrastructure/config"
	infraKafka "github.com/bibbank/treasury/internal/infrastructure/kafka"
	infraPostgres "github.com/bibbank/treasury/internal/infrastructure/postgres"
	"github.com/bibbank/treasury/internal/infrastructure/snapshot"
	grpcPresentation "github.com/bibbank/treasury/internal/presentation/grpc"
	"github.com/bibbank/treasury/internal/presentation/rest"
	"github.com/bibbank/treasury/pkg/kafka"
	"github.com/bibbank/treasury/pkg/money"
	"github.com/bibbank/treasury/pkg/observability"
	"github.com/bibbank/treasury/pkg/postgres"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "treasury-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize structured logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.Telemetry.ServiceName,
		Version:     version,
	})
	logger.Info("starting treasury-service",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics and tracing.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer shutdown(logger, "meter provider", meterProvider.Shutdown)

	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    cfg.Telemetry.OTLPInsecure,
			SampleRatio: cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer shutdown(logger, "tracer provider", shutdownTracer)
		logger.Info("trace export enabled", "endpoint", cfg.Telemetry.OTLPEndpoint)
	}

	// Repositories.
	var (
		investments port.InvestmentRepository
		rates       port.FXRateRepository
		readiness   postgres.Pinger
	)
	if cfg.SnapshotFile != "" {
		store, err := snapshot.LoadFile(cfg.SnapshotFile)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		investments, rates = store, store
		logger.Info("serving from snapshot", "file", cfg.SnapshotFile)
	} else {
		dbCfg := postgres.Config{
			Host:            cfg.DB.Host,
			Port:            cfg.DB.Port,
			User:            cfg.DB.User,
			Password:        cfg.DB.Password,
			Database:        cfg.DB.Name,
			SSLMode:         cfg.DB.SSLMode,
			ApplicationName: cfg.Telemetry.ServiceName,
			MaxConns:        cfg.DB.MaxConns,
			MinConns:        cfg.DB.MinConns,
		}
		pool, err := postgres.NewPool(ctx, dbCfg)
		if err != nil {
			return fmt.Errorf("create database pool: %w", err)
		}
		defer pool.Close()
		logger.Info("database pool created")

		if err := postgres.RunEmbeddedMigrations(dbCfg.DSN(), infraPostgres.Migrations, infraPostgres.MigrationsDir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		investments = infraPostgres.NewInvestmentRepo(pool)
		rates = infraPostgres.NewFXRateRepo(pool)
		readiness = pool
	}

	// Event publisher.
	var publisher port.EventPublisher = infraKafka.LogPublisher{Logger: logger}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.Config{
			Brokers:       cfg.Kafka.Brokers,
			ClientID:      cfg.Kafka.ClientID,
			TLS:           cfg.Kafka.TLS,
			SASLMechanism: cfg.Kafka.SASLMechanism,
			SASLUsername:  cfg.Kafka.SASLUsername,
			SASLPassword:  cfg.Kafka.SASLPassword,
		})
		if err != nil {
			return fmt.Errorf("create kafka producer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error("kafka producer close error", "error", err)
			}
		}()
		publisher = infraKafka.NewEventPublisher(producer, logger)
		logger.Info("kafka producer created", "brokers", cfg.Kafka.Brokers)
	}

	// Domain services.
	var engineOpts []service.AccrualOption
	if cfg.Treasury.AllowNegativeRates {
		engineOpts = append(engineOpts, service.WithNegativeRates())
	}
	engine := service.NewAccrualEngine(engineOpts...)
	converter := service.NewCurrencyConverter(service.NewRateResolver())
	aggregator := service.NewPortfolioAggregator(engine, converter)
	generator := service.NewSeriesGenerator(engine, converter)

	var reporting money.Currency
	if cfg.Treasury.ReportingCurrency != "" {
		reporting = money.MustCurrency(cfg.Treasury.ReportingCurrency)
	}

	// Use cases.
	getInvestmentROI := usecase.NewGetInvestmentROI(investments, rates, publisher, engine, converter, logger)
	getPortfolioROI := usecase.NewGetPortfolioROI(investments, rates, publisher, aggregator, reporting, logger)
	getDailySeries := usecase.NewGetDailySeries(investments, rates, generator, logger)

	// gRPC server.
	handler := grpcPresentation.NewHandler(getInvestmentROI, getPortfolioROI, getDailySeries, logger)
	grpcServer, err := grpcPresentation.NewServer(handler, logger, grpcPresentation.ServerConfig{
		Port:       cfg.GRPCPort,
		CertFile:   cfg.TLS.CertFile,
		KeyFile:    cfg.TLS.KeyFile,
		Reflection: cfg.GRPCReflection,
	})
	if err != nil {
		return fmt.Errorf("create grpc server: %w", err)
	}

	// HTTP health and metrics server.
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      rest.NewMux(rest.NewHealthHandler(readiness, logger), metricsHandler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		errCh <- grpcServer.Start()
	}()

	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Graceful shutdown.
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("shutting down")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("treasury-service stopped")
	return nil
}

// shutdown runs fn with a bounded context, logging any error.
func shutdown(logger *slog.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		logger.Error("shutdown error", "component", name, "error", err)
	}
}
