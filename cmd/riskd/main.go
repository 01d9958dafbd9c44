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

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"

	"github.com/Dasindu02/diapredict-main/internal/application/usecase"
	"github.com/Dasindu02/diapredict-main/internal/domain/port"
	"github.com/Dasindu02/diapredict-main/internal/domain/service"
	"github.com/Dasindu02/diapredict-main/internal/infrastructure/artifact"
	"github.com/Dasindu02/diapredict-main/internal/infrastructure/config"
	"github.com/Dasindu02/diapredict-main/internal/infrastructure/messaging"
	"github.com/Dasindu02/diapredict-main/internal/infrastructure/ml"
	"github.com/Dasindu02/diapredict-main/internal/infrastructure/postgres"
	grpcpresentation "github.com/Dasindu02/diapredict-main/internal/presentation/grpc"
	"github.com/Dasindu02/diapredict-main/internal/presentation/rest"
	"github.com/Dasindu02/diapredict-main/pkg/kafka"
	"github.com/Dasindu02/diapredict-main/pkg/observability"
	pgpkg "github.com/Dasindu02/diapredict-main/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})

	logger.Info("starting "+config.ServiceName,
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: config.ServiceName,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer shutdownTracer(context.Background())
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: config.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer meterProvider.Shutdown(context.Background())
	otel.SetMeterProvider(meterProvider)

	// Load the classifier. Serving without a model is not an option.
	classifier, err := loadModel(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to load model", "path", cfg.ModelPath, "error", err)
		os.Exit(1)
	}
	logger.Info("model loaded",
		"path", cfg.ModelPath,
		"format", classifier.Format(),
		"classes", classifier.Classes(),
	)

	checks := []rest.ReadinessCheck{{
		Name:  "model",
		Check: func(context.Context) error { return nil },
	}}

	// Prediction audit store.
	var predictionRepo port.PredictionRepository = postgres.NopPredictionRepository{}
	if cfg.DatabaseURL != "" {
		pool, err := openDatabase(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		predictionRepo = postgres.NewPredictionRepository(pool)
		checks = append(checks, rest.ReadinessCheck{
			Name:  "database",
			Check: func(ctx context.Context) error { return pgpkg.HealthCheck(ctx, pool) },
		})
	} else {
		logger.Info("DATABASE_URL not set, prediction audit disabled")
	}

	// Event publishing.
	var eventPublisher port.EventPublisher = messaging.NewLogPublisher(logger)
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		producer, err := kafka.NewProducer(kafka.Config{
			Brokers:       brokers,
			TLS:           cfg.KafkaTLS,
			SASLEnabled:   cfg.KafkaSASLMechanism != "",
			SASLMechanism: cfg.KafkaSASLMechanism,
			SASLUsername:  cfg.KafkaSASLUsername,
			SASLPassword:  cfg.KafkaSASLPassword,
			WriteTimeout:  5 * time.Second,
		})
		if err != nil {
			logger.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer producer.Close()

		guarded := messaging.NewBreakerProducer(producer, messaging.BreakerSettings{Name: "kafka"}, logger)
		eventPublisher = messaging.NewKafkaPublisher(guarded, cfg.KafkaTopic, logger)
		checks = append(checks, rest.ReadinessCheck{
			Name: "kafka",
			Check: func(context.Context) error {
				if guarded.State() == "open" {
					return messaging.ErrBrokerUnavailable
				}
				return nil
			},
		})
		logger.Info("publishing events to kafka", "brokers", brokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("KAFKA_BROKERS not set, events are logged only")
	}

	// Wire use cases.
	predictRiskUC, err := usecase.NewPredictRisk(
		service.NewFeatureEncoder(),
		classifier,
		predictionRepo,
		eventPublisher,
		logger,
		meterProvider.Meter("github.com/Dasindu02/diapredict-main"),
	)
	if err != nil {
		logger.Error("failed to create predict use case", "error", err)
		os.Exit(1)
	}
	getPredictionUC := usecase.NewGetPrediction(predictionRepo)

	// gRPC server.
	grpcHandler := grpcpresentation.NewRiskServiceHandler(predictRiskUC, getPredictionUC, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddress(),
		ServiceName: config.ServiceName,
		TLSCertFile: cfg.GRPCTLSCertFile,
		TLSKeyFile:  cfg.GRPCTLSKeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)

	// HTTP server.
	router := rest.NewRouter(config.ServiceName,
		rest.NewPredictionHandler(predictRiskUC, getPredictionUC, logger),
		rest.NewHealthHandler(config.ServiceName, logger, checks...),
		metricsHandler,
		logger,
	)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info(config.ServiceName+" started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down " + config.ServiceName)

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info(config.ServiceName + " stopped")
}

// loadModel fetches the artifact when it is missing locally, then parses it.
func loadModel(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ml.Model, error) {
	var src artifact.Source
	if cfg.ModelSourceURL != "" {
		var err error
		src, err = artifact.NewSource(cfg.ModelSourceURL, artifact.S3Options{
			Endpoint:  cfg.ModelS3Endpoint,
			AccessKey: cfg.ModelS3AccessKey,
			SecretKey: cfg.ModelS3SecretKey,
			UseSSL:    cfg.ModelS3UseSSL,
		})
		if err != nil {
			return nil, err
		}
	}

	fetchCtx, fetchCancel := context.WithTimeout(ctx, 5*time.Minute)
	defer fetchCancel()

	if _, err := artifact.EnsureLocal(fetchCtx, cfg.ModelPath, src, logger); err != nil {
		return nil, err
	}
	return ml.Load(cfg.ModelPath)
}

// openDatabase connects to PostgreSQL and applies pending migrations.
func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pgpkg.NewPool(dbCtx, pgpkg.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database")

	status, err := pgpkg.MigrateUp(cfg.DatabaseURL, cfg.MigrationsDir)
	if err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("database schema ready",
		"dir", cfg.MigrationsDir,
		"version", status.Version,
		"migrated", status.Changed,
	)

	return pool, nil
}
