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

	"github.com/redis/go-redis/v9"

	"github.com/Programmer60/BorrowEase-sub002/internal/application/usecase"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/port"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/service"
	"github.com/Programmer60/BorrowEase-sub002/internal/infrastructure/cache"
	"github.com/Programmer60/BorrowEase-sub002/internal/infrastructure/config"
	"github.com/Programmer60/BorrowEase-sub002/internal/infrastructure/kafka"
	"github.com/Programmer60/BorrowEase-sub002/internal/infrastructure/persistence"
	"github.com/Programmer60/BorrowEase-sub002/internal/infrastructure/telemetry"
	grpcPresentation "github.com/Programmer60/BorrowEase-sub002/internal/presentation/grpc"
	"github.com/Programmer60/BorrowEase-sub002/internal/presentation/rest"
	"github.com/Programmer60/BorrowEase-sub002/pkg/auth"
	pkgkafka "github.com/Programmer60/BorrowEase-sub002/pkg/kafka"
	"github.com/Programmer60/BorrowEase-sub002/pkg/observability"
	pkgpostgres "github.com/Programmer60/BorrowEase-sub002/pkg/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("riskd exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.Telemetry.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting riskd",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"default_model", cfg.Risk.DefaultModel,
	)

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.Insecure,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	recorder, err := telemetry.NewRecorder(meterProvider.Meter("riskd"))
	if err != nil {
		return fmt.Errorf("failed to create metrics recorder: %w", err)
	}

	// Database connection and schema.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(cfg.DB.DSN(), persistence.Migrations, persistence.MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	submissions := persistence.NewSubmissionRepo(pool)
	loanHistory := persistence.NewLoanHistoryRepo(pool)

	checks := map[string]rest.Check{
		"postgres": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
	}

	// Score cache is optional; nil disables it.
	var scoreCache port.ScoreCache
	if !cfg.Redis.Disabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func(c *redis.Client) { _ = c.Close() }(redisClient)
		scoreCache = cache.NewScoreCache(redisClient, cfg.Risk.ScoreCacheTTL)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		logger.Info("score cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Risk.ScoreCacheTTL)
	}

	producer, err := pkgkafka.NewProducer(cfg.Kafka)
	if err != nil {
		return fmt.Errorf("failed to create kafka producer: %w", err)
	}
	defer func() { _ = producer.Close() }()
	publisher := kafka.NewEventPublisher(producer, logger)

	// Domain services.
	registry, err := buildRegistry(cfg.Risk)
	if err != nil {
		return fmt.Errorf("failed to build risk model registry: %w", err)
	}
	engine, err := service.NewDecisionEngine(registry, service.RateBand{
		MinBps: cfg.Risk.MinRateBps,
		MaxBps: cfg.Risk.MaxRateBps,
	})
	if err != nil {
		return fmt.Errorf("failed to create decision engine: %w", err)
	}
	calculator := service.NewScoreCalculator()

	handler := grpcPresentation.NewRiskEngineHandler(grpcPresentation.UseCases{
		GetCreditScore:            usecase.NewGetCreditScore(loanHistory, submissions, calculator, scoreCache, cfg.Risk.ScoreCacheTTL, recorder, logger),
		AssessRisk:                usecase.NewAssessRisk(loanHistory, submissions, registry, engine, calculator, publisher, recorder, logger),
		ListRiskModels:            usecase.NewListRiskModels(registry),
		ListSubmissions:           usecase.NewListSubmissions(submissions),
		GetSubmission:             usecase.NewGetSubmission(submissions),
		SubmitKYC:                 usecase.NewSubmitKYC(submissions, publisher, recorder, logger),
		ResubmitKYC:               usecase.NewResubmitKYC(submissions, publisher, recorder, logger),
		ReviewGate:                usecase.NewReviewGate(submissions, publisher, scoreCache, recorder, logger),
		SubmitAddressProof:        usecase.NewSubmitAddressProof(submissions, publisher, recorder, logger),
		ReviewAddressVerification: usecase.NewReviewAddressVerification(submissions, publisher, recorder, logger),
	}, logger)

	jwtSvc, err := newJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	grpcServer, err := grpcPresentation.NewServer(handler, jwtSvc, grpcPresentation.ServerOptions{
		TLSCertFile:     cfg.TLS.CertFile,
		TLSKeyFile:      cfg.TLS.KeyFile,
		TLSClientCAFile: cfg.TLS.ClientCAFile,
		Reflection:      cfg.GRPCReflection,
	}, logger)
	if err != nil {
		return err
	}

	// HTTP server (health checks and metrics).
	mux := http.NewServeMux()
	rest.NewHealthHandler(cfg.Telemetry.ServiceName, checks, logger).RegisterRoutes(mux, metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("riskd stopped")
	return serveErr
}

// buildRegistry registers the built-in presets, then any presets from the
// models file, which replace built-ins sharing an id.
func buildRegistry(cfg config.RiskConfig) (*service.RiskModelRegistry, error) {
	presets := service.DefaultPresets()
	if cfg.ModelsFile != "" {
		data, err := os.ReadFile(cfg.ModelsFile)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", cfg.ModelsFile, err)
		}
		extra, err := service.ParsePresets(data)
		if err != nil {
			return nil, err
		}
		presets = append(presets, extra...)
	}
	return service.NewRiskModelRegistry(cfg.DefaultModel, presets...)
}

// newJWTService builds a validation-only JWT service. An RSA public key takes
// precedence over the HMAC secret.
func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.Issuer}
	if cfg.JWTPublicKeyFile != "" {
		key, err := auth.LoadKeyFromFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(key)
	} else {
		jwtCfg.Secret = cfg.JWTSecret
	}
	return auth.NewJWTService(jwtCfg)
}
