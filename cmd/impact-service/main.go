package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/api"
	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/asteroid-impact-service/internal/adapter/kafka"
	"github.com/couchcryptid/asteroid-impact-service/internal/config"
	"github.com/couchcryptid/asteroid-impact-service/internal/observability"
	"github.com/couchcryptid/asteroid-impact-service/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// apiOnly reports ready as soon as the HTTP API is up.
type apiOnly struct{}

func (apiOnly) CheckReadiness(context.Context) error { return nil }

func main() {
	// Optional: a missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	gin.SetMode(gin.ReleaseMode)
	seed := uint64(time.Now().UnixNano())
	handler := api.NewHandler(logger, metrics, cfg.APICacheSize, rand.New(rand.NewPCG(seed, seed>>1|1)))
	router := api.NewRouter(api.RouterConfig{
		CORSOrigins: cfg.APICORSOrigins,
		RateLimit:   cfg.APIRateLimit,
	}, handler, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		reader *kafkaadapter.Reader
		writer *kafkaadapter.Writer
		ready  sharedobs.ReadinessChecker = apiOnly{}
	)
	if cfg.PipelineEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		p := pipeline.New(reader, pipeline.NewEvaluator(logger), writer, logger, metrics, cfg.BatchSize, cfg.EvalWorkers)
		ready = p

		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		logger.Info("evaluation pipeline disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, router, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
