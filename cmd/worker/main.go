package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/bazaarlabs/backend-bazaar/internal/app"
	"github.com/bazaarlabs/backend-bazaar/internal/common"
	"github.com/bazaarlabs/backend-bazaar/internal/config"
	"github.com/bazaarlabs/backend-bazaar/internal/notify"
	"github.com/bazaarlabs/backend-bazaar/internal/obs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisOpt, err := app.AsynqRedisOpt(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Queues:      map[string]int{cfg.EmailQueue: 1},
	})

	var sender common.EmailSender = common.NopEmailSender{}
	emailWorker := &notify.EmailWorker{
		Mail: sender,
		From: cfg.EmailFrom,
		Log:  logger,
	}

	mux := asynq.NewServeMux()
	emailWorker.Register(mux)

	go func() {
		<-ctx.Done()
		logger.Info().Msg("worker shutting down")
		srv.Shutdown()
	}()

	logger.Info().Str("queue", cfg.EmailQueue).Int("concurrency", cfg.WorkerConcurrency).Msg("worker starting")
	if err := srv.Run(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped with error")
	}
	logger.Info().Msg("worker shutdown complete")
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
