package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"tickertalk/internal/app/di"
	"tickertalk/internal/app/router"
	assistanthandler "tickertalk/internal/feature/assistant/transport/handler"
	assistantusecase "tickertalk/internal/feature/assistant/usecase"
	marketdatahandler "tickertalk/internal/feature/marketdata/transport/handler"
	marketdatausecase "tickertalk/internal/feature/marketdata/usecase"
	symbolshandler "tickertalk/internal/feature/symbols/transport/handler"
	symbolsusecase "tickertalk/internal/feature/symbols/usecase"
	"tickertalk/internal/platform/config"
	platformhandler "tickertalk/internal/platform/http/handler"
	"tickertalk/internal/platform/logger"
	"tickertalk/internal/platform/metrics"
	"tickertalk/internal/shared/ratelimiter"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file path (optional)")
	envFile := flag.String("env", ".env", "env file with API keys (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if _, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("logger init failed")
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(reg)

	// Redis（任意）
	rdb := di.NewRedis(ctx, cfg.Redis)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis client")
			}
		}()
	}

	// Repository / Gateway
	symbolRepo, closeSymbols, err := di.NewSymbolRepository(ctx, cfg.Symbols)
	if err != nil {
		log.Fatal().Err(err).Msg("symbol directory init failed")
	}
	defer func() {
		if err := closeSymbols(); err != nil {
			log.Error().Err(err).Msg("failed to close symbol database")
		}
	}()
	gateway := di.NewGateway(cfg, recorder, rdb)
	classifier, err := di.NewClassifier(ctx, cfg.Classifier)
	if err != nil {
		log.Fatal().Err(err).Msg("classifier init failed")
	}

	// Usecase
	symbolUC, err := symbolsusecase.NewSymbolUsecase(ctx, symbolRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("symbol directory load failed")
	}
	chartUC := marketdatausecase.NewChartUsecase(gateway)
	assistantUC := assistantusecase.NewAssistantUsecase(classifier, gateway, recorder)

	// Handler
	checks := []platformhandler.Check{{Name: "symbols", Fn: func(ctx context.Context) error {
		_, err := symbolRepo.ListActive(ctx)
		return err
	}}}
	if rdb != nil {
		checks = append(checks, platformhandler.Check{Name: "redis", Fn: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	handlers := router.Handlers{
		Page:   assistanthandler.NewPageHandler(assistantUC, symbolUC, chartUC),
		Ask:    assistanthandler.NewAskHandler(assistantUC),
		Symbol: symbolshandler.NewSymbolHandler(symbolUC),
		Chart:  marketdatahandler.NewChartHandler(chartUC),
		Health: platformhandler.NewHealthHandler(checks...),
	}

	opts := router.Options{Recorder: recorder, Gatherer: reg}
	if cfg.Server.AskPerMinute > 0 {
		opts.AskLimiter = ratelimiter.NewRateLimiter(cfg.Server.AskPerMinute, time.Minute)
	}

	// ルータ生成
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router.NewRouter(handlers, opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Str("classifier", cfg.Classifier.Provider).
			Str("model", cfg.Classifier.Model).Str("symbols", cfg.Symbols.Source).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
