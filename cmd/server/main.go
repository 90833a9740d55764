package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"contentgen/internal/config"
	"contentgen/internal/database"
	"contentgen/internal/handlers"
	"contentgen/internal/logger"
	"contentgen/internal/repository"
	"contentgen/internal/router"
	"contentgen/internal/services"
	"contentgen/internal/worker"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, !cfg.IsProduction())
	log.Info().Msg("🚀 Starting content generation API...")
	log.Info().Msg("✓ Environment variables loaded")

	// ──── Step 2: Initialize Gemini Client ────
	var generator services.TextGenerator
	if cfg.GeminiConfigured() {
		geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiConcurrentReqs)
		if err != nil {
			log.Fatal().Err(err).Msg("✗ Gemini client initialization failed")
		}
		defer geminiService.Close()
		generator = geminiService
		log.Info().Str("model", cfg.GeminiModel).Msg("✓ Gemini client initialized")
	} else {
		log.Error().Msg("✗ GEMINI_API_KEY not set; generate and summarize will answer 500")
	}

	// ──── Step 3: Initialize Redis Response Cache (optional) ────
	var cache services.ResponseCache
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("✗ Redis connection failed")
		}
		defer rdb.Close()
		cache = services.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info().Dur("ttl", cfg.CacheTTL).Msg("✓ Redis response cache connected")
	}

	// ──── Step 4: Initialize PostgreSQL Usage Log (optional) ────
	var (
		usageRecorder services.UsageRecorder
		usageStore    handlers.UsageStore
		usagePool     *worker.Pool
	)
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("✗ PostgreSQL connection failed")
		}
		defer pool.Close()
		log.Info().Msg("✓ PostgreSQL connected")

		if err := database.RunMigrations(pool); err != nil {
			log.Fatal().Err(err).Msg("✗ Database migration failed")
		}
		log.Info().Msg("✓ Database migrations applied")

		usageRepo := repository.NewUsageRepo(pool)
		usagePool = worker.NewPool(usageRepo, 2, 256)
		usagePool.Start()
		usageRecorder = usagePool
		usageStore = usageRepo
	}

	// ──── Step 5: Start HTTP Server ────
	contentService := services.NewContentService(generator, cache, usageRecorder)
	contentHandler := handlers.NewContentHandler(contentService, usageStore)
	r := router.New(contentHandler, cfg.CORSOrigin, cfg.RateLimitPerMinute)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Msgf("✓ API ready on http://localhost:%s/api", cfg.Port)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		if usagePool != nil {
			usagePool.Stop()
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server error")
		os.Exit(1)
	}
}
