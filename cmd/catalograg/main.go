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

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalograg/internal/config"
	dbRedis "github.com/kailas-cloud/catalograg/internal/db/redis"
	"github.com/kailas-cloud/catalograg/internal/domain"
	logpkg "github.com/kailas-cloud/catalograg/internal/logger"
	"github.com/kailas-cloud/catalograg/internal/metrics"
	"github.com/kailas-cloud/catalograg/internal/repository/catalog"
	"github.com/kailas-cloud/catalograg/internal/repository/embcache"
	chiTransport "github.com/kailas-cloud/catalograg/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/catalograg/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/catalograg/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/catalograg/internal/usecase/health"
	queryuc "github.com/kailas-cloud/catalograg/internal/usecase/query"
	"github.com/kailas-cloud/catalograg/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting catalograg API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("collection", cfg.Catalog.Collection),
	)

	// Redis 8 and Valkey speak the same protocol; one rueidis store serves both drivers.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterGenerationMetrics()
	metrics.RegisterPipelineMetrics()

	baseEmbedder := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	embedder := buildEmbedder(cfg, baseEmbedder, store, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Bool("cache", cfg.Embedding.Cache.Enabled),
	)

	generator := openaiTransport.NewGenerator(&openaiTransport.Config{
		APIKey:      cfg.Generation.APIKey,
		BaseURL:     cfg.Generation.BaseURL,
		Model:       cfg.Generation.Model,
		Provider:    cfg.Generation.Provider,
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
		Logger:      logger,
	})

	catalogRepo := catalog.New(store, cfg.Database.KeyPrefix)
	synth := queryuc.NewSynthesizer(generator, cfg.Generation.MaxContextChars, cfg.Generation.Timeout(), logger)

	var opts []queryuc.Option
	if cfg.Query.TagFallback {
		opts = append(opts, queryuc.WithFallback(queryuc.TagIntersectionFallback{}))
	}
	querySvc := queryuc.New(
		catalogRepo,
		queryuc.NewVectorIndexBuilder(embedder),
		synth,
		queryuc.Config{
			Collection:  cfg.Catalog.Collection,
			LoadTimeout: cfg.Database.OpTimeout(),
		},
		logger,
		opts...,
	)

	healthSvc := healthuc.New(store,
		healthuc.WithProvider("embedding", baseEmbedder),
		healthuc.WithProvider("generation", generator),
	)

	server := chiTransport.NewServer(querySvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the decorator chain: OpenAI -> Instrumented -> Cached.
// Cache hits skip the provider and record no tokens.
func buildEmbedder(
	cfg config.Config,
	base domain.Embedder,
	store *dbRedis.Store,
	logger *zap.Logger,
) domain.Embedder {
	var embedder domain.Embedder = embeddinguc.NewInstrumentedEmbedder(
		base, cfg.Embedding.Provider, cfg.Embedding.Model, logger,
		embeddinguc.WithBatchSize(cfg.Embedding.BatchSize),
		embeddinguc.WithTimeout(cfg.Embedding.Timeout()),
	)

	if cfg.Embedding.Cache.Enabled {
		embedder = embcache.New(embedder, store, embcache.Config{
			KeyPrefix:  cfg.Database.KeyPrefix,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			TTL:        time.Duration(cfg.Embedding.Cache.TTLSec) * time.Second,
		}, metrics.EmbeddingCacheTotal, logger)
	}

	return embedder
}
