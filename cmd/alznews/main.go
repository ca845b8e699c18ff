package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"alznews/internal/aggregator"
	"alznews/internal/cache"
	"alznews/internal/config"
	"alznews/internal/logger"
	"alznews/internal/retry"
	"alznews/internal/scheduler"
	"alznews/internal/scraper"
	"alznews/internal/server"
	"alznews/internal/sources"
	"alznews/internal/storage"
	"alznews/internal/summarize"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger.Init()
	log := logger.Logger

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	srcFile, err := sources.Load(cfg.SourcesConfigPath)
	if err != nil {
		log.Error("failed to load sources config", "path", cfg.SourcesConfigPath, "error", err)
		os.Exit(1)
	}

	retryCfg := retry.Config{
		MaxAttempts: cfg.RetryAttempts,
		Delay:       cfg.RetryDelay,
		Backoff:     true,
	}

	sourceCache := cache.New()
	srcs := []sources.Source{
		sources.NewRSSSource(srcFile.Feeds, srcFile.AlzKeywords, sourceCache, cfg.SourceCacheTTL, cfg.RSSTimeout, logger.With("rss")),
		sources.NewNewsAPISource(cfg.NewsAPIKey, sourceCache, cfg.SlowSourceTTL, cfg.SourceTimeout, retryCfg, logger.With("newsapi")),
		sources.NewClinicalTrialsSource(sourceCache, cfg.SlowSourceTTL, cfg.SourceTimeout, retryCfg, logger.With("clinicaltrials")),
		sources.NewNaverSource(cfg.NaverClientID, cfg.NaverClientSecret, srcFile.NaverQuery, sourceCache, cfg.SourceCacheTTL, cfg.SourceTimeout, retryCfg, logger.With("naver")),
	}

	kv := storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger.With("redis"))
	defer kv.Close()

	store := storage.NewArticleStore(kv, srcFile.Blocklist, logger.With("store"))
	snapshot := storage.NewSnapshot(cfg.SnapshotPath, cfg.SnapshotRetention, logger.With("snapshot"))

	var summarizer aggregator.Summarizer
	if cfg.GeminiAPIKey != "" {
		s, err := summarize.NewSummarizer(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.SummaryBatchSize, logger.With("summarize"))
		if err != nil {
			log.Warn("summarizer disabled", "error", err)
		} else {
			defer s.Close()
			summarizer = s
		}
	} else {
		log.Info("GEMINI_API_KEY not set, summaries disabled")
	}

	agg := aggregator.New(srcs, store, snapshot, srcFile.Blocklist, summarizer, sourceCache, logger.With("aggregator"))
	extractor := scraper.NewExtractor(cache.New(), cfg.ExtractCacheTTL, cfg.ExtractTimeout, logger.With("scraper"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(agg, cfg.RefreshHours, cfg.Timezone, logger.With("scheduler"))
	go sched.Run(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(agg, extractor, cfg.RevalidateSecret, logger.With("server")).Router(),
	}

	go func() {
		log.Info("http server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
