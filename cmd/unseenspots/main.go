package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"golang.org/x/time/rate"

	"github.com/Pruthvi695/Unseen-Spots/internal/cache"
	"github.com/Pruthvi695/Unseen-Spots/internal/config"
	"github.com/Pruthvi695/Unseen-Spots/internal/engine"
	"github.com/Pruthvi695/Unseen-Spots/internal/llm"
	"github.com/Pruthvi695/Unseen-Spots/internal/logger"
	"github.com/Pruthvi695/Unseen-Spots/internal/maps"
	"github.com/Pruthvi695/Unseen-Spots/internal/render"
)

func main() {
	var (
		cfgPath    = flag.String("config", "configs/config.yaml", "path to config file")
		city       = flag.String("city", "", `target city, e.g. "Lisbon, Portugal"`)
		vibe       = flag.String("vibe", "", `desired vibe, e.g. "cozy cafe with vintage books"`)
		minRating  = flag.Float64("min-rating", 4.5, "minimum star rating (4.0-5.0)")
		maxReviews = flag.Int("max-reviews", 500, "review-count ceiling (50-1000)")
		radius     = flag.Int("radius", 3000, "search radius in meters")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	logger.Log.Info("starting unseen spots discovery...")

	ctx := context.Background()

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		logger.Log.Fatalf("LLM initialization failed: %v", err)
	}

	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	limiter := rate.NewLimiter(limit, cfg.Concurrency.QPS)
	logger.Log.Infof("rate limiter configured: limit=%.2f req/s, burst=%d", limit, cfg.Concurrency.QPS)

	eng := engine.New(
		maps.NewClient(cfg.Maps.APIKey),
		llm.New(chatModel, limiter),
		cache.NewMemory(),
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
	)

	res, err := eng.Run(ctx, engine.Params{
		City:         *city,
		Vibe:         *vibe,
		MinRating:    *minRating,
		MaxReviews:   *maxReviews,
		RadiusMeters: *radius,
	})
	if err != nil {
		logger.Log.Fatalf("cannot start pipeline: %v", err)
	}
	if res.Message != "" {
		logger.Log.Warn(res.Message)
	}

	report := render.ReportData{
		RunID:     res.RunID,
		City:      *city,
		Vibe:      *vibe,
		Message:   res.Message,
		Itinerary: res.Itinerary,
		Top:       res.Top,
	}
	if err := render.WriteReport(cfg.Output.HTMLPath, report); err != nil {
		logger.Log.Fatalf("cannot write report: %v", err)
	}
	logger.Log.Infof("✅ report written: %s", cfg.Output.HTMLPath)
}
