package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"tube-digest/cmd/api/router"
	"tube-digest/cmd/api/services"
	"tube-digest/config"
	"tube-digest/internal/logger"
	"tube-digest/summarizer"
	"tube-digest/youtube"
)

// @title           tube-digest API
// @version         1.0
// @description     Summarize YouTube videos from their caption transcripts
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.InitFromLevel(cfg.Logging.Level)

	provider, err := summarizer.NewGeminiProvider(context.Background(), cfg.Summarizer)
	if err != nil {
		log.Fatal("failed to initialize summarization provider: ", err)
	}

	chunker := summarizer.NewChunker(summarizer.EstimatingTokenizer{}, cfg.Summarizer.MaxInputTokens)
	logger.Log.Infof("summarizer ready: model=%s chunk_budget=%d", cfg.Summarizer.ModelName, chunker.Budget())
	quota := summarizer.NewSummaryQuotaLimiter(cfg.Summarizer.Quota)
	summarySvc := services.NewSummaryService(
		youtube.NewClient(cfg.YouTube.Languages),
		summarizer.NewService(provider, chunker, quota, cfg.Summarizer.FinalPass),
		services.NewResultStore(time.Duration(cfg.Server.ResultTTLMinutes)*time.Minute),
	)

	r := router.New(summarySvc)

	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}
	logger.Log.Infof("listening on %s", addr)

	handler := cors.Default().Handler(r)
	if err := http.ListenAndServe(addr, handler); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
