package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gokatarajesh/trivia-catalog/internal/app"
	"github.com/gokatarajesh/trivia-catalog/internal/catalog"
	"github.com/gokatarajesh/trivia-catalog/internal/config"
	"github.com/gokatarajesh/trivia-catalog/internal/importer"
	"github.com/gokatarajesh/trivia-catalog/internal/logging"
)

func main() {
	var (
		amount     = flag.Int("amount", 20, "Number of questions to fetch (OpenTDB allows up to 50)")
		difficulty = flag.String("difficulty", "", "easy, medium or hard (default: any)")
		fallback   = flag.Int64("fallback-category", 0, "Category id for questions that match no catalog category (0 skips them)")
		baseURL    = flag.String("opentdb-url", "", "Override the OpenTDB base URL")
	)
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLogger := logging.New("trivia-importer", "development", "info")
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.Name+"-importer", cfg.Env, cfg.LogLevel)

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open catalog store")
	}

	svc := catalog.NewService(store, catalog.ServiceOptions{PageSize: cfg.Catalog.PageSize}, logger)
	im := importer.New(importer.NewOpenTDBClient(*baseURL, nil), svc, logger)

	report, err := im.Run(ctx, importer.Options{
		Amount:           *amount,
		Difficulty:       *difficulty,
		FallbackCategory: *fallback,
	})
	_ = store.Close()
	if err != nil {
		logger.Error().Err(err).Int("imported", report.Imported).Msg("import failed")
		os.Exit(1)
	}
}
