package main

import (
	"context"

	"bondwatch/config"
	"bondwatch/internal/bonds/scraper"
	"bondwatch/logger"
	"bondwatch/pkg/sheets"
	"bondwatch/pkg/storage/postgres"

	"go.uber.org/zap"
)

func main() {
	// viper config
	cfg := config.Load()
	cfg.ResolveSecrets()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	loc, err := cfg.Alert.Location()
	if err != nil {
		log.Fatal("invalid timezone", zap.String("timezone", cfg.Alert.Timezone), zap.Error(err))
	}

	store, closeStore, err := sheets.Open(cfg.Sheets)
	if err != nil {
		log.Fatal("failed to open snapshot store", zap.Error(err))
	}
	defer closeStore()

	// Snapshot archive in Postgres; the scraper still runs when the
	// database is unreachable.
	var archive *postgres.PostgresClient
	if cfg.Postgres.Host != "" {
		archive, err = postgres.InitializeAndMigrateSnapshotRecord(cfg.Postgres, cfg.Log.Environment, true)
		if err != nil {
			log.Warn("snapshot archive unavailable", zap.Error(err))
			archive = nil
		} else {
			defer archive.Close()
		}
	}

	job := &scraper.Job{
		Store:        store,
		Fetcher:      scraper.NewPageFetcher(cfg.Scrape),
		Archive:      archive,
		HeaderPrefix: cfg.Alert.HeaderPrefix,
		Location:     loc,
		Delay:        cfg.Scrape.Delay,
		Logger:       log,
	}

	ctx := context.Background()

	if cfg.Scrape.Interval > 0 {
		job.Loop(ctx, cfg.Scrape.Interval)
		return
	}

	if err := job.Run(ctx); err != nil {
		log.Fatal("scrape job failed", zap.Error(err))
	}
}
