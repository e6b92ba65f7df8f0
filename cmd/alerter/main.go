package main

import (
	"context"
	"time"

	"bondwatch/config"
	"bondwatch/internal/bonds/alert"
	"bondwatch/internal/bonds/volume"
	"bondwatch/logger"
	"bondwatch/pkg/sheets"
	"bondwatch/pkg/slack"

	"go.uber.org/zap"
)

// The alerter runs one dispatch cycle and exits; cron decides how
// often it is invoked. Outside every alert window it logs a no-op.
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

	runner := &alert.Runner{
		Calculator: &volume.Calculator{
			// One fetch per invocation; column lookups hit memory.
			Store:        sheets.NewCached(store),
			HeaderPrefix: cfg.Alert.HeaderPrefix,
			Location:     loc,
			MaxGap:       time.Duration(cfg.Alert.GapMinutes) * time.Minute,
		},
		Sender:    slack.NewNotifier(cfg.Slack),
		Windows:   alert.DefaultWindows(),
		Logger:    log,
		Tolerance: time.Duration(cfg.Alert.ToleranceMinutes) * time.Minute,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	runner.Run(ctx, time.Now().In(loc))
}
