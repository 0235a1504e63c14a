package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/spf13/viper"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/config"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/service"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/storage"
)

func loadSettings(v *viper.Viper) (*config.Settings, error) {
	settings, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// openHistory opens the prediction history database and applies migrations.
func openHistory(ctx context.Context, settings *config.Settings) (service.PredictionStore, error) {
	store, err := storage.Open(ctx, settings.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	slog.Debug("Opened history database", "path", store.Path())
	return store, nil
}

func closeHistory(store service.PredictionStore) {
	if err := store.Close(); err != nil {
		slog.Error("Failed to close history database", "error", err)
	}
}

// warnOutOfRange logs confidences outside [0, 1]. They are interpreted unchanged.
func warnOutOfRange(label string, confidence float64) {
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		slog.Warn("Confidence outside [0, 1], interpreting as given",
			"label", label,
			"confidence", confidence)
	}
}

func storable(confidence float64) bool {
	return !math.IsNaN(confidence) && !math.IsInf(confidence, 0)
}
