// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

// PredictionStore defines the contract for the prediction history.
type PredictionStore interface {
	SavePrediction(ctx context.Context, p *model.Prediction) error
	SavePredictions(ctx context.Context, ps []*model.Prediction) error
	GetPrediction(ctx context.Context, id string) (*model.Prediction, error)
	ListPredictions(ctx context.Context, filter model.PredictionFilter) ([]model.Prediction, error)
	CountByStatus(ctx context.Context) (map[model.Status]int, error)
	DeletePredictions(ctx context.Context, before time.Time) (int64, error)

	Migrate(ctx context.Context) error
	Close() error
}
