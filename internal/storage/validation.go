package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrEmptySlice        = errors.New("slice cannot be empty")
	ErrInvalidPrediction = errors.New("invalid prediction")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validatePrediction checks a prediction can be stored and read back.
// Confidence must be finite because SQLite cannot round-trip NaN.
func validatePrediction(p *model.Prediction) error {
	if p == nil {
		return fmt.Errorf("%w: prediction", ErrNilParameter)
	}
	if math.IsNaN(p.Signal.Confidence) || math.IsInf(p.Signal.Confidence, 0) {
		return fmt.Errorf("%w: confidence must be finite", ErrInvalidPrediction)
	}
	if p.Source != model.SourceInteractive && p.Source != model.SourceBatch && p.Source != "" {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidPrediction, p.Source)
	}
	if err := p.Interpretation.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPrediction, err)
	}
	return nil
}

func validatePredictions(ps []*model.Prediction) error {
	if ps == nil {
		return fmt.Errorf("%w: predictions", ErrNilParameter)
	}
	if len(ps) == 0 {
		return fmt.Errorf("%w: predictions", ErrEmptySlice)
	}
	for i, p := range ps {
		if err := validatePrediction(p); err != nil {
			return fmt.Errorf("prediction at index %d: %w", i, err)
		}
	}
	return nil
}
