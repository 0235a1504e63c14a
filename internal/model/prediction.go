package model

import "time"

// Prediction source constants.
const (
	SourceInteractive = "interactive"
	SourceBatch       = "batch"
)

// Prediction is a stored interpretation together with the signal that produced it.
type Prediction struct {
	CreatedAt      time.Time      `json:"createdAt" yaml:"createdAt"`
	ID             string         `json:"id" yaml:"id"`
	Source         string         `json:"source" yaml:"source"`
	Signal         RawSignal      `json:"signal" yaml:"signal"`
	Interpretation Interpretation `json:"interpretation" yaml:"interpretation"`
}

// PredictionFilter narrows a history query.
type PredictionFilter struct {
	Status *Status
	Limit  int
}
