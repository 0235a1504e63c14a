// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
)

// ErrInvalidInterpretation is returned by Interpretation.Validate.
var ErrInvalidInterpretation = errors.New("invalid interpretation")

// Status is the externally visible health status of an interpretation.
type Status string

// Status constants.
const (
	StatusHealthy  Status = "healthy"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
	StatusUnknown  Status = "unknown"
)

// IsValid reports whether s is one of the four known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusHealthy, StatusWarning, StatusCritical, StatusUnknown:
		return true
	}
	return false
}

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusHealthy, StatusWarning, StatusCritical, StatusUnknown}
}

// Severity is the engine-assigned urgency grade.
type Severity string

// Severity constants.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// IsValid reports whether s is one of the three known severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// ConfidenceBand is a coarse bucketing of a numeric confidence score.
type ConfidenceBand string

// Confidence band constants.
const (
	BandVeryHigh ConfidenceBand = "very_high"
	BandHigh     ConfidenceBand = "high"
	BandMedium   ConfidenceBand = "medium"
	BandLow      ConfidenceBand = "low"
)

// IsValid reports whether b is one of the four known bands.
func (b ConfidenceBand) IsValid() bool {
	switch b {
	case BandVeryHigh, BandHigh, BandMedium, BandLow:
		return true
	}
	return false
}

// RawSignal is a classifier output as supplied by the caller.
type RawSignal struct {
	Label      string  `json:"label" yaml:"label"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Interpretation is the structured reading of a RawSignal.
// Field names are consumed directly by rendering code.
type Interpretation struct {
	Status              Status         `json:"status" yaml:"status"`
	Severity            Severity       `json:"severity" yaml:"severity"`
	Message             string         `json:"message" yaml:"message"`
	Recommendations     []string       `json:"recommendations" yaml:"recommendations"`
	Actions             []string       `json:"actions" yaml:"actions"`
	ConfidenceBand      ConfidenceBand `json:"confidenceBand" yaml:"confidenceBand"`
	ConfidenceNarrative string         `json:"confidenceNarrative" yaml:"confidenceNarrative"`
}

// Validate checks the enum fields and the structural invariants of an interpretation.
func (i Interpretation) Validate() error {
	if !i.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInterpretation, i.Status)
	}
	if !i.Severity.IsValid() {
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidInterpretation, i.Severity)
	}
	if !i.ConfidenceBand.IsValid() {
		return fmt.Errorf("%w: unknown confidence band %q", ErrInvalidInterpretation, i.ConfidenceBand)
	}
	if i.Status == StatusHealthy && i.Severity != SeverityLow {
		return fmt.Errorf("%w: healthy status requires low severity, got %q", ErrInvalidInterpretation, i.Severity)
	}
	if i.Message == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInterpretation)
	}
	if len(i.Recommendations) == 0 {
		return fmt.Errorf("%w: recommendations are required", ErrInvalidInterpretation)
	}
	if len(i.Actions) == 0 {
		return fmt.Errorf("%w: actions are required", ErrInvalidInterpretation)
	}
	return nil
}
