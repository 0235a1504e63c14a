// Package diagnosis interprets raw disease classifier output into actionable guidance.
//
// The engine is a pure function of (label, confidence). All reference data is
// package-level and read-only, so calls are safe from any number of goroutines.
package diagnosis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

// Interpret classifies a label, grades the finding and renders the result.
//
// Confidence is not validated or clamped; out-of-range values flow through the
// numeric thresholds unchanged (a value above 1 reads as very high confidence).
func Interpret(label string, confidence float64) model.Interpretation {
	normalized := normalizeLabel(label)
	outcome := classify(normalized)

	var severity model.Severity
	switch outcome.Kind {
	case OutcomeDisease:
		severity, _ = grade(outcome, normalized, confidence)
	case OutcomeHealthy:
		severity = model.SeverityLow
	default:
		severity = model.SeverityMedium
	}

	return synthesize(outcome, severity, confidence)
}

// Explanation describes how a label was read, for diagnostics output.
type Explanation struct {
	Disease  *model.DiseaseRecord `json:"disease,omitempty" yaml:"disease,omitempty"`
	Outcome  string               `json:"outcome" yaml:"outcome"`
	Rule     string               `json:"rule,omitempty" yaml:"rule,omitempty"`
	Severity model.Severity       `json:"severity" yaml:"severity"`
	Band     model.ConfidenceBand `json:"band" yaml:"band"`
}

// Explain reports the intermediate decisions Interpret makes for a signal.
func Explain(label string, confidence float64) Explanation {
	normalized := normalizeLabel(label)
	outcome := classify(normalized)

	exp := Explanation{
		Outcome: outcome.Kind.String(),
		Disease: outcome.Disease,
		Band:    BandFor(confidence),
	}
	switch outcome.Kind {
	case OutcomeDisease:
		exp.Severity, exp.Rule = grade(outcome, normalized, confidence)
	case OutcomeHealthy:
		exp.Severity = model.SeverityLow
	default:
		exp.Severity = model.SeverityMedium
	}
	return exp
}

// InterpretBatch interprets signals with up to workers concurrent goroutines.
// Results are returned in input order.
func InterpretBatch(ctx context.Context, signals []model.RawSignal, workers int) ([]model.Interpretation, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]model.Interpretation, len(signals))
	if len(signals) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(signals)))

	for i, sig := range signals {
		if gctx.Err() != nil {
			break
		}
		i, sig := i, sig
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = Interpret(sig.Label, sig.Confidence)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
