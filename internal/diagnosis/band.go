package diagnosis

import "github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"

// bandThreshold maps an inclusive lower bound to a band.
type bandThreshold struct {
	Band model.ConfidenceBand
	Min  float64
}

// bandThresholds are checked from the highest bound down.
var bandThresholds = []bandThreshold{
	{Band: model.BandVeryHigh, Min: 0.95},
	{Band: model.BandHigh, Min: 0.85},
	{Band: model.BandMedium, Min: 0.70},
}

// BandFor buckets a confidence score. Values are not clamped: anything at or
// above 0.95 (including values above 1) is very_high and anything below 0.70
// (including negatives and NaN) is low.
func BandFor(confidence float64) model.ConfidenceBand {
	for _, t := range bandThresholds {
		if confidence >= t.Min {
			return t.Band
		}
	}
	return model.BandLow
}
