package diagnosis

import "github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"

// OutcomeKind is the classification variant of a label.
type OutcomeKind int

// Outcome kinds.
const (
	OutcomeIndeterminate OutcomeKind = iota
	OutcomeHealthy
	OutcomeDisease
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeHealthy:
		return "healthy"
	case OutcomeDisease:
		return "disease"
	default:
		return "indeterminate"
	}
}

// Outcome is the result of classifying a label. Disease is set only when
// Kind is OutcomeDisease and a known disease name matched.
type Outcome struct {
	Disease *model.DiseaseRecord
	Kind    OutcomeKind
}

// classify decides whether a normalized label reads as healthy, diseased or
// neither. A disease mention always beats a co-occurring healthy keyword.
func classify(label string) Outcome {
	healthy := containsAny(label, healthyKeywords)

	if record, ok := lookupDisease(label); ok {
		return Outcome{Kind: OutcomeDisease, Disease: &record}
	}
	if containsAny(label, diseaseKeywords) {
		return Outcome{Kind: OutcomeDisease}
	}

	if healthy {
		return Outcome{Kind: OutcomeHealthy}
	}
	return Outcome{Kind: OutcomeIndeterminate}
}
