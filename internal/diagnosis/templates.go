package diagnosis

import (
	"fmt"
	"math"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

// Healthy guidance does not depend on confidence.
var (
	healthyRecommendations = []string{
		"Maintain a balanced, high-quality feed ration",
		"Provide clean, fresh water at all times",
		"Keep housing clean, dry and well ventilated",
		"Follow the recommended vaccination schedule",
		"Observe the flock daily for changes in behaviour or appetite",
		"Keep biosecurity measures in place for visitors and equipment",
	}
	healthyActions = []string{
		"Continue routine health monitoring",
		"Record this result in the flock health log",
		"Schedule the next routine check",
		"Maintain the current feeding and watering program",
	}
)

// healthyMessages are keyed by strict lower bound, highest first.
var healthyMessages = []struct {
	Text  string
	Above float64
}{
	{Above: 0.9, Text: "Excellent! Your birds look healthy and show no signs of illness. Keep up the great work!"},
	{Above: 0.8, Text: "Good news: your birds appear healthy. Continue your current care routine."},
	{Above: 0.7, Text: "Your birds seem healthy, though some details were unclear. Keep observing them closely."},
}

const healthyFallbackMessage = "Your birds may be healthy, but the result is uncertain. Consider retaking the image or confirming with a veterinarian."

// Disease guidance: a severity-specific list always followed by the base list.
var (
	severityRecommendations = map[model.Severity][]string{
		model.SeverityHigh: {
			"Contact a veterinarian immediately",
			"Separate affected birds from the rest of the flock right away",
			"Restrict movement of birds, people and equipment on the farm",
			"Report the case to the local veterinary authority if required",
		},
		model.SeverityMedium: {
			"Consult a veterinarian within 24 hours",
			"Start the treatment protocol advised for this condition",
			"Check symptoms in affected birds twice daily",
		},
		model.SeverityLow: {
			"Watch affected birds closely over the next few days",
			"Improve sanitation in the affected housing",
			"Consult a veterinarian if symptoms persist or worsen",
		},
	}
	biosecurityRecommendations = []string{
		"Isolate affected birds",
		"Disinfect feeders, drinkers and equipment",
		"Increase cleaning frequency in the poultry house",
		"Monitor the rest of the flock for new symptoms",
	}

	severityActions = map[model.Severity][]string{
		model.SeverityHigh: {
			"Call a veterinarian now",
			"Quarantine the affected house",
		},
		model.SeverityMedium: {
			"Schedule a veterinary consultation",
		},
		model.SeverityLow: {
			"Keep the affected birds under observation",
		},
	}
	baseDiseaseActions = []string{
		"Isolate sick birds",
		"Disinfect equipment",
		"Document symptoms and mortality",
	}
)

// diseaseTemplates hold the specific and generic phrasings per severity.
// Specific templates take name, pathogen type and percent; generic ones take percent.
var diseaseTemplates = map[model.Severity]struct {
	Specific string
	Generic  string
}{
	model.SeverityHigh: {
		Specific: "Critical: %s (%s infection) detected with %d%% confidence. Immediate veterinary attention is required.",
		Generic:  "Critical: disease indicators detected with %d%% confidence. Immediate veterinary attention is required.",
	},
	model.SeverityMedium: {
		Specific: "Warning: signs of %s (%s infection) detected with %d%% confidence. Prompt treatment is recommended.",
		Generic:  "Warning: disease indicators detected with %d%% confidence. Prompt attention is recommended.",
	},
	model.SeverityLow: {
		Specific: "Possible %s (%s infection) detected with %d%% confidence. Monitor the affected birds closely.",
		Generic:  "Minor disease indicators detected with %d%% confidence. Monitor the flock closely.",
	},
}

const indeterminateMessage = "Unable to determine the health status from this result. A professional assessment is recommended."

var (
	indeterminateRecommendations = []string{
		"Retake the image in good lighting",
		"Capture the affected bird clearly from several angles",
		"Consult a veterinarian for a professional assessment",
		"Continue monitoring the flock for any symptoms",
	}
	indeterminateActions = []string{
		"Upload a clearer image",
		"Note any visible symptoms",
		"Contact a veterinarian",
		"Monitor the flock",
	}
)

// Narrative families, chosen by outcome rather than severity.
var (
	healthyNarratives = map[model.ConfidenceBand]string{
		model.BandVeryHigh: "Very high confidence: the assessment strongly indicates a healthy flock.",
		model.BandHigh:     "High confidence: the assessment indicates a healthy flock.",
		model.BandMedium:   "Moderate confidence: the flock is likely healthy, but keep observing.",
		model.BandLow:      "Low confidence: the healthy result should be confirmed by further observation.",
	}
	diseaseNarratives = map[model.ConfidenceBand]string{
		model.BandVeryHigh: "Very high confidence: the detected condition is very likely present.",
		model.BandHigh:     "High confidence: the detected condition is likely present.",
		model.BandMedium:   "Moderate confidence: the condition may be present; confirm with a veterinarian.",
		model.BandLow:      "Low confidence: the result is uncertain; a professional diagnosis is strongly advised.",
	}
)

// percent renders a confidence score as a rounded whole percentage.
func percent(confidence float64) int {
	return int(math.Round(confidence * 100))
}

func healthyMessage(confidence float64) string {
	for _, m := range healthyMessages {
		if confidence > m.Above {
			return m.Text
		}
	}
	return healthyFallbackMessage
}

func diseaseMessage(record *model.DiseaseRecord, severity model.Severity, confidence float64) string {
	tmpl := diseaseTemplates[severity]
	if record != nil {
		return fmt.Sprintf(tmpl.Specific, record.CanonicalName, record.PathogenType, percent(confidence))
	}
	return fmt.Sprintf(tmpl.Generic, percent(confidence))
}

func narrative(kind OutcomeKind, band model.ConfidenceBand) string {
	if kind == OutcomeHealthy {
		return healthyNarratives[band]
	}
	return diseaseNarratives[band]
}

// concat returns a new slice holding lists in order.
func concat(lists ...[]string) []string {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]string, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// synthesize renders the interpretation for an outcome with its severity.
func synthesize(o Outcome, severity model.Severity, confidence float64) model.Interpretation {
	band := BandFor(confidence)
	interp := model.Interpretation{
		Severity:            severity,
		ConfidenceBand:      band,
		ConfidenceNarrative: narrative(o.Kind, band),
	}

	switch o.Kind {
	case OutcomeHealthy:
		interp.Status = model.StatusHealthy
		interp.Severity = model.SeverityLow
		interp.Message = healthyMessage(confidence)
		interp.Recommendations = concat(healthyRecommendations)
		interp.Actions = concat(healthyActions)
	case OutcomeDisease:
		interp.Status = model.StatusWarning
		if severity == model.SeverityHigh {
			interp.Status = model.StatusCritical
		}
		interp.Message = diseaseMessage(o.Disease, severity, confidence)
		interp.Recommendations = concat(severityRecommendations[severity], biosecurityRecommendations)
		interp.Actions = concat(severityActions[severity], baseDiseaseActions)
	default:
		interp.Status = model.StatusUnknown
		interp.Severity = model.SeverityMedium
		interp.Message = indeterminateMessage
		interp.Recommendations = concat(indeterminateRecommendations)
		interp.Actions = concat(indeterminateActions)
	}

	return interp
}
