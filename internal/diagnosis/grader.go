package diagnosis

import "github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"

// escalationThreshold is the strict bound above which a moderate finding becomes high.
const escalationThreshold = 0.9

// severityRule is one step of the grading ladder.
type severityRule struct {
	Applies func(o Outcome, label string) bool
	Grade   func(confidence float64) model.Severity
	Name    string
}

// severityRules are evaluated in order and the first applicable rule decides.
// The taxonomy class dominates; confidence only escalates moderate findings
// and graduates generic ones.
var severityRules = []severityRule{
	{
		Name: "critical-class",
		Applies: func(o Outcome, label string) bool {
			return hasUrgency(o, model.UrgencyCritical) || containsAny(label, criticalDiseaseKeywords)
		},
		Grade: fixedSeverity(model.SeverityHigh),
	},
	{
		Name: "moderate-class",
		Applies: func(o Outcome, label string) bool {
			return hasUrgency(o, model.UrgencyHigh) || containsAny(label, moderateDiseaseKeywords)
		},
		Grade: func(confidence float64) model.Severity {
			if confidence > escalationThreshold {
				return model.SeverityHigh
			}
			return model.SeverityMedium
		},
	},
	{
		Name: "mild-class",
		Applies: func(_ Outcome, label string) bool {
			return containsAny(label, mildConditionKeywords)
		},
		Grade: fixedSeverity(model.SeverityLow),
	},
	{
		Name:    "generic",
		Applies: func(Outcome, string) bool { return true },
		Grade:   genericSeverity,
	},
}

// genericGraduation grades a disease finding that matched no specific class.
// Bounds are strict lower limits checked from the top.
var genericGraduation = []struct {
	Severity model.Severity
	Above    float64
}{
	{Severity: model.SeverityMedium, Above: 0.9},
	{Severity: model.SeverityMedium, Above: 0.8},
	{Severity: model.SeverityLow, Above: 0.7},
}

func genericSeverity(confidence float64) model.Severity {
	for _, step := range genericGraduation {
		if confidence > step.Above {
			return step.Severity
		}
	}
	return model.SeverityLow
}

func fixedSeverity(s model.Severity) func(float64) model.Severity {
	return func(float64) model.Severity { return s }
}

func hasUrgency(o Outcome, u model.Urgency) bool {
	return o.Disease != nil && o.Disease.Urgency == u
}

// grade assigns a severity to a disease outcome. It must only be called for
// OutcomeDisease; healthy and indeterminate outcomes carry fixed severities.
func grade(o Outcome, label string, confidence float64) (model.Severity, string) {
	for _, rule := range severityRules {
		if rule.Applies(o, label) {
			return rule.Grade(confidence), rule.Name
		}
	}
	// The generic rule always applies.
	return model.SeverityLow, ""
}

// SeverityRuleNames lists the grading rules in evaluation order.
func SeverityRuleNames() []string {
	names := make([]string, len(severityRules))
	for i, r := range severityRules {
		names[i] = r.Name
	}
	return names
}
