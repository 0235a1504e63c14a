package model

// PathogenType identifies the class of organism behind a disease.
type PathogenType string

// Pathogen type constants.
const (
	PathogenViral     PathogenType = "viral"
	PathogenBacterial PathogenType = "bacterial"
	PathogenParasitic PathogenType = "parasitic"
)

// Urgency is the baseline urgency of a known disease.
type Urgency string

// Urgency constants.
const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyModerate Urgency = "moderate"
	UrgencyLow      Urgency = "low"
)

// DiseaseRecord is a static reference entry for a known poultry disease.
type DiseaseRecord struct {
	CanonicalName string       `json:"canonicalName" yaml:"canonicalName"`
	PathogenType  PathogenType `json:"pathogenType" yaml:"pathogenType"`
	Urgency       Urgency      `json:"urgency" yaml:"urgency"`
}
