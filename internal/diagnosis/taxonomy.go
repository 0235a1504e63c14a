package diagnosis

import (
	"strings"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

// Keyword sets are lowercase substrings matched against the normalized label.
var (
	healthyKeywords = []string{
		"healthy", "good health", "thriving", "vigorous",
		"normal behavior", "normal behaviour",
	}

	// General disease indicators, consulted only when no known disease matched.
	diseaseKeywords = []string{
		"disease", "infection", "infected", "infestation", "sick", "illness",
		"virus", "viral", "bacteria", "parasite", "symptom", "lesion",
		"outbreak", "abnormal", "unhealthy", "not healthy",
	}

	criticalDiseaseKeywords = []string{
		"newcastle", "avian influenza", "bird flu", "h5n1", "fowl cholera",
		"severe", "critical", "mass mortality",
	}

	moderateDiseaseKeywords = []string{
		"gumboro", "infectious bursal", "coccidiosis", "marek", "bronchitis",
		"salmonell", "fowl typhoid", "fowl pox", "fowlpox", "colibacillosis",
		"e. coli", "chronic respiratory", "mycoplasma", "moderate",
	}

	mildConditionKeywords = []string{
		"mild", "minor", "slight", "early stage", "mites", "lice", "roundworm",
	}
)

// diseaseEntry binds a lookup keyword to its reference record.
type diseaseEntry struct {
	Keyword string
	Record  model.DiseaseRecord
}

var (
	newcastle = model.DiseaseRecord{CanonicalName: "Newcastle Disease", PathogenType: model.PathogenViral, Urgency: model.UrgencyCritical}
	avianFlu  = model.DiseaseRecord{CanonicalName: "Avian Influenza", PathogenType: model.PathogenViral, Urgency: model.UrgencyCritical}
	cholera   = model.DiseaseRecord{CanonicalName: "Fowl Cholera", PathogenType: model.PathogenBacterial, Urgency: model.UrgencyCritical}
	gumboro   = model.DiseaseRecord{CanonicalName: "Infectious Bursal Disease", PathogenType: model.PathogenViral, Urgency: model.UrgencyHigh}
	marek     = model.DiseaseRecord{CanonicalName: "Marek's Disease", PathogenType: model.PathogenViral, Urgency: model.UrgencyHigh}
	ib        = model.DiseaseRecord{CanonicalName: "Infectious Bronchitis", PathogenType: model.PathogenViral, Urgency: model.UrgencyHigh}
	cocci     = model.DiseaseRecord{CanonicalName: "Coccidiosis", PathogenType: model.PathogenParasitic, Urgency: model.UrgencyHigh}
	salmonell = model.DiseaseRecord{CanonicalName: "Salmonellosis", PathogenType: model.PathogenBacterial, Urgency: model.UrgencyHigh}
	typhoid   = model.DiseaseRecord{CanonicalName: "Fowl Typhoid", PathogenType: model.PathogenBacterial, Urgency: model.UrgencyHigh}
	fowlPox   = model.DiseaseRecord{CanonicalName: "Fowl Pox", PathogenType: model.PathogenViral, Urgency: model.UrgencyModerate}
	colibac   = model.DiseaseRecord{CanonicalName: "Colibacillosis", PathogenType: model.PathogenBacterial, Urgency: model.UrgencyModerate}
	crd       = model.DiseaseRecord{CanonicalName: "Chronic Respiratory Disease", PathogenType: model.PathogenBacterial, Urgency: model.UrgencyModerate}
	mites     = model.DiseaseRecord{CanonicalName: "Mite Infestation", PathogenType: model.PathogenParasitic, Urgency: model.UrgencyLow}
	roundworm = model.DiseaseRecord{CanonicalName: "Roundworm Infestation", PathogenType: model.PathogenParasitic, Urgency: model.UrgencyLow}
)

// diseaseTable is searched in order; the first keyword contained in the label wins.
// Critical diseases come first so a label naming several diseases resolves to the worst.
var diseaseTable = []diseaseEntry{
	{Keyword: "newcastle", Record: newcastle},
	{Keyword: "avian influenza", Record: avianFlu},
	{Keyword: "bird flu", Record: avianFlu},
	{Keyword: "h5n1", Record: avianFlu},
	{Keyword: "fowl cholera", Record: cholera},
	{Keyword: "gumboro", Record: gumboro},
	{Keyword: "infectious bursal", Record: gumboro},
	{Keyword: "marek", Record: marek},
	{Keyword: "infectious bronchitis", Record: ib},
	{Keyword: "coccidiosis", Record: cocci},
	{Keyword: "salmonell", Record: salmonell},
	{Keyword: "fowl typhoid", Record: typhoid},
	{Keyword: "fowl pox", Record: fowlPox},
	{Keyword: "fowlpox", Record: fowlPox},
	{Keyword: "colibacillosis", Record: colibac},
	{Keyword: "e. coli", Record: colibac},
	{Keyword: "chronic respiratory", Record: crd},
	{Keyword: "mycoplasma", Record: crd},
	{Keyword: "mites", Record: mites},
	{Keyword: "roundworm", Record: roundworm},
}

// DiseaseReference is an exported view of one lookup table row.
type DiseaseReference struct {
	Keyword             string `json:"keyword" yaml:"keyword"`
	model.DiseaseRecord `yaml:",inline"`
}

// Diseases returns a copy of the disease lookup table in match order.
func Diseases() []DiseaseReference {
	refs := make([]DiseaseReference, 0, len(diseaseTable))
	for _, e := range diseaseTable {
		refs = append(refs, DiseaseReference{Keyword: e.Keyword, DiseaseRecord: e.Record})
	}
	return refs
}

// normalizeLabel trims and lowercases a label before matching.
func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// containsAny reports whether text contains any of the keywords as a substring.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// lookupDisease returns the first table entry whose keyword appears in text.
func lookupDisease(text string) (model.DiseaseRecord, bool) {
	for _, e := range diseaseTable {
		if strings.Contains(text, e.Keyword) {
			return e.Record, true
		}
	}
	return model.DiseaseRecord{}, false
}
