package model

import "time"

// ConfidenceLanguage classifies how hedged a claim's phrasing is.
type ConfidenceLanguage string

const (
	ConfidenceHedged     ConfidenceLanguage = "hedged"
	ConfidenceDefinitive ConfidenceLanguage = "definitive"
	ConfidenceUnknown    ConfidenceLanguage = "unknown"
)

// ClaimStatus is the human-or-automation verdict recorded on a claim.
type ClaimStatus string

const (
	StatusSupported    ClaimStatus = "supported"
	StatusContradicted ClaimStatus = "contradicted"
	StatusPartial      ClaimStatus = "partial"
	StatusUnknown      ClaimStatus = "unknown"
)

// AutoStatus is the guarded subset of ClaimStatus automation is allowed to assign.
// contradicted is never produced automatically.
type AutoStatus string

const (
	AutoStatusSupported AutoStatus = "supported"
	AutoStatusPartial   AutoStatus = "partial"
	AutoStatusUnknown   AutoStatus = "unknown"
)

// Category is the fixed ten-way topical classification.
type Category string

const (
	CategoryFinance  Category = "finance"
	CategoryTech     Category = "tech"
	CategoryPolitics Category = "politics"
	CategoryHealth   Category = "health"
	CategoryScience  Category = "science"
	CategoryMilitary Category = "military"
	CategoryEducation Category = "education"
	CategoryEnergy   Category = "energy"
	CategoryLabor    Category = "labor"
	CategoryGeneral  Category = "general"
)

// CategoryOrder is the enumeration order used to break scoring ties in the
// category classifier (spec.md §4.2.1: "ties broken by the category
// enumeration order").
var CategoryOrder = []Category{
	CategoryFinance,
	CategoryTech,
	CategoryPolitics,
	CategoryHealth,
	CategoryScience,
	CategoryMilitary,
	CategoryEducation,
	CategoryEnergy,
	CategoryLabor,
	CategoryGeneral,
}

// extractionVersion tags which extractor rule revision produced a claim.
// Purely informational (SPEC_FULL.md §5); bumped whenever the extraction
// rules in internal/claim materially change.
const extractionVersion = 1

// CurrentExtractionVersion returns the extractor rule revision this binary
// stamps onto newly extracted claims.
func CurrentExtractionVersion() int { return extractionVersion }

// Claim is a self-contained factual sentence extracted from a source, with
// a time range within that source.
type Claim struct {
	ID                string             `json:"id"`
	SourceID          string             `json:"source_id"`
	Text              string             `json:"text"`
	TsStart           float64            `json:"ts_start"`
	TsEnd             float64            `json:"ts_end"`
	Speaker           string             `json:"speaker,omitempty"`
	ConfidenceLang    ConfidenceLanguage `json:"confidence_language"`
	Category          Category           `json:"category"`
	ClaimHash         string             `json:"claim_hash"`
	ClaimHashGlobal   string             `json:"claim_hash_global"`
	Signals           string             `json:"signals"`
	Status            ClaimStatus        `json:"status"`
	StatusAuto        AutoStatus         `json:"status_auto"`
	AutoConfidence    float64            `json:"auto_confidence"`
	StatusHuman       *ClaimStatus       `json:"status_human,omitempty"`
	ExtractionVersion int                `json:"extraction_version"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// FinalStatus implements the derived view from spec.md §3:
// status_human if set, else status_auto if it isn't unknown, else status.
func (c Claim) FinalStatus() ClaimStatus {
	if c.StatusHuman != nil {
		return *c.StatusHuman
	}
	if c.StatusAuto != AutoStatusUnknown {
		return ClaimStatus(c.StatusAuto)
	}
	return c.Status
}
