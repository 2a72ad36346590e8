package models

// CanonicalEntity is the authoritative, ID-backed record a free-text name resolves to.
// Entities are immutable once fetched and owned by the entity index.
type CanonicalEntity struct {
	ID           string   `json:"id"` // numeric string
	Name         string   `json:"name"`
	ShortName    string   `json:"short_name,omitempty"`
	AliasesKnown []string `json:"aliases_known,omitempty"`
}

// MatchType records which resolution tier produced a ResolutionResult
type MatchType string

const (
	MatchExact     MatchType = "exact"
	MatchShortened MatchType = "shortened"
	MatchPartial   MatchType = "partial"
	MatchAlias     MatchType = "alias"
)

// ResolutionResult is produced per resolve call and never persisted
type ResolutionResult struct {
	Entity       CanonicalEntity `json:"entity"`
	Confidence   float64         `json:"confidence"` // [0,1], 2 decimals
	MatchType    MatchType       `json:"match_type"`
	MatchedInput string          `json:"matched_input"`
}
