package model

// MatchResult is a system template assignment for one line item.
// NeedsReview is set whenever the confidence falls below the review threshold.
type MatchResult struct {
	SystemID       string   `json:"system_id"`
	SystemLabel    string   `json:"system_label"`
	Confidence     float64  `json:"confidence"`
	NeedsReview    bool     `json:"needs_review"`
	MatchedFactors []string `json:"matched_factors"`
	MissedFactors  []string `json:"missed_factors"`
}

// Matched reports whether a template was assigned at all.
func (m *MatchResult) Matched() bool {
	return m.SystemID != ""
}

// SimilarityMatch is one catalog item found similar to a query description.
type SimilarityMatch struct {
	Description         string  `json:"description"`
	SimilarityScore     float64 `json:"similarity_score"`
	SuggestedSystemCode string  `json:"suggested_system_code,omitempty"`
	SuggestedTrade      string  `json:"suggested_trade,omitempty"`
	SuggestedUnit       string  `json:"suggested_unit,omitempty"`
	ReferenceItemID     string  `json:"reference_item_id,omitempty"`
}

// ReferenceItem is one row of the scope-keyed reference catalog.
type ReferenceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	SystemCode  string  `json:"system_code,omitempty"`
	Trade       string  `json:"trade,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	TypicalRate float64 `json:"typical_rate,omitempty"`
}
