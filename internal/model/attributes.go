package model

// ExtractedAttributes holds the facets mined from a free-text item description.
// Confidence is the matched-category count divided by the five categories.
type ExtractedAttributes struct {
	Size       string  `json:"size,omitempty"`
	FRR        string  `json:"frr,omitempty"`
	Service    string  `json:"service,omitempty"`
	Subclass   string  `json:"subclass,omitempty"`
	Material   string  `json:"material,omitempty"`
	Confidence float64 `json:"confidence"`
}

// NormalizedUnit is the result of canonicalizing a raw unit string.
type NormalizedUnit struct {
	Original    string  `json:"original"`
	Normalized  string  `json:"normalized"`
	DisplayName string  `json:"display_name"`
	Confidence  float64 `json:"confidence"`
}
