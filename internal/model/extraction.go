package model

// ExtractionMethod labels how the final quote record was produced.
type ExtractionMethod string

// Extraction method labels.
const (
	MethodPrimary   ExtractionMethod = "primary"
	MethodFallback  ExtractionMethod = "fallback"
	MethodConsensus ExtractionMethod = "consensus"
)

// ConfidenceBreakdown is a multi-axis quality score for one extraction.
// Every axis is in [0, 1].
type ConfidenceBreakdown struct {
	Overall               float64 `json:"overall"`
	Metadata              float64 `json:"metadata"`
	LineItems             float64 `json:"line_items"`
	Financials            float64 `json:"financials"`
	CrossModelAgreement   float64 `json:"cross_model_agreement"`
	ArithmeticConsistency float64 `json:"arithmetic_consistency"`
	FormatValidity        float64 `json:"format_validity"`
}

// ExtractionMetadata describes how an extraction ran.
type ExtractionMetadata struct {
	ModelsUsed       []string         `json:"models_used"`
	Method           ExtractionMethod `json:"extraction_method"`
	ProcessingTimeMS int64            `json:"processing_time_ms"`
	PageCount        int              `json:"page_count"`
	OCRUsed          bool             `json:"ocr_used"`
	FallbackReason   string           `json:"fallback_reason,omitempty"`
}

// ExtractionResult is the full outcome of one orchestrated extraction,
// carrying every pass that ran plus the derived confidence breakdown.
type ExtractionResult struct {
	Primary             *QuoteSchema        `json:"primary"`
	Secondary           *QuoteSchema        `json:"secondary,omitempty"`
	Consensus           *QuoteSchema        `json:"consensus,omitempty"`
	ConfidenceBreakdown ConfidenceBreakdown `json:"confidence_breakdown"`
	ExtractionMetadata  ExtractionMetadata  `json:"extraction_metadata"`
}

// Final returns the quote record the caller should use: the consensus
// record when one was produced, otherwise the primary record.
func (r *ExtractionResult) Final() *QuoteSchema {
	if r.Consensus != nil {
		return r.Consensus
	}
	return r.Primary
}
