package model

import "time"

// QuoteRecord is a persisted, already-enriched quote as handed to the
// intelligence analyzer. The analyzer never mutates storage; it consumes
// these plain records and returns derived findings.
type QuoteRecord struct {
	ID           string       `json:"id"`
	SupplierName string       `json:"supplier_name"`
	TotalAmount  float64      `json:"total_amount"`
	Contingency  float64      `json:"contingency"`
	Items        []ItemRecord `json:"items"`
}

// ItemRecord is one persisted, enriched line item.
type ItemRecord struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	SystemID    string  `json:"system_id,omitempty"`
	SystemLabel string  `json:"system_label,omitempty"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
	Confidence  float64 `json:"confidence"`
}

// RedFlag is a per-quote anomaly surfaced by the analyzer.
type RedFlag struct {
	ID             string   `json:"id"`
	QuoteID        string   `json:"quote_id"`
	Severity       Severity `json:"severity"`
	Category       string   `json:"category"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// CoverageGap names a scope category quoted by some but not all suppliers.
type CoverageGap struct {
	ID             string   `json:"id"`
	GapType        string   `json:"gap_type"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	MissingIn      []string `json:"missing_in"`
	PresentIn      []string `json:"present_in"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// SystemDetected is an aggregated (quote, system) grouping.
type SystemDetected struct {
	ID         string  `json:"id"`
	QuoteID    string  `json:"quote_id"`
	SystemName string  `json:"system_name"`
	ItemCount  int     `json:"item_count"`
	TotalValue float64 `json:"total_value"`
	Confidence float64 `json:"confidence"`
}

// SupplierInsight is a positive quality signal about one supplier.
type SupplierInsight struct {
	ID           string `json:"id"`
	SupplierName string `json:"supplier_name"`
	InsightType  string `json:"insight_type"`
	Title        string `json:"title"`
	Description  string `json:"description"`
}

// AnalysisSummary aggregates the analysis into headline numbers.
type AnalysisSummary struct {
	TotalRedFlags        int     `json:"total_red_flags"`
	CriticalIssues       int     `json:"critical_issues"`
	CoverageScore        float64 `json:"coverage_score"`
	AverageQualityScore  float64 `json:"average_quality_score"`
	BestValueSupplier    string  `json:"best_value_supplier"`
	MostCompleteSupplier string  `json:"most_complete_supplier"`
}

// Analysis is the full cross-quote intelligence output for one project.
// It is recomputed from scratch on every request and never persisted here.
type Analysis struct {
	ProjectID        string            `json:"project_id"`
	QuotesAnalyzed   int               `json:"quotes_analyzed"`
	AnalyzedAt       time.Time         `json:"analyzed_at"`
	Summary          AnalysisSummary   `json:"summary"`
	RedFlags         []RedFlag         `json:"red_flags"`
	CoverageGaps     []CoverageGap     `json:"coverage_gaps"`
	SystemsDetected  []SystemDetected  `json:"systems_detected"`
	SupplierInsights []SupplierInsight `json:"supplier_insights"`
}
