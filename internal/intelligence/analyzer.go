// Package intelligence synthesizes cross-quote findings for one project:
// pricing anomalies, coverage gaps, detected systems and supplier-level
// quality signals over already-normalized, matched quote sets.
package intelligence

import (
	"sort"
	"time"

	"github.com/fireproofed/quotelens/internal/model"
)

// Config holds the analyzer's thresholds.
type Config struct {
	// LowConfidence is the per-item confidence below which an item counts
	// as low quality.
	LowConfidence float64
}

// DefaultConfig returns the default analyzer configuration.
func DefaultConfig() Config {
	return Config{LowConfidence: 0.7}
}

// Analyzer derives intelligence findings from enriched quote records. The
// analysis is recomputed from scratch on every call; nothing is persisted.
type Analyzer struct {
	cfg Config
}

// New creates an analyzer.
func New(cfg Config) *Analyzer {
	if cfg.LowConfidence <= 0 {
		cfg.LowConfidence = DefaultConfig().LowConfidence
	}
	return &Analyzer{cfg: cfg}
}

// Analyze runs every intelligence pass over the project's quotes. Empty
// input yields a valid, zeroed analysis rather than an error.
func (a *Analyzer) Analyze(projectID string, quotes []model.QuoteRecord) model.Analysis {
	analysis := model.Analysis{
		ProjectID:        projectID,
		QuotesAnalyzed:   len(quotes),
		AnalyzedAt:       time.Now().UTC(),
		RedFlags:         []model.RedFlag{},
		CoverageGaps:     []model.CoverageGap{},
		SystemsDetected:  []model.SystemDetected{},
		SupplierInsights: []model.SupplierInsight{},
	}

	if len(quotes) == 0 {
		return analysis
	}

	for _, quote := range quotes {
		analysis.RedFlags = append(analysis.RedFlags, a.detectRedFlags(&quote)...)
	}
	analysis.CoverageGaps = detectCoverageGaps(quotes)
	analysis.SystemsDetected = detectSystems(quotes)
	analysis.SupplierInsights = supplierInsights(quotes)
	analysis.Summary = a.buildSummary(quotes, analysis.RedFlags)

	return analysis
}

func (a *Analyzer) buildSummary(quotes []model.QuoteRecord, flags []model.RedFlag) model.AnalysisSummary {
	summary := model.AnalysisSummary{
		TotalRedFlags:        len(flags),
		BestValueSupplier:    "N/A",
		MostCompleteSupplier: "N/A",
	}
	for _, f := range flags {
		if f.Severity == model.SeverityCritical {
			summary.CriticalIssues++
		}
	}

	summary.CoverageScore = coverageScore(quotes)
	summary.AverageQualityScore = a.qualityScore(quotes)

	bestValue := quotes[0]
	mostComplete := quotes[0]
	bestCompleteness := completeness(&quotes[0])
	for _, q := range quotes[1:] {
		if q.TotalAmount < bestValue.TotalAmount {
			bestValue = q
		}
		if c := completeness(&q); c > bestCompleteness {
			mostComplete = q
			bestCompleteness = c
		}
	}
	summary.BestValueSupplier = bestValue.SupplierName
	summary.MostCompleteSupplier = mostComplete.SupplierName

	return summary
}

// completeness ranks a quote for the most-complete-supplier pick: priced
// items count double on top of the raw item count, mapped items add one.
func completeness(q *model.QuoteRecord) int {
	priced := 0
	mapped := 0
	for _, item := range q.Items {
		if item.UnitPrice > 0 {
			priced++
		}
		if item.SystemID != "" {
			mapped++
		}
	}
	return len(q.Items) + 2*priced + mapped
}

// coverageScore averages, across quotes, each quote's share of the union
// of all scope categories, as a percentage.
func coverageScore(quotes []model.QuoteRecord) float64 {
	union := make(map[string]struct{})
	perQuote := make([]map[string]struct{}, len(quotes))

	for i, q := range quotes {
		perQuote[i] = make(map[string]struct{})
		for _, item := range q.Items {
			if item.Category == "" {
				continue
			}
			union[item.Category] = struct{}{}
			perQuote[i][item.Category] = struct{}{}
		}
	}

	if len(union) == 0 {
		return 0
	}

	sum := 0.0
	for i := range quotes {
		sum += float64(len(perQuote[i])) / float64(len(union)) * 100
	}
	return sum / float64(len(quotes))
}

// qualityScore blends price completeness (40%), system mapping (30%) and
// mean item confidence (30%) over every item in the project.
func (a *Analyzer) qualityScore(quotes []model.QuoteRecord) float64 {
	totalItems := 0
	priced := 0
	mapped := 0
	confidenceSum := 0.0

	for _, q := range quotes {
		for _, item := range q.Items {
			totalItems++
			if item.UnitPrice > 0 {
				priced++
			}
			if item.SystemID != "" {
				mapped++
			}
			confidenceSum += item.Confidence
		}
	}

	if totalItems == 0 {
		return 0
	}

	n := float64(totalItems)
	return 0.4*(float64(priced)/n) + 0.3*(float64(mapped)/n) + 0.3*(confidenceSum/n)
}

// sortedKeys returns map keys in deterministic order.
func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
