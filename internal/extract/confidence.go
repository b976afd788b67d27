package extract

import (
	"math"
	"strings"

	"github.com/fireproofed/quotelens/internal/model"
)

// metadataConfidence scores how many of the core metadata fields came back
// populated.
func metadataConfidence(m *model.QuoteMetadata) float64 {
	fields := []string{m.SupplierName, m.QuoteNumber, m.QuoteDate, m.Currency}

	filled := 0
	for _, f := range fields {
		if f != "" {
			filled++
		}
	}
	return float64(filled) / float64(len(fields))
}

// lineItemsConfidence is the mean per-item confidence; items without one
// count as 0.5.
func lineItemsConfidence(items []model.LineItem) float64 {
	if len(items) == 0 {
		return 0
	}

	sum := 0.0
	for _, item := range items {
		confidence := item.Confidence
		if confidence == 0 {
			confidence = 0.5
		}
		sum += confidence
	}
	return sum / float64(len(items))
}

func financialsConfidence(f *model.Financials) float64 {
	if f.GrandTotal <= 0 {
		return 0
	}
	if f.Subtotal != 0 && f.TaxAmount != 0 {
		return 1.0
	}
	return 0.7
}

// crossModelAgreement averages three sub-checks between the two
// extractions: supplier name equality, item-count equality, and grand
// total proximity (full credit under one unit of difference, half credit
// under 5% relative difference).
func crossModelAgreement(q1, q2 *model.QuoteSchema) float64 {
	agreements := 0.0
	total := 0.0

	if q1.Metadata.SupplierName == q2.Metadata.SupplierName {
		agreements++
	}
	total++

	if len(q1.LineItems) == len(q2.LineItems) {
		agreements++
	}
	total++

	totalDiff := math.Abs(q1.Financials.GrandTotal - q2.Financials.GrandTotal)
	switch {
	case totalDiff < 1:
		agreements++
	case q1.Financials.GrandTotal != 0 && totalDiff/q1.Financials.GrandTotal < 0.05:
		agreements += 0.5
	}
	total++

	return agreements / total
}

// arithmeticScore is the pass rate of the validator's arithmetic checks,
// identified by name.
func arithmeticScore(validation *model.ValidationResult) float64 {
	total := 0
	passed := 0
	for _, c := range validation.Checks {
		if !strings.Contains(c.Name, "sum") &&
			!strings.Contains(c.Name, "total") &&
			!strings.Contains(c.Name, "equals") {
			continue
		}
		total++
		if c.Passed {
			passed++
		}
	}

	if total == 0 {
		return 0.5
	}
	return float64(passed) / float64(total)
}

// formatScore penalizes format errors and unusual-format warnings.
func formatScore(validation *model.ValidationResult) float64 {
	formatErrors := 0
	for _, e := range validation.Errors {
		if e.Type == model.ErrorFormat {
			formatErrors++
		}
	}

	formatWarnings := 0
	for _, w := range validation.Warnings {
		if w.Type == model.WarningUnusualFormat {
			formatWarnings++
		}
	}

	return math.Max(0, 1-float64(formatErrors)*0.2-float64(formatWarnings)*0.05)
}
