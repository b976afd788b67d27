package intelligence

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/fireproofed/quotelens/internal/model"
)

const (
	flagCategoryPricing    = "pricing"
	flagCategoryScope      = "scope"
	flagCategoryQuality    = "quality"
	flagCategoryCommercial = "commercial"
)

// detectRedFlags runs every per-quote anomaly check.
func (a *Analyzer) detectRedFlags(q *model.QuoteRecord) []model.RedFlag {
	flags := []model.RedFlag{}

	if f, ok := a.checkPriceDiscrepancy(q); ok {
		flags = append(flags, f)
	}
	if f, ok := checkEmptyQuote(q); ok {
		flags = append(flags, f)
	}
	if f, ok := checkUnpricedItems(q); ok {
		flags = append(flags, f)
	}
	if f, ok := a.checkLowConfidenceItems(q); ok {
		flags = append(flags, f)
	}
	if f, ok := checkMissingContingency(q); ok {
		flags = append(flags, f)
	}

	return flags
}

// checkPriceDiscrepancy flags quotes whose line items do not add up to the
// stated total. Above 20% the gap is critical, above 10% high; smaller
// discrepancies are left to the per-quote validator.
func (a *Analyzer) checkPriceDiscrepancy(q *model.QuoteRecord) (model.RedFlag, bool) {
	if q.TotalAmount <= 0 || len(q.Items) == 0 {
		return model.RedFlag{}, false
	}

	itemSum := 0.0
	for _, item := range q.Items {
		itemSum += item.TotalPrice
	}

	relative := math.Abs(itemSum-q.TotalAmount) / q.TotalAmount
	if relative <= 0.10 {
		return model.RedFlag{}, false
	}

	severity := model.SeverityHigh
	if relative > 0.20 {
		severity = model.SeverityCritical
	}

	return model.RedFlag{
		ID:       uuid.NewString(),
		QuoteID:  q.ID,
		Severity: severity,
		Category: flagCategoryPricing,
		Title:    "Line items do not match quote total",
		Description: fmt.Sprintf("%s: line items sum to $%.2f but the quote total is $%.2f (%.0f%% discrepancy)",
			q.SupplierName, itemSum, q.TotalAmount, relative*100),
		Recommendation: "Ask the supplier to reconcile line item pricing against the quoted total",
	}, true
}

func checkEmptyQuote(q *model.QuoteRecord) (model.RedFlag, bool) {
	if len(q.Items) > 0 {
		return model.RedFlag{}, false
	}
	return model.RedFlag{
		ID:             uuid.NewString(),
		QuoteID:        q.ID,
		Severity:       model.SeverityCritical,
		Category:       flagCategoryScope,
		Title:          "Quote has no line items",
		Description:    fmt.Sprintf("%s submitted a quote with no extractable line items", q.SupplierName),
		Recommendation: "Request an itemized breakdown before comparing this quote",
	}, true
}

// checkUnpricedItems flags quotes carrying items with no unit price. The
// severity scales with how much of the quote is unpriced.
func checkUnpricedItems(q *model.QuoteRecord) (model.RedFlag, bool) {
	if len(q.Items) == 0 {
		return model.RedFlag{}, false
	}

	unpriced := 0
	for _, item := range q.Items {
		if item.UnitPrice <= 0 {
			unpriced++
		}
	}
	if unpriced == 0 {
		return model.RedFlag{}, false
	}

	proportion := float64(unpriced) / float64(len(q.Items))
	severity := model.SeverityMedium
	if proportion > 0.10 {
		severity = model.SeverityHigh
	}

	return model.RedFlag{
		ID:       uuid.NewString(),
		QuoteID:  q.ID,
		Severity: severity,
		Category: flagCategoryPricing,
		Title:    "Unpriced line items",
		Description: fmt.Sprintf("%s: %d of %d line items have no unit price",
			q.SupplierName, unpriced, len(q.Items)),
		Recommendation: "Confirm whether unpriced items are included, excluded or priced elsewhere",
	}, true
}

// checkLowConfidenceItems flags quotes where more than 20% of items fell
// below the confidence threshold during extraction or matching.
func (a *Analyzer) checkLowConfidenceItems(q *model.QuoteRecord) (model.RedFlag, bool) {
	if len(q.Items) == 0 {
		return model.RedFlag{}, false
	}

	low := 0
	for _, item := range q.Items {
		if item.Confidence < a.cfg.LowConfidence {
			low++
		}
	}
	if float64(low)/float64(len(q.Items)) <= 0.20 {
		return model.RedFlag{}, false
	}

	return model.RedFlag{
		ID:       uuid.NewString(),
		QuoteID:  q.ID,
		Severity: model.SeverityMedium,
		Category: flagCategoryQuality,
		Title:    "Low extraction confidence",
		Description: fmt.Sprintf("%s: %d of %d line items were extracted with confidence below %.0f%%",
			q.SupplierName, low, len(q.Items), a.cfg.LowConfidence*100),
		Recommendation: "Review the original document for these items before relying on the data",
	}, true
}

func checkMissingContingency(q *model.QuoteRecord) (model.RedFlag, bool) {
	if q.Contingency > 0 {
		return model.RedFlag{}, false
	}
	return model.RedFlag{
		ID:             uuid.NewString(),
		QuoteID:        q.ID,
		Severity:       model.SeverityLow,
		Category:       flagCategoryCommercial,
		Title:          "No contingency allowance",
		Description:    fmt.Sprintf("%s quoted without any contingency allowance", q.SupplierName),
		Recommendation: "Check whether variations are covered or will be charged separately",
	}, true
}
