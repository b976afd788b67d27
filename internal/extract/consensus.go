package extract

import (
	"math"

	"github.com/fireproofed/quotelens/internal/model"
)

// numericEpsilon treats two extracted numbers as agreeing when they are
// this close, so formatting noise never forces a disagreement.
const numericEpsilon = 0.01

// buildConsensus reconciles two independent extractions field by field.
// The primary record's validation travels with the merge until the caller
// re-validates.
func buildConsensus(primary, secondary *model.QuoteSchema) *model.QuoteSchema {
	return &model.QuoteSchema{
		Metadata:   mergeMetadata(&primary.Metadata, &secondary.Metadata),
		LineItems:  mergeLineItems(primary.LineItems, secondary.LineItems),
		Financials: mergeFinancials(&primary.Financials, &secondary.Financials),
		Validation: primary.Validation,
	}
}

func mergeMetadata(m1, m2 *model.QuoteMetadata) model.QuoteMetadata {
	return model.QuoteMetadata{
		SupplierName:   pickBestString(m1.SupplierName, m2.SupplierName),
		QuoteNumber:    pickBestString(m1.QuoteNumber, m2.QuoteNumber),
		QuoteDate:      pickBestString(m1.QuoteDate, m2.QuoteDate),
		QuoteReference: pickBestString(m1.QuoteReference, m2.QuoteReference),
		ProjectName:    pickBestString(m1.ProjectName, m2.ProjectName),
		CustomerName:   pickBestString(m1.CustomerName, m2.CustomerName),
		Currency:       pickBestString(m1.Currency, m2.Currency),
		PaymentTerms:   pickBestString(m1.PaymentTerms, m2.PaymentTerms),
		ValidityPeriod: pickBestString(m1.ValidityPeriod, m2.ValidityPeriod),
	}
}

// mergeLineItems merges index-by-index when both lists agree on length;
// otherwise the longer list wins outright.
func mergeLineItems(items1, items2 []model.LineItem) []model.LineItem {
	if len(items1) != len(items2) {
		if len(items1) > len(items2) {
			return items1
		}
		return items2
	}

	merged := make([]model.LineItem, len(items1))
	for i := range items1 {
		a, b := items1[i], items2[i]

		lineNumber := a.LineNumber
		if lineNumber == 0 {
			lineNumber = b.LineNumber
		}

		merged[i] = model.LineItem{
			LineNumber:  lineNumber,
			ItemCode:    pickBestString(a.ItemCode, b.ItemCode),
			Description: pickBestString(a.Description, b.Description),
			Quantity:    pickBestNumeric(a.Quantity, b.Quantity),
			Unit:        pickBestString(a.Unit, b.Unit),
			UnitRate:    pickBestNumeric(a.UnitRate, b.UnitRate),
			LineTotal:   pickBestNumeric(a.LineTotal, b.LineTotal),
			Trade:       pickBestString(a.Trade, b.Trade),
			SystemCode:  pickBestString(a.SystemCode, b.SystemCode),
			FireRating:  pickBestString(a.FireRating, b.FireRating),
			Notes:       pickBestString(a.Notes, b.Notes),
			Confidence:  math.Max(a.Confidence, b.Confidence),
		}
	}

	return merged
}

func mergeFinancials(f1, f2 *model.Financials) model.Financials {
	return model.Financials{
		Subtotal:   pickBestNumeric(f1.Subtotal, f2.Subtotal),
		TaxRate:    pickBestNumeric(f1.TaxRate, f2.TaxRate),
		TaxAmount:  pickBestNumeric(f1.TaxAmount, f2.TaxAmount),
		Discount:   pickBestNumeric(f1.Discount, f2.Discount),
		GrandTotal: pickBestNumeric(f1.GrandTotal, f2.GrandTotal),
		Currency:   pickBestString(f1.Currency, f2.Currency),
	}
}

// pickBestString prefers the non-empty value; when both are non-empty the
// longer string wins, the first on equal length.
func pickBestString(v1, v2 string) string {
	if v1 != "" && v2 == "" {
		return v1
	}
	if v2 != "" && v1 == "" {
		return v2
	}
	if len(v1) >= len(v2) {
		return v1
	}
	return v2
}

// pickBestNumeric prefers the non-zero value; two non-zero values within
// the epsilon keep the first, otherwise the first's positive value wins.
func pickBestNumeric(v1, v2 float64) float64 {
	if v1 != 0 && v2 == 0 {
		return v1
	}
	if v2 != 0 && v1 == 0 {
		return v2
	}
	if v1 == 0 && v2 == 0 {
		return 0
	}

	if math.Abs(v1-v2) < numericEpsilon {
		return v1
	}

	if v1 > 0 {
		return v1
	}
	return v2
}
