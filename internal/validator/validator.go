// Package validator implements a deterministic rule engine over extracted
// quote schemas. It checks metadata, line items, financial totals and
// arithmetic consistency, and derives a confidence score from the outcome.
// Validate is a pure function and never panics: degenerate input yields a
// populated result with a zero confidence score.
package validator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fireproofed/quotelens/internal/model"
)

// Config holds the tunable thresholds of the rule engine. The defaults come
// from production use; both the tolerance and the rate bounds are deliberate
// configuration inputs rather than embedded constants.
type Config struct {
	RoundingTolerance float64
	SuspiciousQty     float64
	MinUnitRate       float64
	MaxUnitRate       float64
}

// DefaultConfig returns the default validator configuration.
func DefaultConfig() Config {
	return Config{
		RoundingTolerance: 0.02,
		SuspiciousQty:     10000,
		MinUnitRate:       0.01,
		MaxUnitRate:       100000,
	}
}

// Validator checks extracted quotes against the rule set.
type Validator struct {
	cfg Config
}

// New creates a validator with the given configuration.
func New(cfg Config) *Validator {
	if cfg.RoundingTolerance <= 0 {
		cfg.RoundingTolerance = DefaultConfig().RoundingTolerance
	}
	if cfg.SuspiciousQty <= 0 {
		cfg.SuspiciousQty = DefaultConfig().SuspiciousQty
	}
	if cfg.MaxUnitRate <= 0 {
		cfg.MaxUnitRate = DefaultConfig().MaxUnitRate
	}
	return &Validator{cfg: cfg}
}

// Validate runs every rule against the quote and returns the aggregate
// result. It never mutates the quote.
func (v *Validator) Validate(quote *model.QuoteSchema) model.ValidationResult {
	var (
		errors   []model.ValidationError
		warnings []model.ValidationWarning
		checks   []model.ValidationCheck
	)

	errors, warnings, checks = v.validateMetadata(quote, errors, warnings, checks)
	errors, warnings, checks = v.validateLineItems(quote, errors, warnings, checks)
	errors, warnings = v.validateFinancials(quote, errors, warnings)
	errors, warnings, checks = v.validateArithmetic(quote, errors, warnings, checks)

	result := model.ValidationResult{
		ConfidenceScore: calculateConfidence(errors, warnings, checks),
		Errors:          errors,
		Warnings:        warnings,
		Checks:          checks,
	}
	result.IsValid = result.CountErrors(model.SeverityCritical) == 0

	return result
}

func (v *Validator) validateMetadata(
	quote *model.QuoteSchema,
	errors []model.ValidationError,
	warnings []model.ValidationWarning,
	checks []model.ValidationCheck,
) ([]model.ValidationError, []model.ValidationWarning, []model.ValidationCheck) {
	if strings.TrimSpace(quote.Metadata.SupplierName) == "" {
		errors = append(errors, model.ValidationError{
			Type:     model.ErrorMissingRequired,
			Field:    "metadata.supplier_name",
			Message:  "Supplier name is required",
			Severity: model.SeverityCritical,
		})
	}

	if quote.Metadata.QuoteDate == "" {
		warnings = append(warnings, model.ValidationWarning{
			Type:    model.WarningSuspiciousValue,
			Field:   "metadata.quote_date",
			Message: "Quote date is missing",
		})
	} else {
		valid, message := checkDate(quote.Metadata.QuoteDate)
		checks = append(checks, model.ValidationCheck{
			Name:    "quote_date_format",
			Passed:  valid,
			Message: message,
		})
		if !valid {
			warnings = append(warnings, model.ValidationWarning{
				Type:    model.WarningUnusualFormat,
				Field:   "metadata.quote_date",
				Message: message,
			})
		}
	}

	if quote.Metadata.Currency == "" {
		warnings = append(warnings, model.ValidationWarning{
			Type:       model.WarningSuspiciousValue,
			Field:      "metadata.currency",
			Message:    "Currency not specified, assuming default",
			Suggestion: "AUD or NZD",
		})
	}

	checks = append(checks, model.ValidationCheck{
		Name:    "metadata_completeness",
		Passed:  quote.Metadata.SupplierName != "" && quote.Metadata.QuoteDate != "",
		Message: "Core metadata fields present",
	})

	return errors, warnings, checks
}

func (v *Validator) validateLineItems(
	quote *model.QuoteSchema,
	errors []model.ValidationError,
	warnings []model.ValidationWarning,
	checks []model.ValidationCheck,
) ([]model.ValidationError, []model.ValidationWarning, []model.ValidationCheck) {
	if len(quote.LineItems) == 0 {
		errors = append(errors, model.ValidationError{
			Type:     model.ErrorMissingRequired,
			Field:    "line_items",
			Message:  "No line items found in quote",
			Severity: model.SeverityCritical,
		})
		return errors, warnings, checks
	}

	// Collisions of trimmed, lowercased descriptions, in first-seen order.
	descIndices := make(map[string][]int)
	var descOrder []string

	for i, item := range quote.LineItems {
		if strings.TrimSpace(item.Description) == "" {
			errors = append(errors, model.ValidationError{
				Type:     model.ErrorMissingRequired,
				Field:    fmt.Sprintf("line_items[%d].description", i),
				Message:  fmt.Sprintf("Line item %d has no description", i+1),
				Severity: model.SeverityHigh,
			})
		}

		if item.Quantity <= 0 {
			errors = append(errors, model.ValidationError{
				Type:     model.ErrorArithmetic,
				Field:    fmt.Sprintf("line_items[%d].quantity", i),
				Message:  fmt.Sprintf("Line item %d has invalid quantity: %v", i+1, item.Quantity),
				Severity: model.SeverityHigh,
				Actual:   formatAmount(item.Quantity),
			})
		}

		if item.Quantity > v.cfg.SuspiciousQty {
			warnings = append(warnings, model.ValidationWarning{
				Type:    model.WarningSuspiciousValue,
				Field:   fmt.Sprintf("line_items[%d].quantity", i),
				Message: fmt.Sprintf("Line item %d has unusually high quantity: %v", i+1, item.Quantity),
			})
		}

		if item.UnitRate < v.cfg.MinUnitRate || item.UnitRate > v.cfg.MaxUnitRate {
			warnings = append(warnings, model.ValidationWarning{
				Type:    model.WarningSuspiciousValue,
				Field:   fmt.Sprintf("line_items[%d].unit_rate", i),
				Message: fmt.Sprintf("Line item %d has unusual unit rate: $%v", i+1, item.UnitRate),
			})
		}

		if !isValidUnit(item.Unit) {
			warnings = append(warnings, model.ValidationWarning{
				Type:       model.WarningUnusualFormat,
				Field:      fmt.Sprintf("line_items[%d].unit", i),
				Message:    fmt.Sprintf("Line item %d has non-standard unit: %q", i+1, item.Unit),
				Suggestion: suggestUnit(item.Unit),
			})
		}

		calculated := item.Quantity * item.UnitRate
		if math.Abs(calculated-item.LineTotal) > v.cfg.RoundingTolerance {
			errors = append(errors, model.ValidationError{
				Type:  model.ErrorArithmetic,
				Field: fmt.Sprintf("line_items[%d].line_total", i),
				Message: fmt.Sprintf("Line item %d: Qty × Rate ≠ Total (%v × $%v = $%s, but got $%v)",
					i+1, item.Quantity, item.UnitRate, formatAmount(calculated), item.LineTotal),
				Severity: model.SeverityHigh,
				Expected: formatAmount(calculated),
				Actual:   formatAmount(item.LineTotal),
			})
		}

		if item.Description != "" {
			desc := strings.ToLower(strings.TrimSpace(item.Description))
			if _, seen := descIndices[desc]; !seen {
				descOrder = append(descOrder, desc)
			}
			descIndices[desc] = append(descIndices[desc], i)
		}
	}

	for _, desc := range descOrder {
		indices := descIndices[desc]
		if len(indices) < 2 {
			continue
		}
		rates := make(map[float64]struct{})
		var rateList []float64
		for _, i := range indices {
			rate := quote.LineItems[i].UnitRate
			if _, ok := rates[rate]; !ok {
				rates[rate] = struct{}{}
				rateList = append(rateList, rate)
			}
		}
		if len(rates) > 1 {
			sort.Float64s(rateList)
			parts := make([]string, 0, len(rateList))
			for _, r := range rateList {
				parts = append(parts, "$"+formatAmount(r))
			}
			warnings = append(warnings, model.ValidationWarning{
				Type:    model.WarningDuplicate,
				Field:   "line_items",
				Message: fmt.Sprintf("Duplicate description %q appears with different rates: %s", desc, strings.Join(parts, ", ")),
			})
		}
	}

	checks = append(checks, model.ValidationCheck{
		Name:    "line_items_present",
		Passed:  true,
		Message: fmt.Sprintf("%d line items found", len(quote.LineItems)),
	})

	return errors, warnings, checks
}

func (v *Validator) validateFinancials(
	quote *model.QuoteSchema,
	errors []model.ValidationError,
	warnings []model.ValidationWarning,
) ([]model.ValidationError, []model.ValidationWarning) {
	fin := quote.Financials

	if fin.GrandTotal <= 0 {
		errors = append(errors, model.ValidationError{
			Type:     model.ErrorArithmetic,
			Field:    "financials.grand_total",
			Message:  "Grand total must be greater than zero",
			Severity: model.SeverityCritical,
			Actual:   formatAmount(fin.GrandTotal),
		})
	}

	if fin.Subtotal != 0 && fin.Subtotal > fin.GrandTotal {
		errors = append(errors, model.ValidationError{
			Type:     model.ErrorInconsistent,
			Field:    "financials.subtotal",
			Message:  "Subtotal cannot be greater than grand total",
			Severity: model.SeverityHigh,
			Expected: "≤ " + formatAmount(fin.GrandTotal),
			Actual:   formatAmount(fin.Subtotal),
		})
	}

	if fin.TaxRate != 0 && (fin.TaxRate < 0 || fin.TaxRate > 0.5) {
		warnings = append(warnings, model.ValidationWarning{
			Type:    model.WarningSuspiciousValue,
			Field:   "financials.tax_rate",
			Message: fmt.Sprintf("Unusual tax rate: %.1f%%", fin.TaxRate*100),
		})
	}

	return errors, warnings
}

func (v *Validator) validateArithmetic(
	quote *model.QuoteSchema,
	errors []model.ValidationError,
	warnings []model.ValidationWarning,
	checks []model.ValidationCheck,
) ([]model.ValidationError, []model.ValidationWarning, []model.ValidationCheck) {
	fin := quote.Financials

	var itemsTotal float64
	for _, item := range quote.LineItems {
		itemsTotal += item.LineTotal
	}

	if fin.Subtotal != 0 {
		difference := math.Abs(itemsTotal - fin.Subtotal)
		passed := difference <= v.cfg.RoundingTolerance
		message := fmt.Sprintf("Line items sum correctly to subtotal ($%s ≈ $%s)",
			formatAmount(itemsTotal), formatAmount(fin.Subtotal))
		if !passed {
			message = fmt.Sprintf("Line items sum mismatch: $%s vs subtotal $%s",
				formatAmount(itemsTotal), formatAmount(fin.Subtotal))
		}
		checks = append(checks, model.ValidationCheck{
			Name:    "line_items_sum_to_subtotal",
			Passed:  passed,
			Message: message,
		})

		// Cent-level drift is tolerated in the check; only a real gap
		// becomes an error.
		if !passed && difference > 1 {
			errors = append(errors, model.ValidationError{
				Type:  model.ErrorArithmetic,
				Field: "financials.subtotal",
				Message: fmt.Sprintf("Sum of line items ($%s) does not match subtotal ($%s)",
					formatAmount(itemsTotal), formatAmount(fin.Subtotal)),
				Severity: model.SeverityHigh,
				Expected: formatAmount(itemsTotal),
				Actual:   formatAmount(fin.Subtotal),
			})
		}
	}

	if fin.TaxAmount != 0 && fin.Subtotal != 0 {
		expectedTotal := fin.Subtotal + fin.TaxAmount - fin.Discount
		difference := math.Abs(expectedTotal - fin.GrandTotal)
		passed := difference <= v.cfg.RoundingTolerance

		message := fmt.Sprintf("Subtotal + Tax = Grand Total ($%s ≈ $%s)",
			formatAmount(expectedTotal), formatAmount(fin.GrandTotal))
		if !passed {
			message = fmt.Sprintf("Grand total mismatch: expected $%s, got $%s",
				formatAmount(expectedTotal), formatAmount(fin.GrandTotal))
		}
		checks = append(checks, model.ValidationCheck{
			Name:    "subtotal_plus_tax_equals_total",
			Passed:  passed,
			Message: message,
		})

		if !passed && difference > 1 {
			errors = append(errors, model.ValidationError{
				Type:  model.ErrorArithmetic,
				Field: "financials.grand_total",
				Message: fmt.Sprintf("Grand total ($%s) does not match subtotal + tax ($%s)",
					formatAmount(fin.GrandTotal), formatAmount(expectedTotal)),
				Severity: model.SeverityHigh,
				Expected: formatAmount(expectedTotal),
				Actual:   formatAmount(fin.GrandTotal),
			})
		}
	}

	// Tax-rate consistency never rises above a warning.
	if fin.TaxRate != 0 && fin.Subtotal != 0 && fin.TaxAmount != 0 {
		expectedTax := fin.Subtotal * fin.TaxRate
		if math.Abs(expectedTax-fin.TaxAmount) > v.cfg.RoundingTolerance {
			warnings = append(warnings, model.ValidationWarning{
				Type:  model.WarningSuspiciousValue,
				Field: "financials.tax_amount",
				Message: fmt.Sprintf("Tax amount ($%s) doesn't match rate (%.1f%% of $%s = $%s)",
					formatAmount(fin.TaxAmount), fin.TaxRate*100,
					formatAmount(fin.Subtotal), formatAmount(expectedTax)),
			})
		}
	}

	return errors, warnings, checks
}

// calculateConfidence derives a 0-1 score from the validation outcome.
// Any critical error zeroes the score outright.
func calculateConfidence(
	errors []model.ValidationError,
	warnings []model.ValidationWarning,
	checks []model.ValidationCheck,
) float64 {
	var critical, high, medium int
	for _, e := range errors {
		switch e.Severity {
		case model.SeverityCritical:
			critical++
		case model.SeverityHigh:
			high++
		case model.SeverityMedium:
			medium++
		}
	}

	if critical > 0 {
		return 0
	}

	checkScore := 0.5
	if len(checks) > 0 {
		passed := 0
		for _, c := range checks {
			if c.Passed {
				passed++
			}
		}
		checkScore = float64(passed) / float64(len(checks))
	}

	confidence := checkScore - float64(high)*0.15 - float64(medium)*0.05 - float64(len(warnings))*0.02
	confidence = math.Max(0, math.Min(1, confidence))

	return math.Round(confidence*100) / 100
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
