package extract

import (
	"fmt"
	"strings"

	"github.com/fireproofed/quotelens/internal/model"
)

// buildValidatorFeedback renders the validator's findings as a textual
// diagnostic appendix for the corrective re-extraction prompt.
func buildValidatorFeedback(validation *model.ValidationResult) string {
	var b strings.Builder

	b.WriteString("The extracted data has the following issues that need correction:\n\n")

	if len(validation.Errors) > 0 {
		b.WriteString("**ERRORS (must fix):**\n")
		for i, err := range validation.Errors {
			fmt.Fprintf(&b, "%d. %s\n", i+1, err.Message)
			if err.Expected != "" {
				fmt.Fprintf(&b, "   Expected: %s, Got: %s\n", err.Expected, err.Actual)
			}
		}
		b.WriteString("\n")
	}

	if len(validation.Warnings) > 0 {
		b.WriteString("**WARNINGS (review and fix if incorrect):**\n")
		for i, warn := range validation.Warnings {
			fmt.Fprintf(&b, "%d. %s\n", i+1, warn.Message)
			if warn.Suggestion != "" {
				fmt.Fprintf(&b, "   Suggestion: %s\n", warn.Suggestion)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("Please re-extract the data with these corrections applied. Pay special attention to:\n")
	b.WriteString("- Arithmetic accuracy (quantity × unit_rate = line_total)\n")
	b.WriteString("- Sum of line items = subtotal\n")
	b.WriteString("- Subtotal + tax = grand_total\n")
	b.WriteString("- Proper unit formatting (m², lm, each)\n")
	b.WriteString("- Reasonable quantity and rate values\n")

	return b.String()
}
