package normalise

import (
	"regexp"
	"strconv"
)

var nonNumericRe = regexp.MustCompile(`[^0-9.\-]`)

// Number parses a numeric string that may carry currency symbols, thousands
// separators or stray OCR characters. Returns false if nothing parseable
// remains after stripping.
func Number(value string) (float64, bool) {
	cleaned := nonNumericRe.ReplaceAllString(value, "")
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DeriveRate fills a missing unit rate from quantity and total. Returns
// false unless both inputs are present and the quantity is non-zero.
func DeriveRate(qty, total float64) (float64, bool) {
	if qty == 0 || total == 0 {
		return 0, false
	}
	return total / qty, true
}

// DeriveTotal fills a missing line total from quantity and rate. Returns
// false unless both inputs are present and non-zero.
func DeriveTotal(qty, rate float64) (float64, bool) {
	if qty == 0 || rate == 0 {
		return 0, false
	}
	return qty * rate, true
}
