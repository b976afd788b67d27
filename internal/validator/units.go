package validator

import "strings"

// validUnits is the whitelist of units accepted without a warning,
// including the synonyms suppliers commonly use.
var validUnits = []string{
	"m²", "m2", "sqm", "square meter", "square metre",
	"lm", "lin.m", "linear meter", "linear metre",
	"each", "ea", "no", "item",
	"hour", "hr", "hrs",
	"day", "days",
	"kg", "kilogram",
	"tonne", "t",
	"litre", "l", "ltr",
}

func isValidUnit(unit string) bool {
	normalized := strings.ToLower(strings.TrimSpace(unit))
	for _, valid := range validUnits {
		if normalized == valid {
			return true
		}
	}
	return false
}

// suggestUnit proposes a canonical unit for a non-standard one using
// substring heuristics over the raw string.
func suggestUnit(unit string) string {
	normalized := strings.ToLower(strings.TrimSpace(unit))

	switch {
	case strings.Contains(normalized, "sq"), strings.Contains(normalized, "m2"), strings.Contains(normalized, "²"):
		return "m²"
	case strings.Contains(normalized, "lin"), strings.Contains(normalized, "lm"):
		return "lm"
	case strings.Contains(normalized, "ea"), strings.Contains(normalized, "no"), strings.Contains(normalized, "item"):
		return "each"
	case strings.Contains(normalized, "hr"), strings.Contains(normalized, "hour"):
		return "hour"
	default:
		return "m²"
	}
}
