// Package normalise canonicalizes unit strings and numeric fields of quote
// line items, and mines free-text descriptions for structured attributes.
package normalise

import (
	"regexp"
	"strings"

	"github.com/fireproofed/quotelens/internal/model"
)

// unitMapping maps a family of unit aliases to one canonical form.
type unitMapping struct {
	normalized  string
	displayName string
	aliases     []*regexp.Regexp
}

var unitMappings = []unitMapping{
	{
		normalized:  "ea",
		displayName: "Each",
		aliases: compileAll(
			`^ea$`, `^each$`, `^nr$`, `^no\.?$`, `^number$`, `^per$`,
			`^item$`, `^unit$`, `^pce$`, `^piece$`,
		),
	},
	{
		normalized:  "m²",
		displayName: "Square Meters",
		aliases: compileAll(
			`^m²$`, `^m2$`, `^sqm$`, `^sq\.?\s*m$`, `^square\s*m(eter)?s?$`, `^msq$`,
		),
	},
	{
		normalized:  "m",
		displayName: "Linear Meters",
		aliases: compileAll(
			`^m$`, `^lm$`, `^lin\.?\s*m$`, `^linear\s*m(eter)?s?$`,
			`^metre?s?$`, `^meter?s?$`, `^mtrs?$`, `^per\s*m(etre)?$`,
			`^running\s*m(etre)?$`,
		),
	},
	{
		normalized:  "L",
		displayName: "Liters",
		aliases:     compileAll(`^l$`, `^litre?s?$`),
	},
	{
		normalized:  "m³",
		displayName: "Cubic Meters",
		aliases: compileAll(
			`^m³$`, `^m3$`, `^cum$`, `^cu\.?\s*m$`, `^cubic\s*m(eter)?s?$`,
		),
	},
	{
		normalized:  "hr",
		displayName: "Hours",
		aliases:     compileAll(`^hr$`, `^hrs?$`, `^hour?s?$`),
	},
	{
		normalized:  "kg",
		displayName: "Kilograms",
		aliases:     compileAll(`^kg$`, `^kgs?$`, `^kilogram?s?$`),
	},
	{
		normalized:  "t",
		displayName: "Tons",
		aliases:     compileAll(`^t$`, `^ton?s?$`, `^tonne?s?$`),
	},
	{
		normalized:  "sum",
		displayName: "Sum",
		aliases:     compileAll(`^sum$`, `^p\.?s\.?$`, `^prov\.?\s*sum$`),
	},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return compiled
}

// Unit canonicalizes a raw unit string against the alias table. Unknown
// input passes through lowercased with low confidence, which keeps the
// operation idempotent: Unit(Unit(x).Normalized) never changes the result.
func Unit(unit string) model.NormalizedUnit {
	trimmed := strings.TrimSpace(unit)
	if trimmed == "" {
		return model.NormalizedUnit{
			Original:    unit,
			Normalized:  "ea",
			DisplayName: "Each",
			Confidence:  0.5,
		}
	}

	for _, mapping := range unitMappings {
		for _, re := range mapping.aliases {
			if re.MatchString(trimmed) {
				return model.NormalizedUnit{
					Original:    unit,
					Normalized:  mapping.normalized,
					DisplayName: mapping.displayName,
					Confidence:  1.0,
				}
			}
		}
	}

	return model.NormalizedUnit{
		Original:    unit,
		Normalized:  strings.ToLower(trimmed),
		DisplayName: trimmed,
		Confidence:  0.3,
	}
}

// EquivalentUnits reports whether two raw unit strings canonicalize to the
// same unit.
func EquivalentUnits(a, b string) bool {
	return Unit(a).Normalized == Unit(b).Normalized
}
