package normalise

import (
	"regexp"
	"strings"

	"github.com/fireproofed/quotelens/internal/model"
)

// attributeCategories is the number of independent facets mined from a
// description; the extraction confidence is matched-categories / this count.
const attributeCategories = 5

var sizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:mm|millimeter|millimetre)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:inch|in|")`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*x\s*(\d+(?:\.\d+)?)\s*(?:mm|millimeter|millimetre|inch|in|")?`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:mm|inch|in|")?\s*(?:dia|diameter|ø|Ø)`),
	regexp.MustCompile(`(?i)DN\s*(\d+)`),
	regexp.MustCompile(`(?i)NB\s*(\d+)`),
}

var frrPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)FRL\s*[-/]?\s*(\d+)(?:\s*[-/]\s*(\d+)(?:\s*[-/]\s*(\d+))?)?`),
	regexp.MustCompile(`(\d+)\s*[-/]\s*(\d+)\s*[-/]\s*(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s*min(?:ute)?s?\s*fire\s*rat(?:ing|ed)`),
	regexp.MustCompile(`(?i)fire\s*rat(?:ing|ed)?\s*(?:of|:)?\s*(\d+)`),
	regexp.MustCompile(`-/(\d+)/(\d+)`),
}

// keywordTable maps a label to the keywords that imply it. Tables are
// ordered: the first label whose keywords hit wins.
type keywordEntry struct {
	label    string
	keywords []string
}

var serviceKeywords = []keywordEntry{
	{"Electrical", []string{"electrical", "electric", "power", "cable", "wiring", "conduit"}},
	{"Mechanical", []string{"mechanical", "hvac", "duct", "ducting", "ventilation", "air conditioning"}},
	{"Fire", []string{"fire", "sprinkler", "fire protection"}},
	{"Plumbing", []string{"plumbing", "pipe", "piping", "water", "drainage", "sewer"}},
	{"Data", []string{"data", "telecom", "communication", "network", "fibre", "fiber"}},
	{"Gas", []string{"gas", "natural gas", "lpg"}},
}

var subclassKeywords = []keywordEntry{
	{"Cables", []string{"cable", "cabling", "wire", "wiring"}},
	{"Conduit", []string{"conduit", "trunking"}},
	{"Ducts", []string{"duct", "ducting"}},
	{"Pipes", []string{"pipe", "piping"}},
	{"Tray", []string{"tray", "cable tray", "ladder"}},
	{"Penetration", []string{"penetration", "opening", "hole", "aperture"}},
	{"Seal", []string{"seal", "sealing", "sealant", "firestop"}},
	{"Batt", []string{"batt", "blanket", "wrap"}},
	{"Board", []string{"board", "panel"}},
	{"Collar", []string{"collar", "wrap"}},
	{"Block", []string{"block", "brick"}},
	{"Damper", []string{"damper", "fire damper"}},
}

var materialKeywords = []keywordEntry{
	{"Steel", []string{"steel", "galvanised", "galvanized"}},
	{"PVC", []string{"pvc", "polyvinyl"}},
	{"Copper", []string{"copper", "cu"}},
	{"Aluminium", []string{"aluminium", "aluminum"}},
	{"Concrete", []string{"concrete"}},
	{"Plasterboard", []string{"plasterboard", "gypsum", "drywall"}},
	{"Ceramic", []string{"ceramic", "fibre", "fiber"}},
	{"Intumescent", []string{"intumescent"}},
	{"Mineral Wool", []string{"mineral wool", "rockwool", "rock wool"}},
}

// ExtractAttributes mines a free-text description for size, fire-resistance
// rating, service type, subclass and material. Each category applies its
// pattern or keyword table in order; the first hit wins.
func ExtractAttributes(text string) model.ExtractedAttributes {
	if strings.TrimSpace(text) == "" {
		return model.ExtractedAttributes{}
	}

	lower := strings.ToLower(text)
	result := model.ExtractedAttributes{
		Size:     firstPatternMatch(text, sizePatterns),
		FRR:      firstPatternMatch(text, frrPatterns),
		Service:  firstKeywordMatch(lower, serviceKeywords),
		Subclass: firstKeywordMatch(lower, subclassKeywords),
		Material: firstKeywordMatch(lower, materialKeywords),
	}

	matched := 0
	for _, v := range []string{result.Size, result.FRR, result.Service, result.Subclass, result.Material} {
		if v != "" {
			matched++
		}
	}
	result.Confidence = float64(matched) / attributeCategories

	return result
}

func firstPatternMatch(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func firstKeywordMatch(lower string, table []keywordEntry) string {
	for _, entry := range table {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.label
			}
		}
	}
	return ""
}

// ItemCompleteness scores how fully populated an enriched item is, 0-100.
func ItemCompleteness(qty, rate float64, unit, description, systemID string) int {
	score := 0
	if qty != 0 && rate != 0 {
		score += 40
	}
	if unit != "" {
		score += 20
	}
	if len(description) > 10 {
		score += 20
	}
	if systemID != "" {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}
