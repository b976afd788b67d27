package match

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fireproofed/quotelens/internal/model"
)

// Factor weights. A perfect match on every factor scores 90; confidence is
// the score over that maximum, clamped to 1.
const (
	weightService  = 30
	weightSize     = 25
	weightFRR      = 20
	weightSubclass = 15

	maxScore = 90

	// minMatchScore is the floor below which no template is assigned.
	minMatchScore = 20
)

// Input is the attribute view of a line item the matcher scores against
// the catalog.
type Input struct {
	Service  string
	Size     string
	FRR      string
	Subclass string
}

// Config holds the matcher's tunables.
type Config struct {
	// ReviewThreshold is the confidence below which a match is flagged
	// for human review.
	ReviewThreshold float64
}

// DefaultConfig returns the default matcher configuration.
func DefaultConfig() Config {
	return Config{ReviewThreshold: 0.7}
}

// Matcher scores line items against a template catalog. It is deterministic
// and safe for concurrent use.
type Matcher struct {
	templates []Template
	cfg       Config
}

// New creates a matcher over the given catalog. A nil or empty catalog
// falls back to the built-in templates.
func New(templates []Template, cfg Config) *Matcher {
	if len(templates) == 0 {
		templates = DefaultTemplates
	}
	if cfg.ReviewThreshold <= 0 {
		cfg.ReviewThreshold = DefaultConfig().ReviewThreshold
	}
	return &Matcher{templates: templates, cfg: cfg}
}

// Match scores the item against every template and returns the best
// assignment. Ties keep the first-seen template. When no template reaches
// the minimum score the result carries no system and lists the absent
// factors in priority order.
func (m *Matcher) Match(item Input) model.MatchResult {
	var (
		best        *Template
		bestScore   int
		bestMatched []string
	)

	size, hasSize := parseSize(item.Size)
	frr, hasFRR := parseFRR(item.FRR)

	for i := range m.templates {
		tmpl := &m.templates[i]
		score := 0
		var matched []string

		if item.Service != "" && tmpl.Service != "" && mutualContains(item.Service, tmpl.Service) {
			score += weightService
			matched = append(matched, "service: "+tmpl.Service)
		}

		if hasSize && tmpl.HasSize && size >= tmpl.SizeMin && size <= tmpl.SizeMax {
			score += weightSize
			matched = append(matched, "size: "+item.Size)
		}

		if hasFRR && tmpl.FRR != 0 && frr == tmpl.FRR {
			score += weightFRR
			matched = append(matched, "frr: "+strconv.Itoa(tmpl.FRR))
		}

		if item.Subclass != "" && strings.Contains(strings.ToLower(tmpl.Label), strings.ToLower(item.Subclass)) {
			score += weightSubclass
			matched = append(matched, "subclass: "+item.Subclass)
		}

		if score > bestScore {
			best = tmpl
			bestScore = score
			bestMatched = matched
		}
	}

	if best == nil || bestScore < minMatchScore {
		return model.MatchResult{
			NeedsReview:   true,
			MissedFactors: missedFactors(item),
		}
	}

	confidence := float64(bestScore) / maxScore
	if confidence > 1 {
		confidence = 1
	}

	return model.MatchResult{
		SystemID:       best.ID,
		SystemLabel:    best.Label,
		Confidence:     confidence,
		NeedsReview:    confidence < m.cfg.ReviewThreshold,
		MatchedFactors: bestMatched,
		MissedFactors:  missedAgainst(item, best),
	}
}

// mutualContains reports whether either lowercased string contains the other.
func mutualContains(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

var firstNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// parseSize pulls the leading numeric value out of a mined size string
// such as "150mm" or "100 x 50 mm".
func parseSize(size string) (float64, bool) {
	if size == "" {
		return 0, false
	}
	m := firstNumberRe.FindString(size)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var frrNumberRe = regexp.MustCompile(`\d+`)

// parseFRR extracts the integrity rating from a mined FRR string. Triplet
// notations like "-/120/120" carry the rating in their middle position, so
// the largest number wins over the first.
func parseFRR(frr string) (int, bool) {
	if frr == "" {
		return 0, false
	}
	matches := frrNumberRe.FindAllString(frr, -1)
	if len(matches) == 0 {
		return 0, false
	}
	best := 0
	for _, m := range matches {
		if v, err := strconv.Atoi(m); err == nil && v > best {
			best = v
		}
	}
	if best == 0 {
		return 0, false
	}
	return best, true
}

// missedFactors lists the absent attributes of an unmatched item in
// service, size, FRR priority order.
func missedFactors(item Input) []string {
	var missed []string
	if item.Service == "" {
		missed = append(missed, "service")
	}
	if item.Size == "" {
		missed = append(missed, "size")
	}
	if item.FRR == "" {
		missed = append(missed, "frr")
	}
	if len(missed) == 0 {
		missed = append(missed, "no template scored high enough")
	}
	return missed
}

// missedAgainst lists the factors of the winning template the item did not
// satisfy.
func missedAgainst(item Input, tmpl *Template) []string {
	var missed []string

	if tmpl.Service != "" && (item.Service == "" || !mutualContains(item.Service, tmpl.Service)) {
		missed = append(missed, "service: "+tmpl.Service)
	}

	size, hasSize := parseSize(item.Size)
	if tmpl.HasSize && (!hasSize || size < tmpl.SizeMin || size > tmpl.SizeMax) {
		missed = append(missed, "size range")
	}

	frr, hasFRR := parseFRR(item.FRR)
	if tmpl.FRR != 0 && (!hasFRR || frr != tmpl.FRR) {
		missed = append(missed, "frr: "+strconv.Itoa(tmpl.FRR))
	}

	return missed
}
