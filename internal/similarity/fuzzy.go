package similarity

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fireproofed/quotelens/internal/model"
)

// minFuzzyScore is the floor below which a fuzzy candidate is discarded.
const minFuzzyScore = 0.3

// keyTerms are product and rating terms that carry strong signal in this
// domain; a term shared by query and candidate earns a bonus.
var keyTerms = []string{"sc902", "nullifire", "tenmat", "intumescent", "fire", "rating"}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)
var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeText lowercases and collapses punctuation and whitespace.
func normalizeText(text string) string {
	s := strings.ToLower(text)
	s = nonWordRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// fuzzyMatch scores every reference item against the description with a
// deterministic token-overlap heuristic and returns the top candidates.
func fuzzyMatch(description string, items []model.ReferenceItem, limit int) []model.SimilarityMatch {
	normalized := normalizeText(description)
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return nil
	}

	type scoredItem struct {
		item  model.ReferenceItem
		score float64
	}

	scored := make([]scoredItem, 0, len(items))
	for _, item := range items {
		itemNormalized := normalizeText(item.Description)
		itemTokens := strings.Fields(itemNormalized)
		if len(itemTokens) == 0 {
			continue
		}

		common := 0
		for _, t := range tokens {
			for _, it := range itemTokens {
				if t == it {
					common++
					break
				}
			}
		}

		score := float64(common)/float64(len(tokens))*0.5 +
			float64(common)/float64(len(itemTokens))*0.5

		if strings.Contains(itemNormalized, normalized) || strings.Contains(normalized, itemNormalized) {
			score += 0.3
		}

		for _, term := range keyTerms {
			if strings.Contains(normalized, term) && strings.Contains(itemNormalized, term) {
				score += 0.1
			}
		}

		scored = append(scored, scoredItem{item: item, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	matches := make([]model.SimilarityMatch, 0, limit)
	for _, s := range scored {
		if s.score < minFuzzyScore {
			continue
		}
		matches = append(matches, model.SimilarityMatch{
			Description:         s.item.Description,
			SimilarityScore:     s.score,
			SuggestedSystemCode: s.item.SystemCode,
			SuggestedTrade:      s.item.Trade,
			SuggestedUnit:       s.item.Unit,
			ReferenceItemID:     s.item.ID,
		})
		if len(matches) == limit {
			break
		}
	}

	return matches
}
