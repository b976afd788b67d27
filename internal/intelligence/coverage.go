package intelligence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/fireproofed/quotelens/internal/model"
)

// detectCoverageGaps finds scope categories quoted by some but not all
// suppliers. Gap detection needs at least two quotes to compare.
func detectCoverageGaps(quotes []model.QuoteRecord) []model.CoverageGap {
	gaps := []model.CoverageGap{}
	if len(quotes) < 2 {
		return gaps
	}

	// category -> suppliers quoting it
	byCategory := make(map[string]map[string]struct{})
	for _, q := range quotes {
		for _, item := range q.Items {
			if item.Category == "" {
				continue
			}
			if byCategory[item.Category] == nil {
				byCategory[item.Category] = make(map[string]struct{})
			}
			byCategory[item.Category][q.SupplierName] = struct{}{}
		}
	}

	for _, category := range sortedKeys(setOfKeys(byCategory)) {
		present := byCategory[category]
		if len(present) == len(quotes) {
			continue
		}

		missing := []string{}
		for _, q := range quotes {
			if _, ok := present[q.SupplierName]; !ok {
				missing = append(missing, q.SupplierName)
			}
		}
		sort.Strings(missing)

		gaps = append(gaps, model.CoverageGap{
			ID:      uuid.NewString(),
			GapType: "category",
			Title:   fmt.Sprintf("%s not quoted by all suppliers", category),
			Description: fmt.Sprintf("%s is quoted by %s but missing from %s",
				category, joinNames(sortedKeys(present)), joinNames(missing)),
			MissingIn:      missing,
			PresentIn:      sortedKeys(present),
			Recommendation: "Confirm whether the missing suppliers excluded this scope or bundled it elsewhere",
		})
	}

	return gaps
}

// detectSystems aggregates matched line items into per-quote system
// groupings, ordered by total value descending.
func detectSystems(quotes []model.QuoteRecord) []model.SystemDetected {
	type bucket struct {
		quoteID       string
		name          string
		count         int
		value         float64
		confidenceSum float64
	}

	order := []string{}
	buckets := make(map[string]*bucket)

	for _, q := range quotes {
		for _, item := range q.Items {
			if item.SystemID == "" {
				continue
			}
			name := item.SystemLabel
			if name == "" {
				name = item.SystemID
			}
			key := q.ID + "\x00" + item.SystemID
			b, ok := buckets[key]
			if !ok {
				b = &bucket{quoteID: q.ID, name: name}
				buckets[key] = b
				order = append(order, key)
			}
			b.count++
			b.value += item.TotalPrice
			b.confidenceSum += item.Confidence
		}
	}

	systems := make([]model.SystemDetected, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		systems = append(systems, model.SystemDetected{
			ID:         uuid.NewString(),
			QuoteID:    b.quoteID,
			SystemName: b.name,
			ItemCount:  b.count,
			TotalValue: b.value,
			Confidence: b.confidenceSum / float64(b.count),
		})
	}

	sort.SliceStable(systems, func(i, j int) bool {
		return systems[i].TotalValue > systems[j].TotalValue
	})
	return systems
}

func setOfKeys[V any](m map[string]V) map[string]struct{} {
	set := make(map[string]struct{}, len(m))
	for k := range m {
		set[k] = struct{}{}
	}
	return set
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
