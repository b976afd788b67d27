package intelligence

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fireproofed/quotelens/internal/model"
)

const (
	insightPriceCompleteness = "price_completeness"
	insightBroadCoverage     = "broad_coverage"
	insightSystemDetail      = "system_detail"
)

// supplierInsights surfaces positive quality signals per supplier:
// fully priced quotes, broad category coverage and detailed system mapping.
func supplierInsights(quotes []model.QuoteRecord) []model.SupplierInsight {
	insights := []model.SupplierInsight{}

	for _, q := range quotes {
		if len(q.Items) == 0 {
			continue
		}

		priced := 0
		categories := make(map[string]struct{})
		systems := make(map[string]struct{})
		for _, item := range q.Items {
			if item.UnitPrice > 0 {
				priced++
			}
			if item.Category != "" {
				categories[item.Category] = struct{}{}
			}
			if item.SystemID != "" {
				systems[item.SystemID] = struct{}{}
			}
		}

		if priced == len(q.Items) {
			insights = append(insights, model.SupplierInsight{
				ID:           uuid.NewString(),
				SupplierName: q.SupplierName,
				InsightType:  insightPriceCompleteness,
				Title:        "Fully priced quote",
				Description:  fmt.Sprintf("%s priced all %d line items", q.SupplierName, len(q.Items)),
			})
		}
		if len(categories) > 5 {
			insights = append(insights, model.SupplierInsight{
				ID:           uuid.NewString(),
				SupplierName: q.SupplierName,
				InsightType:  insightBroadCoverage,
				Title:        "Broad scope coverage",
				Description:  fmt.Sprintf("%s covers %d scope categories", q.SupplierName, len(categories)),
			})
		}
		if len(systems) > 3 {
			insights = append(insights, model.SupplierInsight{
				ID:           uuid.NewString(),
				SupplierName: q.SupplierName,
				InsightType:  insightSystemDetail,
				Title:        "Detailed system breakdown",
				Description:  fmt.Sprintf("%s itemizes %d distinct systems", q.SupplierName, len(systems)),
			})
		}
	}

	return insights
}
