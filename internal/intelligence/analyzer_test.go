package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fireproofed/quotelens/internal/model"
)

// healthyQuote returns a quote that trips no anomaly checks: every item
// priced and mapped, totals reconciled, contingency carried.
func healthyQuote(id, supplier string) model.QuoteRecord {
	return model.QuoteRecord{
		ID:           id,
		SupplierName: supplier,
		TotalAmount:  3500,
		Contingency:  350,
		Items: []model.ItemRecord{
			{Description: "Fire collar to 100mm PVC pipe", Category: "Plumbing", SystemID: "COLLAR_100", SystemLabel: "Collar 100mm", Quantity: 20, UnitPrice: 50, TotalPrice: 1000, Confidence: 0.95},
			{Description: "Fire damper to 300mm duct", Category: "Mechanical", SystemID: "MECH_DAMPER", SystemLabel: "Fire Damper", Quantity: 10, UnitPrice: 150, TotalPrice: 1500, Confidence: 0.9},
			{Description: "Cable tray penetration seal", Category: "Electrical", SystemID: "ELEC_TRAY", SystemLabel: "Cable Tray Seal", Quantity: 10, UnitPrice: 100, TotalPrice: 1000, Confidence: 0.85},
		},
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	analysis := New(DefaultConfig()).Analyze("proj-1", nil)

	assert.Equal(t, "proj-1", analysis.ProjectID)
	assert.Zero(t, analysis.QuotesAnalyzed)
	assert.False(t, analysis.AnalyzedAt.IsZero())
	assert.NotNil(t, analysis.RedFlags)
	assert.Empty(t, analysis.RedFlags)
	assert.NotNil(t, analysis.CoverageGaps)
	assert.NotNil(t, analysis.SystemsDetected)
	assert.NotNil(t, analysis.SupplierInsights)
	assert.Equal(t, "N/A", analysis.Summary.BestValueSupplier)
	assert.Equal(t, "N/A", analysis.Summary.MostCompleteSupplier)
}

func TestAnalyze_SingleHealthyQuote(t *testing.T) {
	analysis := New(DefaultConfig()).Analyze("proj-1", []model.QuoteRecord{healthyQuote("q1", "Apex")})

	assert.Equal(t, 1, analysis.QuotesAnalyzed)
	assert.Empty(t, analysis.RedFlags)
	assert.Empty(t, analysis.CoverageGaps, "gap detection needs at least two quotes")
	assert.Len(t, analysis.SystemsDetected, 3)

	assert.Equal(t, "Apex", analysis.Summary.BestValueSupplier)
	assert.Equal(t, "Apex", analysis.Summary.MostCompleteSupplier)
	assert.InDelta(t, 100.0, analysis.Summary.CoverageScore, 0.001)
	assert.InDelta(t, 0.4+0.3+0.3*0.9, analysis.Summary.AverageQualityScore, 0.001)
}

func TestAnalyze_SummaryPicksSuppliers(t *testing.T) {
	cheap := healthyQuote("q1", "Budget Fire")
	cheap.TotalAmount = 2000
	cheap.Items = cheap.Items[:1]

	thorough := healthyQuote("q2", "Apex")

	analysis := New(DefaultConfig()).Analyze("proj-1", []model.QuoteRecord{thorough, cheap})

	assert.Equal(t, "Budget Fire", analysis.Summary.BestValueSupplier)
	assert.Equal(t, "Apex", analysis.Summary.MostCompleteSupplier)
}

func TestCheckPriceDiscrepancy(t *testing.T) {
	a := New(DefaultConfig())

	quote := func(total float64) *model.QuoteRecord {
		return &model.QuoteRecord{
			ID: "q1", SupplierName: "Apex", TotalAmount: total,
			Items: []model.ItemRecord{{TotalPrice: 600}, {TotalPrice: 400}},
		}
	}

	t.Run("within tolerance", func(t *testing.T) {
		_, ok := a.checkPriceDiscrepancy(quote(1050))
		assert.False(t, ok)
	})

	t.Run("moderate gap is high", func(t *testing.T) {
		flag, ok := a.checkPriceDiscrepancy(quote(1180))
		require.True(t, ok)
		assert.Equal(t, model.SeverityHigh, flag.Severity)
		assert.Equal(t, flagCategoryPricing, flag.Category)
		assert.Contains(t, flag.Description, "$1000.00")
	})

	t.Run("large gap is critical", func(t *testing.T) {
		flag, ok := a.checkPriceDiscrepancy(quote(1500))
		require.True(t, ok)
		assert.Equal(t, model.SeverityCritical, flag.Severity)
	})

	t.Run("zero total skipped", func(t *testing.T) {
		_, ok := a.checkPriceDiscrepancy(quote(0))
		assert.False(t, ok)
	})
}

func TestCheckEmptyQuote(t *testing.T) {
	flag, ok := checkEmptyQuote(&model.QuoteRecord{ID: "q1", SupplierName: "Apex"})
	require.True(t, ok)
	assert.Equal(t, model.SeverityCritical, flag.Severity)
	assert.Equal(t, flagCategoryScope, flag.Category)
	assert.Equal(t, "q1", flag.QuoteID)

	_, ok = checkEmptyQuote(&model.QuoteRecord{Items: []model.ItemRecord{{}}})
	assert.False(t, ok)
}

func TestCheckUnpricedItems(t *testing.T) {
	quote := func(unpriced, priced int) *model.QuoteRecord {
		q := &model.QuoteRecord{ID: "q1", SupplierName: "Apex"}
		for range unpriced {
			q.Items = append(q.Items, model.ItemRecord{})
		}
		for range priced {
			q.Items = append(q.Items, model.ItemRecord{UnitPrice: 10})
		}
		return q
	}

	t.Run("all priced", func(t *testing.T) {
		_, ok := checkUnpricedItems(quote(0, 10))
		assert.False(t, ok)
	})

	t.Run("small share is medium", func(t *testing.T) {
		flag, ok := checkUnpricedItems(quote(1, 9))
		require.True(t, ok)
		assert.Equal(t, model.SeverityMedium, flag.Severity)
		assert.Contains(t, flag.Description, "1 of 10")
	})

	t.Run("large share is high", func(t *testing.T) {
		flag, ok := checkUnpricedItems(quote(2, 8))
		require.True(t, ok)
		assert.Equal(t, model.SeverityHigh, flag.Severity)
	})
}

func TestCheckLowConfidenceItems(t *testing.T) {
	a := New(DefaultConfig())

	quote := func(low, high int) *model.QuoteRecord {
		q := &model.QuoteRecord{ID: "q1", SupplierName: "Apex"}
		for range low {
			q.Items = append(q.Items, model.ItemRecord{Confidence: 0.4})
		}
		for range high {
			q.Items = append(q.Items, model.ItemRecord{Confidence: 0.9})
		}
		return q
	}

	t.Run("at threshold is fine", func(t *testing.T) {
		_, ok := a.checkLowConfidenceItems(quote(1, 4))
		assert.False(t, ok)
	})

	t.Run("above threshold flags", func(t *testing.T) {
		flag, ok := a.checkLowConfidenceItems(quote(2, 3))
		require.True(t, ok)
		assert.Equal(t, model.SeverityMedium, flag.Severity)
		assert.Equal(t, flagCategoryQuality, flag.Category)
		assert.Contains(t, flag.Description, "2 of 5")
	})
}

func TestCheckMissingContingency(t *testing.T) {
	flag, ok := checkMissingContingency(&model.QuoteRecord{ID: "q1", SupplierName: "Apex"})
	require.True(t, ok)
	assert.Equal(t, model.SeverityLow, flag.Severity)
	assert.Equal(t, flagCategoryCommercial, flag.Category)

	_, ok = checkMissingContingency(&model.QuoteRecord{Contingency: 100})
	assert.False(t, ok)
}

func TestDetectCoverageGaps(t *testing.T) {
	t.Run("needs two quotes", func(t *testing.T) {
		gaps := detectCoverageGaps([]model.QuoteRecord{healthyQuote("q1", "Apex")})
		assert.NotNil(t, gaps)
		assert.Empty(t, gaps)
	})

	t.Run("partial coverage is a gap", func(t *testing.T) {
		full := healthyQuote("q1", "Apex")
		partial := healthyQuote("q2", "Budget Fire")
		partial.Items = partial.Items[:2] // drops the Electrical item

		gaps := detectCoverageGaps([]model.QuoteRecord{full, partial})

		require.Len(t, gaps, 1)
		gap := gaps[0]
		assert.Equal(t, "category", gap.GapType)
		assert.Contains(t, gap.Title, "Electrical")
		assert.Equal(t, []string{"Budget Fire"}, gap.MissingIn)
		assert.Equal(t, []string{"Apex"}, gap.PresentIn)
	})

	t.Run("shared coverage is clean", func(t *testing.T) {
		gaps := detectCoverageGaps([]model.QuoteRecord{
			healthyQuote("q1", "Apex"),
			healthyQuote("q2", "Budget Fire"),
		})
		assert.Empty(t, gaps)
	})
}

func TestDetectSystems(t *testing.T) {
	quotes := []model.QuoteRecord{{
		ID: "q1",
		Items: []model.ItemRecord{
			{SystemID: "COLLAR_100", SystemLabel: "Collar 100mm", TotalPrice: 200, Confidence: 0.8},
			{SystemID: "COLLAR_100", SystemLabel: "Collar 100mm", TotalPrice: 300, Confidence: 1.0},
			{SystemID: "MECH_DAMPER", TotalPrice: 2000, Confidence: 0.7},
			{Description: "unmatched item", TotalPrice: 999},
		},
	}}

	systems := detectSystems(quotes)

	require.Len(t, systems, 2)

	// Ordered by total value descending
	assert.Equal(t, "MECH_DAMPER", systems[0].SystemName, "falls back to the system id when no label")
	assert.InDelta(t, 2000, systems[0].TotalValue, 0.001)

	assert.Equal(t, "Collar 100mm", systems[1].SystemName)
	assert.Equal(t, 2, systems[1].ItemCount)
	assert.InDelta(t, 500, systems[1].TotalValue, 0.001)
	assert.InDelta(t, 0.9, systems[1].Confidence, 0.001)
	assert.Equal(t, "q1", systems[1].QuoteID)
}

func TestSupplierInsights(t *testing.T) {
	t.Run("fully priced", func(t *testing.T) {
		insights := supplierInsights([]model.QuoteRecord{healthyQuote("q1", "Apex")})
		require.Len(t, insights, 1)
		assert.Equal(t, insightPriceCompleteness, insights[0].InsightType)
		assert.Equal(t, "Apex", insights[0].SupplierName)
	})

	t.Run("broad coverage and system detail", func(t *testing.T) {
		q := model.QuoteRecord{ID: "q1", SupplierName: "Apex"}
		categories := []string{"Plumbing", "Mechanical", "Electrical", "Fire", "Data", "Gas"}
		for i, c := range categories {
			q.Items = append(q.Items, model.ItemRecord{
				Category:  c,
				SystemID:  "SYS_" + c,
				UnitPrice: float64(10 * (i + 1)),
			})
		}

		insights := supplierInsights([]model.QuoteRecord{q})

		types := make([]string, 0, len(insights))
		for _, in := range insights {
			types = append(types, in.InsightType)
		}
		assert.Contains(t, types, insightPriceCompleteness)
		assert.Contains(t, types, insightBroadCoverage)
		assert.Contains(t, types, insightSystemDetail)
	})

	t.Run("empty quote skipped", func(t *testing.T) {
		insights := supplierInsights([]model.QuoteRecord{{ID: "q1", SupplierName: "Apex"}})
		assert.Empty(t, insights)
	})
}

func TestCoverageScore(t *testing.T) {
	t.Run("no categories", func(t *testing.T) {
		assert.Zero(t, coverageScore([]model.QuoteRecord{{ID: "q1"}}))
	})

	t.Run("partial coverage averages", func(t *testing.T) {
		full := healthyQuote("q1", "Apex")
		partial := healthyQuote("q2", "Budget")
		partial.Items = partial.Items[:1] // covers 1 of the 3 categories

		score := coverageScore([]model.QuoteRecord{full, partial})
		assert.InDelta(t, (100.0+100.0/3.0)/2.0, score, 0.001)
	})
}

func TestQualityScore(t *testing.T) {
	a := New(DefaultConfig())

	t.Run("no items", func(t *testing.T) {
		assert.Zero(t, a.qualityScore([]model.QuoteRecord{{ID: "q1"}}))
	})

	t.Run("blended", func(t *testing.T) {
		quotes := []model.QuoteRecord{{
			ID: "q1",
			Items: []model.ItemRecord{
				{UnitPrice: 10, SystemID: "S1", Confidence: 1.0},
				{Confidence: 0.5},
			},
		}}
		// half priced, half mapped, mean confidence 0.75
		assert.InDelta(t, 0.4*0.5+0.3*0.5+0.3*0.75, a.qualityScore(quotes), 0.001)
	})
}
