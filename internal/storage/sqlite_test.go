package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fireproofed/quotelens/internal/common"
	"github.com/fireproofed/quotelens/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func testExtractionResult(supplier string, total float64) *model.ExtractionResult {
	return &model.ExtractionResult{
		Primary: &model.QuoteSchema{
			Metadata: model.QuoteMetadata{
				SupplierName: supplier,
				QuoteDate:    "2026-07-01",
				Currency:     "NZD",
			},
			LineItems: []model.LineItem{
				{Description: "Fire collar to 100mm PVC pipe", Quantity: 10, Unit: "ea", UnitRate: total / 10, LineTotal: total},
			},
			Financials: model.Financials{Subtotal: total, GrandTotal: total, Currency: "NZD"},
			Validation: &model.ValidationResult{IsValid: true, ConfidenceScore: 0.92},
		},
		ExtractionMetadata: model.ExtractionMetadata{Method: model.MethodPrimary},
	}
}

func testItems(n int) []model.ItemRecord {
	items := make([]model.ItemRecord, n)
	for i := range items {
		items[i] = model.ItemRecord{
			Description: "Fire collar to 100mm PVC pipe",
			Category:    "Plumbing",
			SystemID:    "COLLAR_100",
			SystemLabel: "Collar 100mm",
			Quantity:    10,
			Unit:        "ea",
			UnitPrice:   50,
			TotalPrice:  500,
			Confidence:  0.9,
		}
	}
	return items
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage(""); err == nil {
		t.Error("Expected error for empty database path")
	}
}

func TestNewSQLiteStorage_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage in nested directory: %v", err)
	}
	_ = store.Close()
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	// Running migrations again against a current schema must be a no-op
	if err := store.Migrate(context.Background()); err != nil {
		t.Errorf("Second migration run failed: %v", err)
	}
}

func TestSaveQuote_RoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	result := testExtractionResult("Apex Passive Fire", 500)
	quoteID, err := store.SaveQuote(ctx, "proj-1", result, testItems(3))
	if err != nil {
		t.Fatalf("Failed to save quote: %v", err)
	}
	if quoteID == "" {
		t.Fatal("Expected a non-empty quote ID")
	}

	sq, err := store.GetQuote(ctx, quoteID)
	if err != nil {
		t.Fatalf("Failed to load quote: %v", err)
	}
	if sq.Record.SupplierName != "Apex Passive Fire" {
		t.Errorf("Supplier = %q, want %q", sq.Record.SupplierName, "Apex Passive Fire")
	}
	if sq.ProjectID != "proj-1" {
		t.Errorf("ProjectID = %q, want proj-1", sq.ProjectID)
	}
	if sq.Method != "primary" {
		t.Errorf("Method = %q, want primary", sq.Method)
	}
	if sq.Record.TotalAmount != 500 {
		t.Errorf("TotalAmount = %v, want 500", sq.Record.TotalAmount)
	}
	if len(sq.Record.Items) != 3 {
		t.Fatalf("Items = %d, want 3", len(sq.Record.Items))
	}
	item := sq.Record.Items[0]
	if item.Category != "Plumbing" || item.SystemID != "COLLAR_100" || item.Unit != "ea" {
		t.Errorf("Item fields not preserved: %+v", item)
	}
}

func TestSaveQuote_NilResult(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	if _, err := store.SaveQuote(context.Background(), "proj-1", nil, nil); err == nil {
		t.Error("Expected error for nil extraction result")
	}
}

func TestGetQuote_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetQuote(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetQuoteSchema(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	result := testExtractionResult("Apex Passive Fire", 500)
	quoteID, err := store.SaveQuote(ctx, "proj-1", result, nil)
	if err != nil {
		t.Fatalf("Failed to save quote: %v", err)
	}

	schema, err := store.GetQuoteSchema(ctx, quoteID)
	if err != nil {
		t.Fatalf("Failed to recover schema: %v", err)
	}
	if schema.Metadata.SupplierName != "Apex Passive Fire" {
		t.Errorf("Recovered supplier = %q", schema.Metadata.SupplierName)
	}
	if len(schema.LineItems) != 1 {
		t.Errorf("Recovered line items = %d, want 1", len(schema.LineItems))
	}
	if schema.Validation == nil || schema.Validation.ConfidenceScore != 0.92 {
		t.Errorf("Validation not preserved: %+v", schema.Validation)
	}

	if _, err := store.GetQuoteSchema(ctx, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing schema, got %v", err)
	}
}

func TestQuotesForProject(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.SaveQuote(ctx, "proj-1", testExtractionResult("Apex Passive Fire", 500), testItems(2)); err != nil {
		t.Fatalf("Failed to save first quote: %v", err)
	}
	if _, err := store.SaveQuote(ctx, "proj-1", testExtractionResult("Budget Fire", 400), testItems(1)); err != nil {
		t.Fatalf("Failed to save second quote: %v", err)
	}
	if _, err := store.SaveQuote(ctx, "proj-2", testExtractionResult("Other", 100), nil); err != nil {
		t.Fatalf("Failed to save unrelated quote: %v", err)
	}

	records, err := store.QuotesForProject(ctx, "proj-1")
	if err != nil {
		t.Fatalf("Failed to load project quotes: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Quotes = %d, want 2", len(records))
	}
	itemCounts := map[string]int{}
	for _, r := range records {
		itemCounts[r.SupplierName] = len(r.Items)
	}
	if itemCounts["Apex Passive Fire"] != 2 || itemCounts["Budget Fire"] != 1 {
		t.Errorf("Item counts = %v, want Apex 2 and Budget 1", itemCounts)
	}

	empty, err := store.QuotesForProject(ctx, "proj-none")
	if err != nil {
		t.Fatalf("Unexpected error for empty project: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no quotes for unknown project, got %d", len(empty))
	}
}

func TestReferenceItems_RoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	items := []model.ReferenceItem{
		{Description: "Fire collar to 100mm uPVC pipe", SystemCode: "COLLAR_100", Trade: "Plumbing", Unit: "ea", TypicalRate: 45},
		{Description: "Batt and sealant to cable tray", SystemCode: "BATT_SEAL", Trade: "Electrical", Unit: "ea", TypicalRate: 85},
		{Description: ""}, // skipped
	}

	inserted, err := store.AddReferenceItems(ctx, "scope-1", items)
	if err != nil {
		t.Fatalf("Failed to add reference items: %v", err)
	}
	if inserted != 2 {
		t.Errorf("Inserted = %d, want 2 (blank descriptions skipped)", inserted)
	}

	loaded, err := store.ReferenceItems(ctx, "scope-1")
	if err != nil {
		t.Fatalf("Failed to load reference items: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Loaded = %d, want 2", len(loaded))
	}
	byDescription := map[string]model.ReferenceItem{}
	for _, item := range loaded {
		if item.ID == "" {
			t.Error("Expected an assigned ID")
		}
		byDescription[item.Description] = item
	}
	if byDescription["Fire collar to 100mm uPVC pipe"].SystemCode != "COLLAR_100" {
		t.Errorf("System code not preserved: %+v", byDescription)
	}
	if byDescription["Batt and sealant to cable tray"].TypicalRate != 85 {
		t.Errorf("TypicalRate not preserved: %+v", byDescription)
	}

	count, err := store.CountReferenceItems(ctx, "scope-1")
	if err != nil {
		t.Fatalf("Failed to count reference items: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}

	other, err := store.ReferenceItems(ctx, "scope-other")
	if err != nil {
		t.Fatalf("Unexpected error for unknown scope: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("Expected empty catalog for unknown scope, got %d", len(other))
	}
}

func TestAddReferenceItems_EmptyScope(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	if _, err := store.AddReferenceItems(context.Background(), "", testReferenceItems(1)); err == nil {
		t.Error("Expected error for empty scope ID")
	}
}

func TestAddReferenceItems_DuplicateID(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	item := model.ReferenceItem{ID: "ref-001", Description: "Fire damper to 300mm duct", Unit: "ea"}

	if _, err := store.AddReferenceItems(context.Background(), "region-a", []model.ReferenceItem{item}); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	_, err := store.AddReferenceItems(context.Background(), "region-a", []model.ReferenceItem{item})
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry, got %v", err)
	}
}

func testReferenceItems(n int) []model.ReferenceItem {
	items := make([]model.ReferenceItem, n)
	for i := range items {
		items[i] = model.ReferenceItem{Description: "Fire damper to 300mm duct", Unit: "ea"}
	}
	return items
}

func TestStorage_CancelledContext(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.QuotesForProject(ctx, "proj-1"); err == nil {
		t.Error("Expected error for cancelled context")
	}
	if _, err := store.SaveQuote(ctx, "proj-1", testExtractionResult("Apex", 100), nil); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
