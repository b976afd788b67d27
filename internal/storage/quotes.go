package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fireproofed/quotelens/internal/common"
	"github.com/fireproofed/quotelens/internal/model"
)

// StoredQuote pairs a persisted quote record with its extraction details.
type StoredQuote struct {
	Record    model.QuoteRecord
	ProjectID string
	QuoteDate string
	Currency  string
	Method    string
}

// SaveQuote persists one extracted quote and its line items. The full
// extracted schema is stored as JSON alongside the flattened columns so
// the original extraction can always be recovered. Returns the quote ID.
func (s *SQLiteStorage) SaveQuote(ctx context.Context, projectID string, result *model.ExtractionResult, items []model.ItemRecord) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if result == nil {
		return "", fmt.Errorf("extraction result cannot be nil")
	}

	schema := result.Final()
	raw, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal quote schema: %w", err)
	}

	confidence := 0.0
	if schema.Validation != nil {
		confidence = schema.Validation.ConfidenceScore
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	quoteID := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO quotes (id, project_id, supplier_name, quote_date, currency,
			total_amount, contingency, confidence, extraction_method, raw_schema)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		quoteID, projectID, schema.Metadata.SupplierName, schema.Metadata.QuoteDate,
		schema.Metadata.Currency, schema.Financials.GrandTotal, 0.0,
		confidence, string(result.ExtractionMetadata.Method), string(raw))
	if err != nil {
		return "", fmt.Errorf("failed to insert quote: %w", err)
	}

	for i, item := range items {
		itemID := item.ID
		if itemID == "" {
			itemID = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO quote_items (id, quote_id, position, description, category,
				system_id, system_label, quantity, unit, unit_price, total_price, confidence)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			itemID, quoteID, i, item.Description, item.Category,
			item.SystemID, item.SystemLabel, item.Quantity, item.Unit,
			item.UnitPrice, item.TotalPrice, item.Confidence)
		if err != nil {
			return "", fmt.Errorf("failed to insert quote item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit quote: %w", err)
	}

	return quoteID, nil
}

// QuotesForProject loads every quote for a project as analyzer-ready
// records, items in stored order.
func (s *SQLiteStorage) QuotesForProject(ctx context.Context, projectID string) ([]model.QuoteRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, supplier_name, total_amount, contingency
		FROM quotes WHERE project_id = ? ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.QuoteRecord
	for rows.Next() {
		var r model.QuoteRecord
		if err := rows.Scan(&r.ID, &r.SupplierName, &r.TotalAmount, &r.Contingency); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}

	for i := range records {
		items, err := s.quoteItems(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Items = items
	}

	return records, nil
}

// GetQuote loads one stored quote with its extraction details.
func (s *SQLiteStorage) GetQuote(ctx context.Context, quoteID string) (*StoredQuote, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var sq StoredQuote
	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, supplier_name, quote_date, currency,
			total_amount, contingency, extraction_method
		FROM quotes WHERE id = ?`, quoteID).Scan(
		&sq.Record.ID, &sq.ProjectID, &sq.Record.SupplierName, &sq.QuoteDate,
		&sq.Currency, &sq.Record.TotalAmount, &sq.Record.Contingency, &sq.Method)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quote %s: %w", quoteID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quote: %w", err)
	}

	items, err := s.quoteItems(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	sq.Record.Items = items

	return &sq, nil
}

// GetQuoteSchema recovers the original extracted schema for a quote.
func (s *SQLiteStorage) GetQuoteSchema(ctx context.Context, quoteID string) (*model.QuoteSchema, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT raw_schema FROM quotes WHERE id = ?`, quoteID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quote %s: %w", quoteID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quote schema: %w", err)
	}

	var schema model.QuoteSchema
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		return nil, fmt.Errorf("failed to parse stored schema: %w", err)
	}
	return &schema, nil
}

func (s *SQLiteStorage) quoteItems(ctx context.Context, quoteID string) ([]model.ItemRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, category, system_id, system_label,
			quantity, unit, unit_price, total_price, confidence
		FROM quote_items WHERE quote_id = ? ORDER BY position`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.ItemRecord
	for rows.Next() {
		var item model.ItemRecord
		var category, systemID, systemLabel, unit sql.NullString
		if err := rows.Scan(&item.ID, &item.Description, &category, &systemID, &systemLabel,
			&item.Quantity, &unit, &item.UnitPrice, &item.TotalPrice, &item.Confidence); err != nil {
			return nil, fmt.Errorf("failed to scan quote item: %w", err)
		}
		item.Category = category.String
		item.SystemID = systemID.String
		item.SystemLabel = systemLabel.String
		item.Unit = unit.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quote items: %w", err)
	}

	return items, nil
}
