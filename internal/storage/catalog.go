package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/fireproofed/quotelens/internal/common"
	"github.com/fireproofed/quotelens/internal/model"
)

// maxCatalogRows bounds how many reference items one scope can hold; the
// fuzzy fallback scores every row, so unbounded scopes would make it crawl.
const maxCatalogRows = 1000

// ReferenceItems loads the reference catalog for one scope. Implements the
// similarity matcher's catalog reader.
func (s *SQLiteStorage) ReferenceItems(ctx context.Context, scopeID string) ([]model.ReferenceItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, system_code, trade, unit, typical_rate
		FROM reference_items WHERE scope_id = ? ORDER BY created_at, id LIMIT ?`,
		scopeID, maxCatalogRows)
	if err != nil {
		return nil, fmt.Errorf("failed to query reference items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.ReferenceItem
	for rows.Next() {
		var item model.ReferenceItem
		var systemCode, trade, unit sql.NullString
		if err := rows.Scan(&item.ID, &item.Description, &systemCode, &trade, &unit, &item.TypicalRate); err != nil {
			return nil, fmt.Errorf("failed to scan reference item: %w", err)
		}
		item.SystemCode = systemCode.String
		item.Trade = trade.String
		item.Unit = unit.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reference items: %w", err)
	}

	return items, nil
}

// AddReferenceItems inserts catalog rows under one scope, assigning IDs to
// any item without one. Returns how many rows were inserted.
func (s *SQLiteStorage) AddReferenceItems(ctx context.Context, scopeID string, items []model.ReferenceItem) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if scopeID == "" {
		return 0, fmt.Errorf("scopeID cannot be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, item := range items {
		if item.Description == "" {
			continue
		}
		id := item.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO reference_items (id, scope_id, description, system_code, trade, unit, typical_rate)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, scopeID, item.Description, item.SystemCode, item.Trade, item.Unit, item.TypicalRate)
		if err != nil {
			var sqliteErr sqlite3.Error
			if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
				return 0, fmt.Errorf("%w: reference item %s", common.ErrDuplicateEntry, id)
			}
			return 0, fmt.Errorf("failed to insert reference item: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit reference items: %w", err)
	}

	return inserted, nil
}

// CountReferenceItems returns how many catalog rows a scope holds.
func (s *SQLiteStorage) CountReferenceItems(ctx context.Context, scopeID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reference_items WHERE scope_id = ?`, scopeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reference items: %w", err)
	}
	return count, nil
}
