package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fireproofed/quotelens/internal/common"
	"github.com/fireproofed/quotelens/internal/config"
	"github.com/fireproofed/quotelens/internal/model"
	"github.com/fireproofed/quotelens/internal/storage"
)

// initStorage opens the database and brings it to the latest schema.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadQuoteSchema reads an extracted quote from a JSON file.
func loadQuoteSchema(path string) (*model.QuoteSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var schema model.QuoteSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, common.NewUserError(fmt.Sprintf("%s is not a valid extracted quote", path), err)
	}
	return &schema, nil
}

// writeJSON writes v as indented JSON to path, or stdout when path is "".
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// itemRecords flattens an extracted schema into storable item records.
func itemRecords(schema *model.QuoteSchema) []model.ItemRecord {
	items := make([]model.ItemRecord, 0, len(schema.LineItems))
	for _, li := range schema.LineItems {
		items = append(items, model.ItemRecord{
			Description: li.Description,
			Category:    li.Trade,
			SystemID:    li.SystemCode,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
			UnitPrice:   li.UnitRate,
			TotalPrice:  li.LineTotal,
			Confidence:  li.Confidence,
		})
	}
	return items
}
