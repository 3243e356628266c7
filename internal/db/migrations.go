package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: indexes for the storefront's hot lookups.
	`CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id, is_sold)`,
	`CREATE INDEX IF NOT EXISTS idx_inquiries_item ON inquiries(item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_places_city ON places(city_id)`,
}

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
