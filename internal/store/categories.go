package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hkanaan/shamshop/internal/model"
)

// CreateCategory creates a new category.
func CreateCategory(ctx context.Context, db *sqlx.DB, name string) (*model.Category, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO categories (name) VALUES (?)`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting category id: %w", err)
	}

	return GetCategory(ctx, db, id)
}

// GetCategory returns a category by ID.
func GetCategory(ctx context.Context, db *sqlx.DB, id int64) (*model.Category, error) {
	var c model.Category
	err := db.GetContext(ctx, &c,
		`SELECT id, name, created_at FROM categories WHERE id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting category: %w", err)
	}
	return &c, nil
}

// ListCategories returns all categories ordered by name.
func ListCategories(ctx context.Context, db *sqlx.DB) ([]model.Category, error) {
	var categories []model.Category
	err := db.SelectContext(ctx, &categories,
		`SELECT id, name, created_at FROM categories ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory renames a category.
func UpdateCategory(ctx context.Context, db *sqlx.DB, id int64, name string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE categories SET name = ? WHERE id = ?`, name, id,
	)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	return nil
}

// DeleteCategory deletes a category. Fails if any items still reference it.
func DeleteCategory(ctx context.Context, db *sqlx.DB, id int64) error {
	var count int
	err := db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM items WHERE category_id = ? AND deleted_at IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("checking category items: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("cannot delete category: still has %d items", count)
	}

	_, err = db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return nil
}
