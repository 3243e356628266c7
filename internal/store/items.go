package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/hkanaan/shamshop/internal/model"
)

const itemColumns = `i.id, i.category_id, i.name, COALESCE(i.description, '') AS description,
	i.price, COALESCE(i.image_mime, '') AS image_mime, i.is_sold, i.created_by,
	i.created_at, i.updated_at, i.deleted_at, c.name AS category_name`

// ItemFilter narrows ListItems results. Zero values mean "no filter".
type ItemFilter struct {
	Query       string // substring match on name or description
	CategoryID  int64
	IncludeSold bool
}

// CreateItem creates a new item listing.
func CreateItem(ctx context.Context, db *sqlx.DB, categoryID int64, name, description string, price float64, createdBy int64) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (category_id, name, description, price, created_by)
		 VALUES (?, ?, ?, ?, ?)`,
		categoryID, name, description, price, createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, including soft-deleted ones (inquiries keep
// referencing them).
func GetItem(ctx context.Context, db *sqlx.DB, id int64) (*model.Item, error) {
	var item model.Item
	err := db.GetContext(ctx, &item,
		`SELECT `+itemColumns+`
		 FROM items i JOIN categories c ON c.id = i.category_id
		 WHERE i.id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return &item, nil
}

// ListItems returns non-deleted items matching the filter, newest first.
// Sold items are excluded unless the filter says otherwise.
func ListItems(ctx context.Context, db *sqlx.DB, f ItemFilter) ([]model.Item, error) {
	conditions := []string{"i.deleted_at IS NULL"}
	var args []any

	if !f.IncludeSold {
		conditions = append(conditions, "i.is_sold = 0")
	}
	if f.CategoryID != 0 {
		conditions = append(conditions, "i.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.Query != "" {
		conditions = append(conditions, "(i.name LIKE ? OR i.description LIKE ?)")
		pattern := "%" + f.Query + "%"
		args = append(args, pattern, pattern)
	}

	query := `SELECT ` + itemColumns + `
		 FROM items i JOIN categories c ON c.id = i.category_id
		 WHERE ` + strings.Join(conditions, " AND ") + `
		 ORDER BY i.created_at DESC, i.id DESC`

	var items []model.Item
	if err := db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// ListRelatedItems returns up to limit unsold items from the same category,
// excluding the item itself.
func ListRelatedItems(ctx context.Context, db *sqlx.DB, item *model.Item, limit int) ([]model.Item, error) {
	var items []model.Item
	err := db.SelectContext(ctx, &items,
		`SELECT `+itemColumns+`
		 FROM items i JOIN categories c ON c.id = i.category_id
		 WHERE i.category_id = ? AND i.id != ? AND i.is_sold = 0 AND i.deleted_at IS NULL
		 ORDER BY i.created_at DESC, i.id DESC
		 LIMIT ?`,
		item.CategoryID, item.ID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing related items: %w", err)
	}
	return items, nil
}

// UpdateItem updates an item's listing fields.
func UpdateItem(ctx context.Context, db *sqlx.DB, id int64, name, description string, price float64, isSold bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, price = ?, is_sold = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		name, description, price, isSold, id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// DeleteItem soft-deletes an item.
func DeleteItem(ctx context.Context, db *sqlx.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// SetItemImage sets an item's primary image.
func SetItemImage(ctx context.Context, db *sqlx.DB, id int64, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns an item's primary image bytes and MIME type.
func GetItemImage(ctx context.Context, db *sqlx.DB, id int64) ([]byte, string, error) {
	var row struct {
		Image []byte         `db:"image"`
		Mime  sql.NullString `db:"image_mime"`
	}
	err := db.GetContext(ctx, &row,
		`SELECT image, image_mime FROM items WHERE id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return row.Image, row.Mime.String, nil
}
