package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hkanaan/shamshop/internal/model"
)

// CreateColor adds a color variant to an item. (item, name) pairs are unique;
// duplicates fail with a constraint error.
func CreateColor(ctx context.Context, db *sqlx.DB, itemID int64, name string) (*model.Color, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO item_colors (item_id, name) VALUES (?, ?)`,
		itemID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating color: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting color id: %w", err)
	}

	return GetColor(ctx, db, id)
}

// GetColor returns a color by ID.
func GetColor(ctx context.Context, db *sqlx.DB, id int64) (*model.Color, error) {
	var c model.Color
	err := db.GetContext(ctx, &c,
		`SELECT id, item_id, name, is_sold_out, created_at
		 FROM item_colors WHERE id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting color: %w", err)
	}
	return &c, nil
}

// ListColors returns all colors of an item ordered by name.
func ListColors(ctx context.Context, db *sqlx.DB, itemID int64) ([]model.Color, error) {
	var colors []model.Color
	err := db.SelectContext(ctx, &colors,
		`SELECT id, item_id, name, is_sold_out, created_at
		 FROM item_colors WHERE item_id = ? ORDER BY name`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing colors: %w", err)
	}
	return colors, nil
}

// ListColorsWithImages returns an item's colors ordered by name, each with its
// image set in display order. This is the one eager cross-entity read the
// detail page needs, so the gallery can be composed without further queries.
func ListColorsWithImages(ctx context.Context, db *sqlx.DB, itemID int64) ([]model.Color, error) {
	colors, err := ListColors(ctx, db, itemID)
	if err != nil {
		return nil, err
	}
	if len(colors) == 0 {
		return colors, nil
	}

	var images []model.ColorImage
	err = db.SelectContext(ctx, &images,
		`SELECT ci.id, ci.color_id, ci.image_mime, ci.created_at
		 FROM color_images ci
		 JOIN item_colors c ON c.id = ci.color_id
		 WHERE c.item_id = ?
		 ORDER BY ci.created_at, ci.id`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing color images: %w", err)
	}

	byColor := make(map[int64][]model.ColorImage, len(colors))
	for _, img := range images {
		byColor[img.ColorID] = append(byColor[img.ColorID], img)
	}
	for i := range colors {
		colors[i].Images = byColor[colors[i].ID]
	}
	return colors, nil
}

// UpdateColor updates a color's name and sold-out flag.
func UpdateColor(ctx context.Context, db *sqlx.DB, id int64, name string, isSoldOut bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE item_colors SET name = ?, is_sold_out = ? WHERE id = ?`,
		name, isSoldOut, id,
	)
	if err != nil {
		return fmt.Errorf("updating color: %w", err)
	}
	return nil
}

// DeleteColor removes a color and (via cascade) its images.
func DeleteColor(ctx context.Context, db *sqlx.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM item_colors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting color: %w", err)
	}
	return nil
}

// AddColorImage appends an image to a color's set. Display order follows
// creation order.
func AddColorImage(ctx context.Context, db *sqlx.DB, colorID int64, image []byte, mime string) (*model.ColorImage, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO color_images (color_id, image, image_mime) VALUES (?, ?, ?)`,
		colorID, image, mime,
	)
	if err != nil {
		return nil, fmt.Errorf("adding color image: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting color image id: %w", err)
	}

	var img model.ColorImage
	err = db.GetContext(ctx, &img,
		`SELECT id, color_id, image_mime, created_at FROM color_images WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("getting color image: %w", err)
	}
	return &img, nil
}

// GetColorImage returns a color image's bytes and MIME type.
func GetColorImage(ctx context.Context, db *sqlx.DB, id int64) ([]byte, string, error) {
	var row struct {
		Image []byte `db:"image"`
		Mime  string `db:"image_mime"`
	}
	err := db.GetContext(ctx, &row,
		`SELECT image, image_mime FROM color_images WHERE id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting color image: %w", err)
	}
	return row.Image, row.Mime, nil
}

// DeleteColorImage removes one image from a color's set.
func DeleteColorImage(ctx context.Context, db *sqlx.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM color_images WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting color image: %w", err)
	}
	return nil
}
