package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hkanaan/shamshop/internal/model"
)

const inquiryColumns = `q.id, q.item_id, q.color_id, q.city_id, q.place_id,
	q.customer_name, q.customer_phone, COALESCE(q.message, '') AS message,
	q.is_contacted, q.created_at,
	i.name AS item_name,
	COALESCE(col.name, '') AS color_name,
	COALESCE(ct.name, '') AS city_name,
	COALESCE(p.name, '') AS place_name`

const inquiryJoins = `FROM inquiries q
	JOIN items i ON i.id = q.item_id
	LEFT JOIN item_colors col ON col.id = q.color_id
	LEFT JOIN cities ct ON ct.id = q.city_id
	LEFT JOIN places p ON p.id = q.place_id`

// CreateInquiry persists a customer inquiry. The row is insert-once: the
// creation timestamp is server-assigned and is_contacted starts false.
func CreateInquiry(ctx context.Context, db *sqlx.DB, inq *model.Inquiry) (*model.Inquiry, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO inquiries (item_id, color_id, city_id, place_id, customer_name, customer_phone, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inq.ItemID, inq.ColorID, inq.CityID, inq.PlaceID,
		inq.CustomerName, inq.CustomerPhone, inq.Message,
	)
	if err != nil {
		return nil, fmt.Errorf("creating inquiry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting inquiry id: %w", err)
	}

	return GetInquiry(ctx, db, id)
}

// GetInquiry returns an inquiry by ID with its display names joined in.
func GetInquiry(ctx context.Context, db *sqlx.DB, id int64) (*model.Inquiry, error) {
	var inq model.Inquiry
	err := db.GetContext(ctx, &inq,
		`SELECT `+inquiryColumns+` `+inquiryJoins+` WHERE q.id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting inquiry: %w", err)
	}
	return &inq, nil
}

// ListInquiries returns inquiries newest first, optionally filtered by
// contacted state.
func ListInquiries(ctx context.Context, db *sqlx.DB, contacted *bool) ([]model.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` ` + inquiryJoins
	var args []any
	if contacted != nil {
		query += ` WHERE q.is_contacted = ?`
		args = append(args, *contacted)
	}
	query += ` ORDER BY q.created_at DESC, q.id DESC`

	var inquiries []model.Inquiry
	if err := db.SelectContext(ctx, &inquiries, query, args...); err != nil {
		return nil, fmt.Errorf("listing inquiries: %w", err)
	}
	return inquiries, nil
}

// ListItemInquiries returns all inquiries for one item, newest first.
func ListItemInquiries(ctx context.Context, db *sqlx.DB, itemID int64) ([]model.Inquiry, error) {
	var inquiries []model.Inquiry
	err := db.SelectContext(ctx, &inquiries,
		`SELECT `+inquiryColumns+` `+inquiryJoins+`
		 WHERE q.item_id = ?
		 ORDER BY q.created_at DESC, q.id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item inquiries: %w", err)
	}
	return inquiries, nil
}

// SetInquiryContacted flips the only post-creation mutable field.
func SetInquiryContacted(ctx context.Context, db *sqlx.DB, id int64, contacted bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE inquiries SET is_contacted = ? WHERE id = ?`, contacted, id,
	)
	if err != nil {
		return fmt.Errorf("setting inquiry contacted: %w", err)
	}
	return nil
}
