package model

import "time"

// Inquiry is a customer's purchase request for an item. Rows are created once
// at submission time; afterwards only IsContacted is mutated by staff.
type Inquiry struct {
	ID            int64     `db:"id" json:"id"`
	ItemID        int64     `db:"item_id" json:"item_id"`
	ColorID       *int64    `db:"color_id" json:"color_id,omitempty"`
	CityID        *int64    `db:"city_id" json:"city_id,omitempty"`
	PlaceID       *int64    `db:"place_id" json:"place_id,omitempty"`
	CustomerName  string    `db:"customer_name" json:"customer_name"`
	CustomerPhone string    `db:"customer_phone" json:"customer_phone"`
	Message       string    `db:"message" json:"message,omitempty"`
	IsContacted   bool      `db:"is_contacted" json:"is_contacted"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	// Joined fields (not always populated).
	ItemName  string `db:"item_name" json:"item_name,omitempty"`
	ColorName string `db:"color_name" json:"color_name,omitempty"`
	CityName  string `db:"city_name" json:"city_name,omitempty"`
	PlaceName string `db:"place_name" json:"place_name,omitempty"`
}
