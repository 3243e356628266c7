package model

import (
	"fmt"
	"strconv"
	"time"
)

// Category groups items for browsing.
type Category struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Item is a listing put up for sale by a staff user.
type Item struct {
	ID          int64      `db:"id" json:"id"`
	CategoryID  int64      `db:"category_id" json:"category_id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description,omitempty"`
	Price       float64    `db:"price" json:"price"`
	ImageMime   string     `db:"image_mime" json:"image_mime,omitempty"`
	IsSold      bool       `db:"is_sold" json:"is_sold"`
	CreatedBy   int64      `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`

	// Joined fields (not always populated).
	CategoryName string `db:"category_name" json:"category_name,omitempty"`
}

// HasImage reports whether the item has a primary image stored.
func (i *Item) HasImage() bool { return i.ImageMime != "" }

// ImageURL is the serving route for the item's primary image.
func (i *Item) ImageURL() string { return fmt.Sprintf("/items/%d/image", i.ID) }

// PriceText renders the price without a trailing ".0" for whole values.
func (i *Item) PriceText() string { return strconv.FormatFloat(i.Price, 'f', -1, 64) }

// Color is a per-item variant. (item, name) pairs are unique.
type Color struct {
	ID        int64     `db:"id" json:"id"`
	ItemID    int64     `db:"item_id" json:"item_id"`
	Name      string    `db:"name" json:"name"`
	IsSoldOut bool      `db:"is_sold_out" json:"is_sold_out"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Images in display order, populated by ListColorsWithImages.
	Images []ColorImage `db:"-" json:"images,omitempty"`
}

// ColorImage is one photo of a color variant. Display order = creation order.
type ColorImage struct {
	ID        int64     `db:"id" json:"id"`
	ColorID   int64     `db:"color_id" json:"color_id"`
	ImageMime string    `db:"image_mime" json:"image_mime"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// URL is the serving route for the image bytes.
func (ci *ColorImage) URL() string { return fmt.Sprintf("/colors/images/%d", ci.ID) }
