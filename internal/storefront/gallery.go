package storefront

import (
	"strconv"

	"github.com/hkanaan/shamshop/internal/model"
)

// Gallery entry kinds.
const (
	GalleryKindMain  = "main"
	GalleryKindColor = "color"
)

// GalleryEntry is one image slot in the item detail view.
type GalleryEntry struct {
	Kind      string `json:"kind"`
	ImageURL  string `json:"image_url"`
	AltText   string `json:"alt_text"`
	ColorID   int64  `json:"color_id,omitempty"`
	ColorName string `json:"color_name,omitempty"`
}

// ComposeGallery orders the images for an item detail view. When a color is
// selected, not sold out, and has photos, only those photos lead; the item's
// primary image is a fallback for colors without photography, not a universal
// header. Sold-out colors never contribute images.
func ComposeGallery(item *model.Item, colors []model.Color, selected *model.Color) []GalleryEntry {
	var selectedEntries []GalleryEntry
	if selected != nil && !selected.IsSoldOut {
		for _, img := range selected.Images {
			selectedEntries = append(selectedEntries, colorEntry(item, selected, &img))
		}
	}

	var entries []GalleryEntry
	if item.HasImage() && len(selectedEntries) == 0 {
		entries = append(entries, GalleryEntry{
			Kind:     GalleryKindMain,
			ImageURL: item.ImageURL(),
			AltText:  item.Name + " - Main Image",
		})
	}
	entries = append(entries, selectedEntries...)

	for i := range colors {
		c := &colors[i]
		if c.IsSoldOut || (selected != nil && c.ID == selected.ID) {
			continue
		}
		for _, img := range c.Images {
			entries = append(entries, colorEntry(item, c, &img))
		}
	}

	return entries
}

func colorEntry(item *model.Item, color *model.Color, img *model.ColorImage) GalleryEntry {
	return GalleryEntry{
		Kind:      GalleryKindColor,
		ImageURL:  img.URL(),
		AltText:   item.Name + " - " + color.Name,
		ColorID:   color.ID,
		ColorName: color.Name,
	}
}

// SelectedColorID resolves which color the customer is looking at. The form
// field wins over the query parameter, but only when it parses as an integer;
// otherwise the query parameter is tried. Returns false if neither parses.
func SelectedColorID(formValue, queryValue string) (int64, bool) {
	if id, err := strconv.ParseInt(formValue, 10, 64); err == nil {
		return id, true
	}
	if id, err := strconv.ParseInt(queryValue, 10, 64); err == nil {
		return id, true
	}
	return 0, false
}

// FindColor returns the color with the given id from an item's colors, or nil.
// Unlike Validate, this lookup is scoped to the item: a foreign id simply does
// not resolve for display purposes.
func FindColor(colors []model.Color, id int64) *model.Color {
	for i := range colors {
		if colors[i].ID == id {
			return &colors[i]
		}
	}
	return nil
}
