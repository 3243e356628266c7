package storefront

import (
	"testing"

	"github.com/hkanaan/shamshop/internal/model"
)

func galleryFixture() (*model.Item, []model.Color) {
	item := &model.Item{ID: 10, Name: "Lamp", ImageMime: "image/jpeg"}
	colors := []model.Color{
		{
			ID: 1, ItemID: 10, Name: "Red",
			Images: []model.ColorImage{
				{ID: 101, ColorID: 1},
				{ID: 102, ColorID: 1},
			},
		},
		{
			ID: 2, ItemID: 10, Name: "Black",
			Images: []model.ColorImage{{ID: 201, ColorID: 2}},
		},
		{
			ID: 3, ItemID: 10, Name: "Gold", IsSoldOut: true,
			Images: []model.ColorImage{{ID: 301, ColorID: 3}},
		},
	}
	return item, colors
}

func TestGallerySelectedColorOnlyShowsItsImages(t *testing.T) {
	item, colors := galleryFixture()

	entries := ComposeGallery(item, colors, &colors[0])

	// Red's two images lead; the main image never appears.
	if len(entries) < 2 {
		t.Fatalf("expected at least 2 entries, got %d", len(entries))
	}
	if entries[0].ImageURL != "/colors/images/101" || entries[1].ImageURL != "/colors/images/102" {
		t.Errorf("expected red's images first in stored order, got %v", entries[:2])
	}
	for _, e := range entries {
		if e.Kind == GalleryKindMain {
			t.Error("main image must not appear when the selected color has photos")
		}
		if e.ColorID == 3 {
			t.Error("sold-out color images must never appear")
		}
	}
}

func TestGalleryNoSelectionFallsBackToMain(t *testing.T) {
	item, colors := galleryFixture()

	entries := ComposeGallery(item, colors, nil)
	if len(entries) == 0 {
		t.Fatal("expected entries")
	}
	if entries[0].Kind != GalleryKindMain || entries[0].ImageURL != "/items/10/image" {
		t.Errorf("expected the main image first, got %+v", entries[0])
	}
	if entries[0].AltText != "Lamp - Main Image" {
		t.Errorf("unexpected alt text %q", entries[0].AltText)
	}

	// Remaining entries are the non-sold-out colors' images.
	var colorIDs []int64
	for _, e := range entries[1:] {
		if e.Kind != GalleryKindColor {
			t.Errorf("expected color entries after main, got %+v", e)
		}
		colorIDs = append(colorIDs, e.ColorID)
	}
	if len(colorIDs) != 3 {
		t.Errorf("expected 3 color images, got %d", len(colorIDs))
	}
}

func TestGallerySelectedColorWithoutImagesKeepsMain(t *testing.T) {
	item, colors := galleryFixture()
	bare := model.Color{ID: 4, ItemID: 10, Name: "White"}
	colors = append(colors, bare)

	entries := ComposeGallery(item, colors, &bare)
	if entries[0].Kind != GalleryKindMain {
		t.Errorf("expected main fallback for a color without photos, got %+v", entries[0])
	}
}

func TestGallerySoldOutSelectionContributesNothing(t *testing.T) {
	item, colors := galleryFixture()

	entries := ComposeGallery(item, colors, &colors[2])
	for _, e := range entries {
		if e.ColorID == colors[2].ID {
			t.Error("selected sold-out color must not contribute images")
		}
	}
	if entries[0].Kind != GalleryKindMain {
		t.Error("expected main fallback when selection is sold out")
	}
}

func TestGalleryItemWithoutMainImage(t *testing.T) {
	item, colors := galleryFixture()
	item.ImageMime = ""

	entries := ComposeGallery(item, colors, nil)
	for _, e := range entries {
		if e.Kind == GalleryKindMain {
			t.Error("no main entry for an item without a primary image")
		}
	}
}

func TestSelectedColorIDPrecedence(t *testing.T) {
	tests := []struct {
		form, query string
		want        int64
		ok          bool
	}{
		{"2", "1", 2, true},   // form wins
		{"", "1", 1, true},    // query fallback
		{"abc", "1", 1, true}, // unparsable form falls back
		{"2", "", 2, true},
		{"", "", 0, false},
		{"abc", "xyz", 0, false},
	}

	for _, tt := range tests {
		got, ok := SelectedColorID(tt.form, tt.query)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SelectedColorID(%q, %q) = %d, %v; want %d, %v",
				tt.form, tt.query, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFindColorScopedToItem(t *testing.T) {
	_, colors := galleryFixture()

	if c := FindColor(colors, 2); c == nil || c.Name != "Black" {
		t.Errorf("expected to find Black, got %v", c)
	}
	if c := FindColor(colors, 999); c != nil {
		t.Errorf("expected nil for a foreign id, got %v", c)
	}
}
