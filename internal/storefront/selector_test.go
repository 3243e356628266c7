package storefront

import (
	"testing"

	"github.com/hkanaan/shamshop/internal/model"
)

func TestSelectableColorsExcludesSoldOutAndSorts(t *testing.T) {
	colors := []model.Color{
		{ID: 1, ItemID: 10, Name: "Red"},
		{ID: 2, ItemID: 10, Name: "Black", IsSoldOut: true},
		{ID: 3, ItemID: 10, Name: "Olive"},
		{ID: 4, ItemID: 10, Name: "Blue"},
	}

	got := SelectableColors(colors)
	if len(got) != 3 {
		t.Fatalf("expected 3 selectable colors, got %d", len(got))
	}
	for i, want := range []string{"Blue", "Olive", "Red"} {
		if got[i].Name != want {
			t.Errorf("position %d: expected %q, got %q", i, want, got[i].Name)
		}
	}
	for _, c := range got {
		if c.IsSoldOut {
			t.Errorf("sold-out color %q must not be selectable", c.Name)
		}
	}
}

func TestSelectablePlacesScopedToCity(t *testing.T) {
	places := []model.Place{
		{ID: 1, CityID: 1, Name: "Mazzeh"},
		{ID: 2, CityID: 2, Name: "Aziziyeh"},
		{ID: 3, CityID: 1, Name: "Bab Touma"},
	}

	got := SelectablePlaces(places, 1)
	if len(got) != 2 {
		t.Fatalf("expected 2 places, got %d", len(got))
	}
	if got[0].Name != "Bab Touma" || got[1].Name != "Mazzeh" {
		t.Errorf("expected name order, got %q, %q", got[0].Name, got[1].Name)
	}
	for _, p := range got {
		if p.CityID != 1 {
			t.Errorf("place %q belongs to city %d", p.Name, p.CityID)
		}
	}

	if got := SelectablePlaces(places, 0); len(got) != 0 {
		t.Errorf("expected empty result without a city, got %d", len(got))
	}
}

func TestValidateColorMismatch(t *testing.T) {
	item := &model.Item{ID: 10}
	foreign := &model.Color{ID: 7, ItemID: 99, Name: "Red"}

	errs := Validate(item, foreign, nil, nil)
	if !errs.Has("color") {
		t.Fatal("expected a color error")
	}
	if errs[0].Code != CodeColorMismatch {
		t.Errorf("expected ColorMismatch, got %s", errs[0].Code)
	}
}

func TestValidateColorSoldOut(t *testing.T) {
	item := &model.Item{ID: 10}
	soldOut := &model.Color{ID: 7, ItemID: 10, Name: "Red", IsSoldOut: true}
	city := &model.City{ID: 1, Name: "Damascus"}
	place := &model.Place{ID: 5, CityID: 1, Name: "Mazzeh"}

	// Sold out fails regardless of the other fields.
	errs := Validate(item, soldOut, city, place)
	if len(errs) != 1 || errs[0].Code != CodeColorSoldOut {
		t.Errorf("expected a single ColorSoldOut error, got %v", errs)
	}
}

func TestValidatePlaceMismatch(t *testing.T) {
	item := &model.Item{ID: 10}
	damascus := &model.City{ID: 1, Name: "Damascus"}
	aleppoPlace := &model.Place{ID: 5, CityID: 2, Name: "Aziziyeh"}

	errs := Validate(item, nil, damascus, aleppoPlace)
	if len(errs) != 1 || errs[0].Code != CodePlaceMismatch {
		t.Fatalf("expected a single PlaceMismatch error, got %v", errs)
	}

	// Passes when either side is absent.
	if errs := Validate(item, nil, nil, aleppoPlace); len(errs) != 0 {
		t.Errorf("expected pass without a city, got %v", errs)
	}
	if errs := Validate(item, nil, damascus, nil); len(errs) != 0 {
		t.Errorf("expected pass without a place, got %v", errs)
	}
}

func TestValidateAllAbsent(t *testing.T) {
	if errs := Validate(&model.Item{ID: 10}, nil, nil, nil); len(errs) != 0 {
		t.Errorf("expected no errors for absent optionals, got %v", errs)
	}
}
