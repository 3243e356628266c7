package store

import (
	"context"
	"testing"

	"github.com/hkanaan/shamshop/internal/db"
)

func TestPlacesScopedToCity(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	damascus, err := CreateCity(ctx, database, "Damascus")
	if err != nil {
		t.Fatalf("CreateCity: %v", err)
	}
	aleppo, _ := CreateCity(ctx, database, "Aleppo")

	CreatePlace(ctx, database, damascus.ID, "Mazzeh")
	CreatePlace(ctx, database, damascus.ID, "Bab Touma")
	CreatePlace(ctx, database, aleppo.ID, "Aziziyeh")

	places, err := ListPlacesByCity(ctx, database, damascus.ID)
	if err != nil {
		t.Fatalf("ListPlacesByCity: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("expected 2 places in Damascus, got %d", len(places))
	}
	if places[0].Name != "Bab Touma" || places[1].Name != "Mazzeh" {
		t.Errorf("expected name-ordered places, got %q, %q", places[0].Name, places[1].Name)
	}
	for _, p := range places {
		if p.CityID != damascus.ID {
			t.Errorf("place %q belongs to city %d, want %d", p.Name, p.CityID, damascus.ID)
		}
	}
}

func TestGetPlaceJoinsCityName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	city, _ := CreateCity(ctx, database, "Homs")
	place, err := CreatePlace(ctx, database, city.ID, "Downtown")
	if err != nil {
		t.Fatalf("CreatePlace: %v", err)
	}
	if place.CityName != "Homs" {
		t.Errorf("expected joined city name 'Homs', got %q", place.CityName)
	}

	missing, err := GetPlace(ctx, database, 9999)
	if err != nil {
		t.Fatalf("GetPlace: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown place id")
	}
}

func TestDeleteCityCascadesPlaces(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	city, _ := CreateCity(ctx, database, "Latakia")
	CreatePlace(ctx, database, city.ID, "Corniche")

	if err := DeleteCity(ctx, database, city.ID); err != nil {
		t.Fatalf("DeleteCity: %v", err)
	}
	places, _ := ListPlacesByCity(ctx, database, city.ID)
	if len(places) != 0 {
		t.Errorf("expected places removed with city, got %d", len(places))
	}
}
