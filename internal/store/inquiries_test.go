package store

import (
	"context"
	"testing"

	"github.com/hkanaan/shamshop/internal/db"
	"github.com/hkanaan/shamshop/internal/model"
)

func TestCreateInquiryJoinsNames(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := seedItem(t, database, "Lamp", 1000)
	color, _ := CreateColor(ctx, database, item.ID, "Red")
	city, _ := CreateCity(ctx, database, "Damascus")
	place, _ := CreatePlace(ctx, database, city.ID, "Mazzeh")

	inq, err := CreateInquiry(ctx, database, &model.Inquiry{
		ItemID:        item.ID,
		ColorID:       &color.ID,
		CityID:        &city.ID,
		PlaceID:       &place.ID,
		CustomerName:  "Ali",
		CustomerPhone: "0991234567",
	})
	if err != nil {
		t.Fatalf("CreateInquiry: %v", err)
	}

	if inq.IsContacted {
		t.Error("new inquiry must start uncontacted")
	}
	if inq.CreatedAt.IsZero() {
		t.Error("expected server-assigned creation timestamp")
	}
	if inq.ItemName != "Lamp" || inq.ColorName != "Red" || inq.CityName != "Damascus" || inq.PlaceName != "Mazzeh" {
		t.Errorf("unexpected joined names: %q %q %q %q", inq.ItemName, inq.ColorName, inq.CityName, inq.PlaceName)
	}
}

func TestCreateInquiryWithoutOptionals(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := seedItem(t, database, "Lamp", 1000)
	inq, err := CreateInquiry(ctx, database, &model.Inquiry{
		ItemID:        item.ID,
		CustomerName:  "Ali",
		CustomerPhone: "0991234567",
	})
	if err != nil {
		t.Fatalf("CreateInquiry: %v", err)
	}
	if inq.ColorID != nil || inq.CityID != nil || inq.PlaceID != nil {
		t.Error("expected nil optional references")
	}
	if inq.ColorName != "" || inq.CityName != "" || inq.PlaceName != "" {
		t.Error("expected empty joined names for absent references")
	}
}

func TestDuplicateSubmissionsCreateTwoRows(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := seedItem(t, database, "Lamp", 1000)
	base := model.Inquiry{ItemID: item.ID, CustomerName: "Ali", CustomerPhone: "0991234567"}

	first := base
	second := base
	CreateInquiry(ctx, database, &first)
	CreateInquiry(ctx, database, &second)

	all, err := ListInquiries(ctx, database, nil)
	if err != nil {
		t.Fatalf("ListInquiries: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 rows for identical submissions, got %d", len(all))
	}
}

func TestContactedFilterAndToggle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := seedItem(t, database, "Lamp", 1000)
	inq, _ := CreateInquiry(ctx, database, &model.Inquiry{
		ItemID: item.ID, CustomerName: "Ali", CustomerPhone: "0991234567",
	})
	CreateInquiry(ctx, database, &model.Inquiry{
		ItemID: item.ID, CustomerName: "Sara", CustomerPhone: "0997654321",
	})

	if err := SetInquiryContacted(ctx, database, inq.ID, true); err != nil {
		t.Fatalf("SetInquiryContacted: %v", err)
	}

	contacted := true
	done, _ := ListInquiries(ctx, database, &contacted)
	if len(done) != 1 || done[0].ID != inq.ID {
		t.Errorf("expected only the toggled inquiry, got %v", done)
	}

	pending := false
	waiting, _ := ListInquiries(ctx, database, &pending)
	if len(waiting) != 1 || waiting[0].CustomerName != "Sara" {
		t.Errorf("expected Sara's inquiry pending, got %v", waiting)
	}
}
