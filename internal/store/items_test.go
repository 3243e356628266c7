package store

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/hkanaan/shamshop/internal/db"
	"github.com/hkanaan/shamshop/internal/model"
)

// seedStaff creates a staff user to satisfy the created_by FK.
func seedStaff(t *testing.T, database *sqlx.DB) *model.User {
	t.Helper()
	user, err := CreateUser(context.Background(), database, "seller", "hash", model.RoleStaff)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

// seedItem creates a category and an item owned by a fresh staff user.
func seedItem(t *testing.T, database *sqlx.DB, name string, price float64) *model.Item {
	t.Helper()
	ctx := context.Background()

	category, err := CreateCategory(ctx, database, "Lighting")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	user := seedStaff(t, database)

	item, err := CreateItem(ctx, database, category.ID, name, "", price, user.ID)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	return item
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	category, err := CreateCategory(ctx, database, "Furniture")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	user := seedStaff(t, database)

	item, err := CreateItem(ctx, database, category.ID, "Lamp", "Brass desk lamp", 1000, user.ID)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Name != "Lamp" {
		t.Errorf("expected name 'Lamp', got %q", item.Name)
	}
	if item.CategoryName != "Furniture" {
		t.Errorf("expected joined category name 'Furniture', got %q", item.CategoryName)
	}
	if item.IsSold {
		t.Error("new item should not be sold")
	}
	if item.PriceText() != "1000" {
		t.Errorf("expected price text '1000', got %q", item.PriceText())
	}
}

func TestListItemsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := seedStaff(t, database)
	lighting, _ := CreateCategory(ctx, database, "Lighting")
	decor, _ := CreateCategory(ctx, database, "Decor")

	CreateItem(ctx, database, lighting.ID, "Desk Lamp", "brass", 500, user.ID)
	CreateItem(ctx, database, decor.ID, "Vase", "ceramic", 300, user.ID)
	sold, _ := CreateItem(ctx, database, lighting.ID, "Floor Lamp", "", 900, user.ID)
	UpdateItem(ctx, database, sold.ID, sold.Name, sold.Description, sold.Price, true)

	all, err := ListItems(ctx, database, ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 unsold items, got %d", len(all))
	}

	withSold, _ := ListItems(ctx, database, ItemFilter{IncludeSold: true})
	if len(withSold) != 3 {
		t.Errorf("expected 3 items including sold, got %d", len(withSold))
	}

	byCategory, _ := ListItems(ctx, database, ItemFilter{CategoryID: lighting.ID})
	if len(byCategory) != 1 {
		t.Errorf("expected 1 unsold lighting item, got %d", len(byCategory))
	}

	byQuery, _ := ListItems(ctx, database, ItemFilter{Query: "cerami"})
	if len(byQuery) != 1 || byQuery[0].Name != "Vase" {
		t.Errorf("expected query to match the vase, got %v", byQuery)
	}
}

func TestListRelatedItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := seedStaff(t, database)
	category, _ := CreateCategory(ctx, database, "Lighting")
	other, _ := CreateCategory(ctx, database, "Decor")

	item, _ := CreateItem(ctx, database, category.ID, "Main", "", 100, user.ID)
	for _, name := range []string{"A", "B", "C", "D"} {
		CreateItem(ctx, database, category.ID, name, "", 100, user.ID)
	}
	CreateItem(ctx, database, other.ID, "Elsewhere", "", 100, user.ID)

	related, err := ListRelatedItems(ctx, database, item, 3)
	if err != nil {
		t.Fatalf("ListRelatedItems: %v", err)
	}
	if len(related) != 3 {
		t.Errorf("expected related cap of 3, got %d", len(related))
	}
	for _, r := range related {
		if r.ID == item.ID {
			t.Error("related items must exclude the item itself")
		}
		if r.CategoryID != category.ID {
			t.Error("related items must share the category")
		}
	}
}

func TestSoftDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := seedItem(t, database, "Delete Me", 100)
	if err := DeleteItem(ctx, database, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	items, _ := ListItems(ctx, database, ItemFilter{IncludeSold: true})
	if len(items) != 0 {
		t.Errorf("expected 0 items after soft delete, got %d", len(items))
	}

	// Still fetchable by ID so old inquiries keep their item reference.
	got, _ := GetItem(ctx, database, item.ID)
	if got == nil || got.DeletedAt == nil {
		t.Error("expected soft-deleted item to remain fetchable with DeletedAt set")
	}
}

func TestItemImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item := seedItem(t, database, "Photo Item", 100)
	if err := SetItemImage(ctx, database, item.ID, []byte("fake image data"), "image/jpeg"); err != nil {
		t.Fatalf("SetItemImage: %v", err)
	}

	data, mime, err := GetItemImage(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if !got.HasImage() {
		t.Error("expected HasImage after upload")
	}
}
