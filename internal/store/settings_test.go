package store

import (
	"context"
	"testing"

	"github.com/hkanaan/shamshop/internal/db"
)

func TestJWTSecretStable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("expected 32-byte hex secret, got %d chars", len(first))
	}

	second, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret (second): %v", err)
	}
	if first != second {
		t.Error("expected the stored secret to be returned on subsequent calls")
	}
}
