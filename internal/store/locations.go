package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hkanaan/shamshop/internal/model"
)

// CreateCity creates a new city.
func CreateCity(ctx context.Context, db *sqlx.DB, name string) (*model.City, error) {
	result, err := db.ExecContext(ctx, `INSERT INTO cities (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("creating city: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting city id: %w", err)
	}

	return GetCity(ctx, db, id)
}

// GetCity returns a city by ID.
func GetCity(ctx context.Context, db *sqlx.DB, id int64) (*model.City, error) {
	var c model.City
	err := db.GetContext(ctx, &c, `SELECT id, name FROM cities WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting city: %w", err)
	}
	return &c, nil
}

// ListCities returns all cities ordered by name.
func ListCities(ctx context.Context, db *sqlx.DB) ([]model.City, error) {
	var cities []model.City
	err := db.SelectContext(ctx, &cities, `SELECT id, name FROM cities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing cities: %w", err)
	}
	return cities, nil
}

// DeleteCity removes a city and (via cascade) its places.
func DeleteCity(ctx context.Context, db *sqlx.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM cities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting city: %w", err)
	}
	return nil
}

// CreatePlace creates a new place within a city.
func CreatePlace(ctx context.Context, db *sqlx.DB, cityID int64, name string) (*model.Place, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO places (city_id, name) VALUES (?, ?)`, cityID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating place: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting place id: %w", err)
	}

	return GetPlace(ctx, db, id)
}

// GetPlace returns a place by ID with its city name.
func GetPlace(ctx context.Context, db *sqlx.DB, id int64) (*model.Place, error) {
	var p model.Place
	err := db.GetContext(ctx, &p,
		`SELECT p.id, p.city_id, p.name, c.name AS city_name
		 FROM places p JOIN cities c ON c.id = p.city_id
		 WHERE p.id = ?`, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting place: %w", err)
	}
	return &p, nil
}

// ListPlacesByCity returns all places of a city ordered by name.
func ListPlacesByCity(ctx context.Context, db *sqlx.DB, cityID int64) ([]model.Place, error) {
	var places []model.Place
	err := db.SelectContext(ctx, &places,
		`SELECT id, city_id, name FROM places WHERE city_id = ? ORDER BY name`, cityID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing places: %w", err)
	}
	return places, nil
}

// DeletePlace removes a place.
func DeletePlace(ctx context.Context, db *sqlx.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM places WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting place: %w", err)
	}
	return nil
}
