package model

// City is a delivery destination grouping places.
type City struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Place is a delivery point within a city.
type Place struct {
	ID     int64  `db:"id" json:"id"`
	CityID int64  `db:"city_id" json:"city_id"`
	Name   string `db:"name" json:"name"`

	// Joined fields (not always populated).
	CityName string `db:"city_name" json:"city_name,omitempty"`
}
