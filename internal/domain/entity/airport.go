package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents airport reference data: location, country and the
// IANA timezone of the airport.
type Airport struct {
	ID           uint
	IataCode     string
	Name         string
	Municipality string
	CountryCode  string
	Latitude     float64
	Longitude    float64
	TzName       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt
}
