package repository

import (
	"context"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	gorm.Model
	ID           uint           `gorm:"primaryKey"`
	IataCode     string         `gorm:"column:iata_code;unique"`
	Name         string         `gorm:"column:airport_name"`
	Municipality string         `gorm:"column:municipality_name"`
	CountryCode  string         `gorm:"column:country_code"`
	Latitude     float64        `gorm:"column:airport_latitude"`
	Longitude    float64        `gorm:"column:airport_longitude"`
	TzName       string         `gorm:"column:tz_name"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// GetByIataCode finds an airport by IATA code
func (r *GormAirportRepository) GetByIataCode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).Unscoped().Where("iata_code = ?", code).First(&airport)

	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.Airport{
		ID:           airport.ID,
		IataCode:     airport.IataCode,
		Name:         airport.Name,
		Municipality: airport.Municipality,
		CountryCode:  airport.CountryCode,
		Latitude:     airport.Latitude,
		Longitude:    airport.Longitude,
		TzName:       airport.TzName,
		CreatedAt:    airport.CreatedAt,
		UpdatedAt:    airport.UpdatedAt,
		DeletedAt:    airport.DeletedAt,
	}, nil
}
