package repository

import (
	"context"

	"airplain-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport reference data
type AirportRepository interface {
	GetByIataCode(ctx context.Context, code string) (*entity.Airport, error)
}
