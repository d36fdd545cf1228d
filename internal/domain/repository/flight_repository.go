package repository

import (
	"context"
	"time"

	"airplain-service/internal/domain/entity"
)

// FlightRepository defines the interface for the persistent flight store
type FlightRepository interface {
	GetActive(ctx context.Context, limit int) ([]*entity.Flight, error)
	GetArchived(ctx context.Context, limit int) ([]*entity.Flight, error)
	GetAll(ctx context.Context) ([]*entity.Flight, error)
	FindByFlightDate(ctx context.Context, airline, flightNumber string, date time.Time) (*entity.Flight, error)
	Insert(ctx context.Context, flight *entity.Flight) error
	Update(ctx context.Context, flight *entity.Flight) error
	Archive(ctx context.Context, id string) error
}
