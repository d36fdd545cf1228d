package repository

import (
	"context"
	"time"

	"airplain-service/internal/domain/entity"
)

// FlightProvider defines the interface for external flight-data APIs.
// Implementations must fail soft: a nil snapshot with a nil error means
// "no data this pass" (HTTP error, timeout or empty result).
type FlightProvider interface {
	GetFlightData(ctx context.Context, airline, flightNumber string, date time.Time) (*entity.Snapshot, error)
	Name() string
}
