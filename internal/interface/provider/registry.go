package provider

import (
	"context"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/internal/domain/repository"
	"airplain-service/internal/infrastructure/config"
	"airplain-service/pkg/logger"
)

// Disabled is the provider used when the configured API has no key or URL.
// It short-circuits every query to "no data", equivalent to a provider error.
type Disabled struct{}

// Name returns the provider name
func (Disabled) Name() string { return "disabled" }

// GetFlightData always reports no data
func (Disabled) GetFlightData(ctx context.Context, airline, flightNumber string, date time.Time) (*entity.Snapshot, error) {
	return nil, nil
}

// Select returns the flight data provider chosen by configuration.
func Select(cfg *config.Config, airportRepo repository.AirportRepository, log logger.Logger) repository.FlightProvider {
	switch cfg.CurrentAPI {
	case "aerodatabox":
		if cfg.AedbxAPIURL != "" && cfg.AedbxAPIKey != "" {
			return NewAeroDataBox(cfg.AedbxAPIURL, cfg.AedbxAPIKey, cfg.ProviderTimeout, log)
		}
	case "aeroapi":
		if cfg.AeroAPIURL != "" && cfg.AeroAPIKey != "" {
			return NewAeroAPI(cfg.AeroAPIURL, cfg.AeroAPIKey, airportRepo, cfg.ProviderTimeout, log)
		}
	}
	log.Warn("Flight data provider not configured, remote refresh disabled", "currentApi", cfg.CurrentAPI)
	return Disabled{}
}
