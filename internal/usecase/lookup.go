package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/internal/domain/repository"
	"airplain-service/pkg/logger"
	"airplain-service/pkg/utils"
)

var (
	// ErrFlightExists is returned when the flight is already tracked
	ErrFlightExists = errors.New("flight already exists")
	// ErrFlightNotFound is returned when the provider has no data
	ErrFlightNotFound = errors.New("flight not found")
)

// FlightLookup creates API-tracked flights from provider responses
type FlightLookup struct {
	flightRepo  repository.FlightRepository
	airlineRepo repository.AirlineRepository
	airportRepo repository.AirportRepository
	provider    repository.FlightProvider
	logger      logger.Logger
}

// NewFlightLookup creates a new flight lookup usecase
func NewFlightLookup(
	flightRepo repository.FlightRepository,
	airlineRepo repository.AirlineRepository,
	airportRepo repository.AirportRepository,
	provider repository.FlightProvider,
	logger logger.Logger,
) *FlightLookup {
	return &FlightLookup{
		flightRepo:  flightRepo,
		airlineRepo: airlineRepo,
		airportRepo: airportRepo,
		provider:    provider,
		logger:      logger,
	}
}

// AddFlight looks the flight up with the provider and stores it as an
// API-tracked record eligible for polling.
func (l *FlightLookup) AddFlight(ctx context.Context, airline, flightNumber string, date time.Time) (*entity.Flight, error) {
	existing, err := l.flightRepo.FindByFlightDate(ctx, airline, flightNumber, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrFlightExists
	}

	snapshot, err := l.provider.GetFlightData(ctx, airline, flightNumber, date)
	if err != nil {
		l.logger.Warn("Provider lookup failed", "airline", airline, "flightNumber", flightNumber, "error", err)
		return nil, ErrFlightNotFound
	}
	if snapshot == nil {
		return nil, ErrFlightNotFound
	}

	flight := &entity.Flight{
		Airline:              airline,
		FlightNumber:         flightNumber,
		DepartureAirport:     snapshot.DepartureAirport,
		DepartureCountry:     snapshot.DepartureCountry,
		DepartureTimezone:    snapshot.DepartureTimezone,
		ArrivalAirport:       snapshot.ArrivalAirport,
		ArrivalCountry:       snapshot.ArrivalCountry,
		ArrivalTimezone:      snapshot.ArrivalTimezone,
		StartDatetime:        snapshot.StartDatetime,
		EndDatetime:          snapshot.EndDatetime,
		ActualStartDatetime:  snapshot.ActualStartDatetime,
		ActualEndDatetime:    snapshot.ActualEndDatetime,
		DepartureTerminal:    snapshot.DepartureTerminal,
		DepartureCheckInDesk: snapshot.DepartureCheckInDesk,
		DepartureGate:        snapshot.DepartureGate,
		ArrivalTerminal:      snapshot.ArrivalTerminal,
		BaggageBelt:          snapshot.BaggageBelt,
		AircraftType:         snapshot.AircraftType,
		AircraftRegNumber:    snapshot.AircraftRegNumber,
		Distance:             snapshot.Distance,
		Status:               snapshot.Status,
		RecordType:           entity.RecordAPITracked,
		Extra:                snapshot.Extra,
	}

	l.backfill(ctx, flight)

	// Flights that already landed go straight to the archive.
	flight.IsArchived = flight.ArrivalTime().Before(time.Now())

	if err := l.flightRepo.Insert(ctx, flight); err != nil {
		return nil, err
	}

	l.logger.Info("Flight added",
		"flightId", flight.ID,
		"airline", airline,
		"flightNumber", flightNumber,
		"departure", flight.StartDatetime)

	return flight, nil
}

// backfill fills countries, distance and check-in metadata from the
// reference data when the provider response left them empty.
func (l *FlightLookup) backfill(ctx context.Context, flight *entity.Flight) {
	departure, depErr := l.airportRepo.GetByIataCode(ctx, flight.DepartureAirport)
	arrival, arrErr := l.airportRepo.GetByIataCode(ctx, flight.ArrivalAirport)

	if depErr == nil && flight.DepartureCountry == "" {
		flight.DepartureCountry = departure.CountryCode
	}
	if arrErr == nil && flight.ArrivalCountry == "" {
		flight.ArrivalCountry = arrival.CountryCode
	}
	if depErr == nil && arrErr == nil && flight.Distance == 0 {
		flight.Distance = int(math.Round(utils.Haversine(
			departure.Latitude, departure.Longitude,
			arrival.Latitude, arrival.Longitude,
		)))
	}

	if airline, err := l.airlineRepo.GetByCode(ctx, flight.Airline); err == nil {
		flight.CheckInLink = airline.CheckInLink
		flight.CheckInTime = airline.CheckInTime
	}
}
