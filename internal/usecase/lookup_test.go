package usecase

import (
	"context"
	"testing"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLookupFixture() (*FlightLookup, *fakeFlightRepo, *fakeAirlineRepo, *fakeAirportRepo, *fakeProvider) {
	flights := &fakeFlightRepo{}
	airlines := &fakeAirlineRepo{}
	airports := &fakeAirportRepo{airports: map[string]*entity.Airport{
		"JFK": {IataCode: "JFK", CountryCode: "US", Latitude: 40.6413, Longitude: -73.7781},
		"LHR": {IataCode: "LHR", CountryCode: "GB", Latitude: 51.4700, Longitude: -0.4543},
	}}
	provider := &fakeProvider{}
	lookup := NewFlightLookup(flights, airlines, airports, provider, logger.NewNopLogger())
	return lookup, flights, airlines, airports, provider
}

func TestAddFlightStoresTrackedRecord(t *testing.T) {
	lookup, flights, airlines, _, provider := newLookupFixture()
	airlines.airline = &entity.Airline{Code: "BA", CheckInLink: "https://ba.example/{PNR}", CheckInTime: 24}

	departure := time.Now().Add(48 * time.Hour)
	provider.snapshot = &entity.Snapshot{
		DepartureAirport: "JFK",
		ArrivalAirport:   "LHR",
		StartDatetime:    departure,
		EndDatetime:      departure.Add(7 * time.Hour),
		Status:           entity.StatusScheduled,
	}

	flight, err := lookup.AddFlight(context.Background(), "BA", "176", departure)

	require.NoError(t, err)
	require.Len(t, flights.inserted, 1)
	assert.Equal(t, entity.RecordAPITracked, flight.RecordType)
	assert.False(t, flight.IsArchived)
	assert.Equal(t, "US", flight.DepartureCountry)
	assert.Equal(t, "GB", flight.ArrivalCountry)
	assert.InDelta(t, 5540, flight.Distance, 30)
	assert.Equal(t, "https://ba.example/{PNR}", flight.CheckInLink)
	assert.Equal(t, 24, flight.CheckInTime)
}

func TestAddFlightArchivesPastFlights(t *testing.T) {
	lookup, _, _, _, provider := newLookupFixture()

	departure := time.Now().Add(-48 * time.Hour)
	provider.snapshot = &entity.Snapshot{
		DepartureAirport: "JFK",
		ArrivalAirport:   "LHR",
		StartDatetime:    departure,
		EndDatetime:      departure.Add(7 * time.Hour),
		Status:           entity.StatusArrived,
	}

	flight, err := lookup.AddFlight(context.Background(), "BA", "176", departure)

	require.NoError(t, err)
	assert.True(t, flight.IsArchived)
}

func TestAddFlightRejectsDuplicates(t *testing.T) {
	lookup, flights, _, _, provider := newLookupFixture()
	departure := time.Now().Add(48 * time.Hour)
	flights.flights = []*entity.Flight{{
		Airline:       "BA",
		FlightNumber:  "176",
		StartDatetime: departure,
	}}

	_, err := lookup.AddFlight(context.Background(), "BA", "176", departure)

	assert.ErrorIs(t, err, ErrFlightExists)
	assert.Zero(t, provider.calls)
}

func TestAddFlightWithoutProviderData(t *testing.T) {
	lookup, flights, _, _, _ := newLookupFixture()

	_, err := lookup.AddFlight(context.Background(), "BA", "176", time.Now().Add(48*time.Hour))

	assert.ErrorIs(t, err, ErrFlightNotFound)
	assert.Empty(t, flights.inserted)
}
