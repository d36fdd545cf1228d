package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/internal/usecase"
	"airplain-service/pkg/emitter"
	"airplain-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFlightRepo struct {
	flights []*entity.Flight
}

func (r *stubFlightRepo) GetActive(ctx context.Context, limit int) ([]*entity.Flight, error) {
	return r.flights, nil
}

func (r *stubFlightRepo) GetArchived(ctx context.Context, limit int) ([]*entity.Flight, error) {
	return r.flights, nil
}

func (r *stubFlightRepo) GetAll(ctx context.Context) ([]*entity.Flight, error) {
	return r.flights, nil
}

func (r *stubFlightRepo) FindByFlightDate(ctx context.Context, airline, flightNumber string, date time.Time) (*entity.Flight, error) {
	for _, f := range r.flights {
		if f.Airline == airline && f.FlightNumber == flightNumber {
			return f, nil
		}
	}
	return nil, nil
}

func (r *stubFlightRepo) Insert(ctx context.Context, flight *entity.Flight) error {
	r.flights = append(r.flights, flight)
	return nil
}

func (r *stubFlightRepo) Update(ctx context.Context, flight *entity.Flight) error { return nil }

func (r *stubFlightRepo) Archive(ctx context.Context, id string) error { return nil }

type stubAirlineRepo struct{}

func (stubAirlineRepo) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	return &entity.Airline{Code: code}, nil
}

type stubAirportRepo struct{}

func (stubAirportRepo) GetByIataCode(ctx context.Context, code string) (*entity.Airport, error) {
	return &entity.Airport{IataCode: code}, nil
}

type stubProvider struct {
	snapshot *entity.Snapshot
}

func (p *stubProvider) GetFlightData(ctx context.Context, airline, flightNumber string, date time.Time) (*entity.Snapshot, error) {
	return p.snapshot, nil
}

func (p *stubProvider) Name() string { return "stub" }

func newTestMux(flights *stubFlightRepo, provider *stubProvider, events *emitter.Emitter) *http.ServeMux {
	log := logger.NewNopLogger()
	lookup := usecase.NewFlightLookup(flights, stubAirlineRepo{}, stubAirportRepo{}, provider, log)
	transfer := usecase.NewFlightTransfer(flights, log)
	stats := usecase.NewStatsService(flights, log)

	mux := http.NewServeMux()
	NewHandlers(lookup, transfer, stats, events, log).Register(mux)
	return mux
}

func TestLookupFlightCreated(t *testing.T) {
	departure := time.Now().Add(48 * time.Hour)
	provider := &stubProvider{snapshot: &entity.Snapshot{
		DepartureAirport: "JFK",
		ArrivalAirport:   "LHR",
		StartDatetime:    departure,
		EndDatetime:      departure.Add(7 * time.Hour),
		Status:           entity.StatusScheduled,
	}}
	flights := &stubFlightRepo{}
	events := emitter.New()
	refreshCh := events.Subscribe(emitter.RefreshRequested)
	mux := newTestMux(flights, provider, events)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/flights/lookup",
		strings.NewReader(`{"airline":"BA","flightNumber":"176","date":"`+departure.Format("2006-01-02")+`"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, flights.flights, 1)
	assert.Contains(t, rec.Body.String(), `"airline":"BA"`)

	// A new flight wakes the scheduler.
	select {
	case <-refreshCh:
	default:
		t.Fatal("expected a refresh event after adding a flight")
	}
}

func TestLookupFlightConflict(t *testing.T) {
	flights := &stubFlightRepo{flights: []*entity.Flight{{Airline: "BA", FlightNumber: "176"}}}
	mux := newTestMux(flights, &stubProvider{}, emitter.New())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/flights/lookup",
		strings.NewReader(`{"airline":"BA","flightNumber":"176","date":"2026-05-01"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLookupFlightNotFound(t *testing.T) {
	mux := newTestMux(&stubFlightRepo{}, &stubProvider{}, emitter.New())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/flights/lookup",
		strings.NewReader(`{"airline":"BA","flightNumber":"176","date":"2026-05-01"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLookupFlightValidation(t *testing.T) {
	mux := newTestMux(&stubFlightRepo{}, &stubProvider{}, emitter.New())

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing airline", `{"flightNumber":"176","date":"2026-05-01"}`},
		{"bad date", `{"airline":"BA","flightNumber":"176","date":"01.05.2026"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/flights/lookup", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestImportAndExportFlights(t *testing.T) {
	flights := &stubFlightRepo{}
	events := emitter.New()
	refreshCh := events.Subscribe(emitter.RefreshRequested)
	mux := newTestMux(flights, &stubProvider{}, events)

	csv := "airline,flight_number,departure_airport,departure_country,departure_airport_timezone," +
		"arrival_airport,arrival_country,arrival_airport_timezone,start_datetime,end_datetime,distance\n" +
		"BA,176,JFK,US,America/New_York,LHR,GB,Europe/London,2024-05-01T18:30:00Z,2024-05-02T06:30:00Z,5541\n"

	req := httptest.NewRequest(http.MethodPost, "/api/v1/flights/import", strings.NewReader(csv))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"imported": 1}`, rec.Body.String())

	// Imported flights wake the scheduler.
	select {
	case <-refreshCh:
	default:
		t.Fatal("expected a refresh event after importing flights")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/flights/export", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "BA,176,JFK")
}

func TestRefreshFlights(t *testing.T) {
	events := emitter.New()
	refreshCh := events.Subscribe(emitter.RefreshRequested)
	mux := newTestMux(&stubFlightRepo{}, &stubProvider{}, events)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/flights/refresh", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	select {
	case <-refreshCh:
	default:
		t.Fatal("expected a refresh event")
	}
}

func TestYearlyStatsEndpoint(t *testing.T) {
	start := time.Date(2023, 5, 1, 18, 30, 0, 0, time.UTC)
	flights := &stubFlightRepo{flights: []*entity.Flight{{
		Airline:          "BA",
		FlightNumber:     "176",
		DepartureAirport: "JFK",
		DepartureCountry: "US",
		ArrivalAirport:   "LHR",
		ArrivalCountry:   "GB",
		StartDatetime:    start,
		EndDatetime:      start.Add(7 * time.Hour),
		Distance:         5541,
		Status:           entity.StatusArrived,
		IsArchived:       true,
	}}}
	mux := newTestMux(flights, &stubProvider{}, emitter.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"2023"`)
	assert.Contains(t, rec.Body.String(), `"flights":1`)
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(&stubFlightRepo{}, &stubProvider{}, emitter.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/flights/lookup", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
