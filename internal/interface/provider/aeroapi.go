package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/internal/domain/repository"
	"airplain-service/pkg/logger"
)

// AeroAPI implements FlightProvider for the FlightAware AeroAPI
type AeroAPI struct {
	apiURL      string
	apiKey      string
	airportRepo repository.AirportRepository
	client      *http.Client
	logger      logger.Logger
}

// NewAeroAPI creates a new AeroAPI adapter
func NewAeroAPI(apiURL, apiKey string, airportRepo repository.AirportRepository, timeout time.Duration, logger logger.Logger) *AeroAPI {
	return &AeroAPI{
		apiURL:      apiURL,
		apiKey:      apiKey,
		airportRepo: airportRepo,
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// Name returns the provider name
func (p *AeroAPI) Name() string {
	return "aeroapi"
}

type aeroAPIAirport struct {
	CodeIata string `json:"code_iata"`
	Timezone string `json:"timezone"`
}

type aeroAPIFlight struct {
	FlightNumber        string         `json:"flight_number"`
	OperatorIata        string         `json:"operator_iata"`
	Origin              aeroAPIAirport `json:"origin"`
	Destination         aeroAPIAirport `json:"destination"`
	ScheduledOut        string         `json:"scheduled_out"`
	ScheduledIn         string         `json:"scheduled_in"`
	EstimatedOut        string         `json:"estimated_out"`
	EstimatedIn         string         `json:"estimated_in"`
	ActualOut           string         `json:"actual_out"`
	ActualIn            string         `json:"actual_in"`
	GateOrigin          string         `json:"gate_origin"`
	TerminalOrigin      string         `json:"terminal_origin"`
	TerminalDestination string         `json:"terminal_destination"`
	BaggageClaim        string         `json:"baggage_claim"`
	AircraftType        string         `json:"aircraft_type"`
	Registration        string         `json:"registration"`
	RouteDistance       float64        `json:"route_distance"`
	Status              string         `json:"status"`
}

type aeroAPIResponse struct {
	Flights []aeroAPIFlight `json:"flights"`
}

// GetFlightData queries AeroAPI for a flight on the given departure date.
// Fails soft: nil snapshot on HTTP error, timeout or empty payload.
func (p *AeroAPI) GetFlightData(ctx context.Context, airline, flightNumber string, date time.Time) (*entity.Snapshot, error) {
	flightDate := date.Format("2006-01-02")
	url := fmt.Sprintf("%s/flights/%s%s?start=%s&end=%sT23:59:59Z", p.apiURL, airline, flightNumber, flightDate, flightDate)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-apikey", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("AeroAPI request failed", "error", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("AeroAPI returned non-OK status", "status", resp.StatusCode)
		return nil, nil
	}

	var data aeroAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		p.logger.Warn("AeroAPI payload decode failed", "error", err)
		return nil, nil
	}
	if len(data.Flights) == 0 {
		return nil, nil
	}

	f := data.Flights[0]
	snapshot := &entity.Snapshot{
		Airline:             f.OperatorIata,
		FlightNumber:        f.FlightNumber,
		DepartureAirport:    f.Origin.CodeIata,
		DepartureCountry:    p.countryCode(ctx, f.Origin.CodeIata),
		DepartureTimezone:   f.Origin.Timezone,
		ArrivalAirport:      f.Destination.CodeIata,
		ArrivalCountry:      p.countryCode(ctx, f.Destination.CodeIata),
		ArrivalTimezone:     f.Destination.Timezone,
		StartDatetime:       toAirportLocal(f.ScheduledOut, f.Origin.Timezone),
		EndDatetime:         toAirportLocal(f.ScheduledIn, f.Destination.Timezone),
		DepartureGate:       f.GateOrigin,
		DepartureTerminal:   f.TerminalOrigin,
		ArrivalTerminal:     f.TerminalDestination,
		BaggageBelt:         f.BaggageClaim,
		AircraftType:        f.AircraftType,
		AircraftRegNumber:   f.Registration,
		Distance:            int(math.Round(f.RouteDistance)),
		Status:              normalizeAeroAPIStatus(f.Status),
	}
	if out := firstNonEmpty(f.ActualOut, f.EstimatedOut); out != "" {
		t := toAirportLocal(out, f.Origin.Timezone)
		snapshot.ActualStartDatetime = &t
	}
	if in := firstNonEmpty(f.ActualIn, f.EstimatedIn); in != "" {
		t := toAirportLocal(in, f.Destination.Timezone)
		snapshot.ActualEndDatetime = &t
	}

	return snapshot, nil
}

func (p *AeroAPI) countryCode(ctx context.Context, iata string) string {
	if p.airportRepo == nil {
		return ""
	}
	airport, err := p.airportRepo.GetByIataCode(ctx, iata)
	if err != nil {
		return ""
	}
	return airport.CountryCode
}

// toAirportLocal converts an AeroAPI UTC timestamp into the airport's zone
func toAirportLocal(utcValue, timezone string) time.Time {
	t, err := time.Parse(time.RFC3339, utcValue)
	if err != nil {
		return time.Time{}
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return t
	}
	return t.In(loc)
}

// normalizeAeroAPIStatus folds vendor status strings into the common enum
func normalizeAeroAPIStatus(status string) entity.FlightStatus {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(status)), " ", "_")
	switch fs := entity.FlightStatus(normalized); fs {
	case entity.StatusScheduled, entity.StatusCheckIn, entity.StatusOnTime, entity.StatusGateClosed,
		entity.StatusBoarding, entity.StatusDelayed, entity.StatusCanceled, entity.StatusDeparted,
		entity.StatusEnRoute, entity.StatusArrived, entity.StatusDiverted:
		return fs
	}
	return entity.StatusUnknown
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
