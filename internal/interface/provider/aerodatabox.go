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
	"airplain-service/pkg/logger"
)

// adbStatuses maps AeroDataBox vendor statuses to the normalized enum
var adbStatuses = map[string]entity.FlightStatus{
	"Approaching":       entity.StatusEnRoute,
	"Arrived":           entity.StatusArrived,
	"Boarding":          entity.StatusBoarding,
	"Canceled":          entity.StatusCanceled,
	"CanceledUncertain": entity.StatusUnknown,
	"CheckIn":           entity.StatusCheckIn,
	"Delayed":           entity.StatusDelayed,
	"Departed":          entity.StatusDeparted,
	"Diverted":          entity.StatusDiverted,
	"EnRoute":           entity.StatusEnRoute,
	"Expected":          entity.StatusScheduled,
	"GateClosed":        entity.StatusGateClosed,
	"Unknown":           entity.StatusUnknown,
}

// AeroDataBox implements FlightProvider for the AeroDataBox API
type AeroDataBox struct {
	apiURL string
	apiKey string
	client *http.Client
	logger logger.Logger
}

// NewAeroDataBox creates a new AeroDataBox adapter
func NewAeroDataBox(apiURL, apiKey string, timeout time.Duration, logger logger.Logger) *AeroDataBox {
	return &AeroDataBox{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Name returns the provider name
func (p *AeroDataBox) Name() string {
	return "aerodatabox"
}

type adbTime struct {
	Local string `json:"local"`
}

type adbAirport struct {
	Iata        string `json:"iata"`
	CountryCode string `json:"countryCode"`
	TimeZone    string `json:"timeZone"`
}

type adbFlight struct {
	Number    string `json:"number"`
	Status    string `json:"status"`
	Departure struct {
		Airport       adbAirport `json:"airport"`
		ScheduledTime adbTime    `json:"scheduledTime"`
		RevisedTime   *adbTime   `json:"revisedTime"`
		Terminal      string     `json:"terminal"`
		CheckInDesk   string     `json:"checkInDesk"`
		Gate          string     `json:"gate"`
	} `json:"departure"`
	Arrival struct {
		Airport       adbAirport `json:"airport"`
		ScheduledTime adbTime    `json:"scheduledTime"`
		RevisedTime   *adbTime   `json:"revisedTime"`
		Terminal      string     `json:"terminal"`
		BaggageBelt   string     `json:"baggageBelt"`
	} `json:"arrival"`
	Aircraft struct {
		Reg   string `json:"reg"`
		Model string `json:"model"`
	} `json:"aircraft"`
	Airline struct {
		Iata string `json:"iata"`
		Name string `json:"name"`
	} `json:"airline"`
	GreatCircleDistance struct {
		Km float64 `json:"km"`
	} `json:"greatCircleDistance"`
}

// GetFlightData queries AeroDataBox for a flight on its local departure date.
// Fails soft: nil snapshot on HTTP error, timeout or empty payload.
func (p *AeroDataBox) GetFlightData(ctx context.Context, airline, flightNumber string, date time.Time) (*entity.Snapshot, error) {
	url := fmt.Sprintf("%s/flights/Number/%s%s/%s?dateLocalRole=Departure&withAircraftImage=false&withLocation=false",
		p.apiURL, airline, flightNumber, date.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-magicapi-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("AeroDataBox request failed", "error", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("AeroDataBox returned non-OK status", "status", resp.StatusCode)
		return nil, nil
	}

	var data []adbFlight
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		p.logger.Warn("AeroDataBox payload decode failed", "error", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	f := data[0]
	status, ok := adbStatuses[f.Status]
	if !ok {
		status = entity.StatusUnknown
	}

	snapshot := &entity.Snapshot{
		Airline:              airline,
		FlightNumber:         flightNumber,
		DepartureAirport:     f.Departure.Airport.Iata,
		DepartureCountry:     f.Departure.Airport.CountryCode,
		DepartureTimezone:    f.Departure.Airport.TimeZone,
		ArrivalAirport:       f.Arrival.Airport.Iata,
		ArrivalCountry:       f.Arrival.Airport.CountryCode,
		ArrivalTimezone:      f.Arrival.Airport.TimeZone,
		StartDatetime:        parseADBLocal(f.Departure.ScheduledTime.Local),
		EndDatetime:          parseADBLocal(f.Arrival.ScheduledTime.Local),
		DepartureTerminal:    f.Departure.Terminal,
		DepartureCheckInDesk: f.Departure.CheckInDesk,
		DepartureGate:        f.Departure.Gate,
		ArrivalTerminal:      f.Arrival.Terminal,
		BaggageBelt:          f.Arrival.BaggageBelt,
		AircraftType:         f.Aircraft.Model,
		AircraftRegNumber:    f.Aircraft.Reg,
		Distance:             int(math.Round(f.GreatCircleDistance.Km)),
		Status:               status,
	}
	if f.Departure.RevisedTime != nil {
		t := parseADBLocal(f.Departure.RevisedTime.Local)
		snapshot.ActualStartDatetime = &t
	}
	if f.Arrival.RevisedTime != nil {
		t := parseADBLocal(f.Arrival.RevisedTime.Local)
		snapshot.ActualEndDatetime = &t
	}
	if f.Airline.Iata != "" && f.Airline.Iata != airline {
		// Codeshare: the operating carrier differs from the marketing one
		carrierNumber := flightNumber
		if parts := strings.Split(f.Number, " "); len(parts) > 1 {
			carrierNumber = parts[1]
		}
		snapshot.Extra = map[string]interface{}{
			"carrier":             f.Airline.Iata,
			"carrierName":         f.Airline.Name,
			"carrierFlightNumber": carrierNumber,
		}
	}

	return snapshot, nil
}

// parseADBLocal parses the AeroDataBox local time formats
func parseADBLocal(value string) time.Time {
	layouts := []string{
		"2006-01-02 15:04-07:00",
		"2006-01-02 15:04:05-07:00",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
