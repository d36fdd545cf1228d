package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/internal/domain/repository"
	"airplain-service/pkg/logger"
)

// transferColumns is the CSV column set for import and export. The first
// eleven are mandatory on import.
var transferColumns = []string{
	"airline",
	"flight_number",
	"departure_airport",
	"departure_country",
	"departure_airport_timezone",
	"arrival_airport",
	"arrival_country",
	"arrival_airport_timezone",
	"start_datetime",
	"end_datetime",
	"distance",
	"actual_start_datetime",
	"actual_end_datetime",
	"departure_terminal",
	"departure_check_in_desk",
	"departure_gate",
	"arrival_terminal",
	"baggage_belt",
	"aircraft_type",
	"aircraft_reg_number",
	"status",
}

const requiredColumns = 11

// importableStatuses are the statuses an imported record may carry;
// anything else collapses to arrived.
var importableStatuses = map[entity.FlightStatus]bool{
	entity.StatusArrived:   true,
	entity.StatusCanceled:  true,
	entity.StatusDiverted:  true,
	entity.StatusScheduled: true,
}

// FlightTransfer imports and exports flight history as CSV
type FlightTransfer struct {
	flightRepo repository.FlightRepository
	logger     logger.Logger
}

// NewFlightTransfer creates a new flight transfer usecase
func NewFlightTransfer(flightRepo repository.FlightRepository, logger logger.Logger) *FlightTransfer {
	return &FlightTransfer{
		flightRepo: flightRepo,
		logger:     logger,
	}
}

// Import reads CSV records and stores the valid ones as imported
// flights. Invalid or duplicate rows are skipped, not reported as
// errors. Returns the number of imported flights.
func (t *FlightTransfer) Import(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	imported := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.logger.Warn("Skipping malformed CSV row", "error", err)
			continue
		}

		flight, ok := t.parseRow(index, row)
		if !ok {
			continue
		}

		existing, err := t.flightRepo.FindByFlightDate(ctx, flight.Airline, flight.FlightNumber, flight.StartDatetime.UTC())
		if err != nil || existing != nil {
			continue
		}

		if err := t.flightRepo.Insert(ctx, flight); err != nil {
			t.logger.Error("Failed to insert imported flight", "airline", flight.Airline, "flightNumber", flight.FlightNumber, "error", err)
			continue
		}
		imported++
	}

	t.logger.Info("Flight import finished", "imported", imported)
	return imported, nil
}

// parseRow validates one CSV row and builds the imported record.
func (t *FlightTransfer) parseRow(index map[string]int, row []string) (*entity.Flight, bool) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		v := row[i]
		if v == "null" || v == "NULL" {
			return ""
		}
		return v
	}

	for _, name := range transferColumns[:requiredColumns] {
		if field(name) == "" {
			return nil, false
		}
	}

	if len(field("airline")) != 2 ||
		len(field("departure_airport")) != 3 || len(field("arrival_airport")) != 3 ||
		len(field("departure_country")) != 2 || len(field("arrival_country")) != 2 {
		return nil, false
	}

	start, err := parseFlexibleTime(field("start_datetime"))
	if err != nil {
		return nil, false
	}
	end, err := parseFlexibleTime(field("end_datetime"))
	if err != nil {
		return nil, false
	}

	flight := &entity.Flight{
		Airline:              field("airline"),
		FlightNumber:         field("flight_number"),
		DepartureAirport:     field("departure_airport"),
		DepartureCountry:     field("departure_country"),
		DepartureTimezone:    field("departure_airport_timezone"),
		ArrivalAirport:       field("arrival_airport"),
		ArrivalCountry:       field("arrival_country"),
		ArrivalTimezone:      field("arrival_airport_timezone"),
		StartDatetime:        start,
		EndDatetime:          end,
		DepartureTerminal:    field("departure_terminal"),
		DepartureCheckInDesk: field("departure_check_in_desk"),
		DepartureGate:        field("departure_gate"),
		ArrivalTerminal:      field("arrival_terminal"),
		BaggageBelt:          field("baggage_belt"),
		AircraftType:         field("aircraft_type"),
		AircraftRegNumber:    field("aircraft_reg_number"),
		RecordType:           entity.RecordImported,
	}

	if distance, err := strconv.Atoi(field("distance")); err == nil {
		flight.Distance = distance
	}

	// Actual times default to the scheduled ones when absent.
	actualStart := start
	if v := field("actual_start_datetime"); v != "" {
		actualStart, err = parseFlexibleTime(v)
		if err != nil {
			return nil, false
		}
	}
	actualEnd := end
	if v := field("actual_end_datetime"); v != "" {
		actualEnd, err = parseFlexibleTime(v)
		if err != nil {
			return nil, false
		}
	}
	flight.ActualStartDatetime = &actualStart
	flight.ActualEndDatetime = &actualEnd

	landed := actualEnd.Before(time.Now())
	status := entity.FlightStatus(field("status"))
	if status == "" {
		if landed {
			status = entity.StatusArrived
		} else {
			status = entity.StatusScheduled
		}
	}
	if !importableStatuses[status] {
		status = entity.StatusArrived
	}
	flight.Status = status
	flight.IsArchived = landed

	return flight, true
}

// Export writes every stored flight as CSV, without internal fields.
func (t *FlightTransfer) Export(ctx context.Context, w io.Writer) error {
	flights, err := t.flightRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load flights: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(transferColumns); err != nil {
		return err
	}

	for _, f := range flights {
		row := []string{
			f.Airline,
			f.FlightNumber,
			f.DepartureAirport,
			f.DepartureCountry,
			f.DepartureTimezone,
			f.ArrivalAirport,
			f.ArrivalCountry,
			f.ArrivalTimezone,
			f.StartDatetime.Format(time.RFC3339),
			f.EndDatetime.Format(time.RFC3339),
			strconv.Itoa(f.Distance),
			formatOptionalTime(f.ActualStartDatetime),
			formatOptionalTime(f.ActualEndDatetime),
			f.DepartureTerminal,
			f.DepartureCheckInDesk,
			f.DepartureGate,
			f.ArrivalTerminal,
			f.BaggageBelt,
			f.AircraftType,
			f.AircraftRegNumber,
			string(f.Status),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// parseFlexibleTime accepts the datetime formats seen in exports of
// other trackers.
func parseFlexibleTime(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05-07:00",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
