package entity

import "time"

// Snapshot is a provider response normalized to the common flight shape.
// Optional fields stay empty when the vendor payload omits them.
type Snapshot struct {
	Airline              string
	FlightNumber         string
	DepartureAirport     string
	DepartureCountry     string
	DepartureTimezone    string
	ArrivalAirport       string
	ArrivalCountry       string
	ArrivalTimezone      string
	StartDatetime        time.Time
	EndDatetime          time.Time
	ActualStartDatetime  *time.Time
	ActualEndDatetime    *time.Time
	DepartureTerminal    string
	DepartureCheckInDesk string
	DepartureGate        string
	ArrivalTerminal      string
	BaggageBelt          string
	AircraftType         string
	AircraftRegNumber    string
	Distance             int
	Status               FlightStatus
	Extra                map[string]interface{}
}
