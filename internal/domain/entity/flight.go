package entity

import (
	"time"
)

// FlightStatus is the normalized status of a flight as reported by the
// data providers or derived locally from wall-clock time.
type FlightStatus string

const (
	StatusScheduled  FlightStatus = "scheduled"
	StatusCheckIn    FlightStatus = "checkin"
	StatusOnTime     FlightStatus = "on_time"
	StatusGateClosed FlightStatus = "gateclosed"
	StatusBoarding   FlightStatus = "boarding"
	StatusDelayed    FlightStatus = "delayed"
	StatusCanceled   FlightStatus = "canceled"
	StatusDeparted   FlightStatus = "departed"
	StatusEnRoute    FlightStatus = "en_route"
	StatusArrived    FlightStatus = "arrived"
	StatusDiverted   FlightStatus = "diverted"
	StatusUnknown    FlightStatus = "unknown"
)

// RecordType marks the provenance of a flight record.
type RecordType int

const (
	RecordImported   RecordType = 0 // bulk CSV import, never polled
	RecordAPITracked RecordType = 1 // created via provider lookup, eligible for polling
	RecordManual     RecordType = 2 // user-entered, never polled
)

// FlightState is the transient presentation label derived on every
// reconciliation pass. It is never persisted.
type FlightState string

const (
	StateCheckInStart  FlightState = "checkin_start"
	StateCheckInEnd    FlightState = "checkin_end"
	StateBoardingStart FlightState = "boarding_start"
	StateBoardingEnd   FlightState = "boarding_end"
	StateLastCall      FlightState = "lastcall"
	StateGateClosed    FlightState = "gateclosed"
	StateFlightStart   FlightState = "flight_start"
	StateFlightEnd     FlightState = "flight_end"
)

// FlightInfo holds per-pass derived presentation state.
type FlightInfo struct {
	State             FlightState `bson:"-" json:"state"`
	StateTime         *int        `bson:"-" json:"stateTime,omitempty"`
	OnlineCheckInOpen bool        `bson:"-" json:"onlineCheckInOpen"`
	OnlineCheckInLink string      `bson:"-" json:"onlineCheckInLink,omitempty"`
}

// Flight is the persisted flight entity.
type Flight struct {
	ID                   string                 `bson:"_id,omitempty" json:"flightId"`
	Airline              string                 `bson:"airline" json:"airline"`
	FlightNumber         string                 `bson:"flightNumber" json:"flightNumber"`
	DepartureAirport     string                 `bson:"departureAirport" json:"departureAirport"`
	DepartureCountry     string                 `bson:"departureCountry" json:"departureCountry"`
	DepartureTimezone    string                 `bson:"departureTimezone" json:"departureAirportTimezone"`
	ArrivalAirport       string                 `bson:"arrivalAirport" json:"arrivalAirport"`
	ArrivalCountry       string                 `bson:"arrivalCountry" json:"arrivalCountry"`
	ArrivalTimezone      string                 `bson:"arrivalTimezone" json:"arrivalAirportTimezone"`
	StartDatetime        time.Time              `bson:"startDatetime" json:"startDatetime"`
	EndDatetime          time.Time              `bson:"endDatetime" json:"endDatetime"`
	ActualStartDatetime  *time.Time             `bson:"actualStartDatetime,omitempty" json:"actualStartDatetime,omitempty"`
	ActualEndDatetime    *time.Time             `bson:"actualEndDatetime,omitempty" json:"actualEndDatetime,omitempty"`
	DepartureTerminal    string                 `bson:"departureTerminal,omitempty" json:"departureTerminal,omitempty"`
	DepartureCheckInDesk string                 `bson:"departureCheckInDesk,omitempty" json:"departureCheckInDesk,omitempty"`
	DepartureGate        string                 `bson:"departureGate,omitempty" json:"departureGate,omitempty"`
	ArrivalTerminal      string                 `bson:"arrivalTerminal,omitempty" json:"arrivalTerminal,omitempty"`
	BaggageBelt          string                 `bson:"baggageBelt,omitempty" json:"baggageBelt,omitempty"`
	AircraftType         string                 `bson:"aircraftType,omitempty" json:"aircraftType,omitempty"`
	AircraftRegNumber    string                 `bson:"aircraftRegNumber,omitempty" json:"aircraftRegNumber,omitempty"`
	Distance             int                    `bson:"distance" json:"distance"`
	Status               FlightStatus           `bson:"status" json:"status"`
	RecordType           RecordType             `bson:"recordType" json:"recordType"`
	IsArchived           bool                   `bson:"isArchived" json:"isArchived"`
	SeatNumber           string                 `bson:"seatNumber,omitempty" json:"seatNumber,omitempty"`
	PassengerName        string                 `bson:"passengerName,omitempty" json:"passengerName,omitempty"`
	PNR                  string                 `bson:"pnr,omitempty" json:"pnr,omitempty"`
	CheckInLink          string                 `bson:"checkInLink,omitempty" json:"checkInLink,omitempty"`
	CheckInTime          int                    `bson:"checkInTime,omitempty" json:"checkInTime,omitempty"`
	Notes                string                 `bson:"notes,omitempty" json:"notes,omitempty"`
	Extra                map[string]interface{} `bson:"extra,omitempty" json:"extra,omitempty"`
	CreatedAt            time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time              `bson:"updatedAt" json:"updatedAt"`

	Info FlightInfo `bson:"-" json:"info"`
}

// DepartureTime returns the actual departure time when the provider has
// revised it, otherwise the scheduled one.
func (f *Flight) DepartureTime() time.Time {
	if f.ActualStartDatetime != nil {
		return *f.ActualStartDatetime
	}
	return f.StartDatetime
}

// ArrivalTime returns the actual arrival time when the provider has
// revised it, otherwise the scheduled one.
func (f *Flight) ArrivalTime() time.Time {
	if f.ActualEndDatetime != nil {
		return *f.ActualEndDatetime
	}
	return f.EndDatetime
}
