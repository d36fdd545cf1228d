package templates

import (
	"fmt"

	"airplain-service/internal/domain/entity"
)

// Message templates for flight notifications. Each changed field
// contributes one line to the combined notification body.
const (
	MsgStatusChanged            = "Status changed to %s"
	MsgStartDatetimeChanged     = "Departure time changed to %s"
	MsgDepartureTerminalChanged = "Departure terminal changed to %s"
	MsgCheckInDeskChanged       = "Check-in desk changed to %s"
	MsgDepartureGateChanged     = "Departure gate changed to %s"
	MsgEndDatetimeChanged       = "Arrival time changed to %s"
	MsgArrivalTerminalChanged   = "Arrival terminal changed to %s"
	MsgBaggageBeltChanged       = "Baggage belt %s"

	MsgBeforeFlight3h     = "Departure in 3 hours"
	MsgOnlineCheckInOpen  = "Online check-in is open"
)

// statusNames maps statuses to the human-readable form used in
// notification bodies.
var statusNames = map[entity.FlightStatus]string{
	entity.StatusScheduled:  "scheduled",
	entity.StatusCheckIn:    "check-in",
	entity.StatusOnTime:     "on time",
	entity.StatusGateClosed: "gate closed",
	entity.StatusBoarding:   "boarding",
	entity.StatusDelayed:    "delayed",
	entity.StatusCanceled:   "canceled",
	entity.StatusDeparted:   "departed",
	entity.StatusEnRoute:    "en route",
	entity.StatusArrived:    "arrived",
	entity.StatusDiverted:   "diverted",
	entity.StatusUnknown:    "unknown",
}

// StatusName returns the display name of a flight status
func StatusName(status entity.FlightStatus) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return string(status)
}

// FlightTitle builds the notification title for a flight
func FlightTitle(airline, flightNumber string) string {
	return fmt.Sprintf("Flight %s %s", airline, flightNumber)
}

// FlightLink builds the deep link opening the flight in the client
func FlightLink(flightID string) string {
	return fmt.Sprintf("/flights/actual?flightId=%s", flightID)
}
