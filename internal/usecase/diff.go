package usecase

import (
	"fmt"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/templates"
)

// ApplySnapshot merges a provider snapshot into the stored flight,
// field by field. Each differing field appends one localized message
// line. Returns the message lines and whether the flight changed.
//
// Status handling follows the monotonic transition rule: a flight in
// en_route only accepts the correction to arrived, silently; an arrived
// flight never reverts to en_route on stale provider data.
func ApplySnapshot(flight *entity.Flight, snapshot *entity.Snapshot) ([]string, bool) {
	var messages []string
	updated := false

	if snapshot.Status != "" && flight.Status != snapshot.Status {
		switch {
		case flight.Status == entity.StatusEnRoute:
			if snapshot.Status == entity.StatusArrived {
				flight.Status = snapshot.Status
				updated = true
			}
		case flight.Status == entity.StatusArrived && snapshot.Status == entity.StatusEnRoute:
			// stale provider data, keep the terminal status
		default:
			messages = append(messages, fmt.Sprintf(templates.MsgStatusChanged, templates.StatusName(snapshot.Status)))
			flight.Status = snapshot.Status
			updated = true
		}
	}

	if snapshot.ActualStartDatetime != nil && !equalTime(flight.ActualStartDatetime, snapshot.ActualStartDatetime) {
		messages = append(messages, fmt.Sprintf(templates.MsgStartDatetimeChanged, snapshot.ActualStartDatetime.Format("15:04")))
		flight.ActualStartDatetime = snapshot.ActualStartDatetime
		updated = true
	}
	if snapshot.DepartureTerminal != "" && flight.DepartureTerminal != snapshot.DepartureTerminal {
		messages = append(messages, fmt.Sprintf(templates.MsgDepartureTerminalChanged, snapshot.DepartureTerminal))
		flight.DepartureTerminal = snapshot.DepartureTerminal
		updated = true
	}
	if snapshot.DepartureCheckInDesk != "" && flight.DepartureCheckInDesk != snapshot.DepartureCheckInDesk {
		messages = append(messages, fmt.Sprintf(templates.MsgCheckInDeskChanged, snapshot.DepartureCheckInDesk))
		flight.DepartureCheckInDesk = snapshot.DepartureCheckInDesk
		updated = true
	}
	if snapshot.DepartureGate != "" && flight.DepartureGate != snapshot.DepartureGate {
		messages = append(messages, fmt.Sprintf(templates.MsgDepartureGateChanged, snapshot.DepartureGate))
		flight.DepartureGate = snapshot.DepartureGate
		updated = true
	}
	if snapshot.ActualEndDatetime != nil && !equalTime(flight.ActualEndDatetime, snapshot.ActualEndDatetime) {
		messages = append(messages, fmt.Sprintf(templates.MsgEndDatetimeChanged, snapshot.ActualEndDatetime.Format("15:04")))
		flight.ActualEndDatetime = snapshot.ActualEndDatetime
		updated = true
	}
	if snapshot.ArrivalTerminal != "" && flight.ArrivalTerminal != snapshot.ArrivalTerminal {
		messages = append(messages, fmt.Sprintf(templates.MsgArrivalTerminalChanged, snapshot.ArrivalTerminal))
		flight.ArrivalTerminal = snapshot.ArrivalTerminal
		updated = true
	}
	if snapshot.BaggageBelt != "" && flight.BaggageBelt != snapshot.BaggageBelt {
		messages = append(messages, fmt.Sprintf(templates.MsgBaggageBeltChanged, snapshot.BaggageBelt))
		flight.BaggageBelt = snapshot.BaggageBelt
		updated = true
	}
	if len(snapshot.Extra) > 0 {
		flight.Extra = snapshot.Extra
	}

	return messages, updated
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
