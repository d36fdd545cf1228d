package usecase

import (
	"airplain-service/internal/domain/entity"
)

// StateInput is everything the state-label derivation reads: the clock
// relative to the flight and the stored status/seat assignment.
type StateInput struct {
	Hours          float64
	Minutes        int
	ArrivalMinutes int
	Status         entity.FlightStatus
	Seated         bool
}

// stateRule is one row of the derivation table. Rules are evaluated
// top to bottom and the last matching rule wins, so later rows override
// earlier ones.
type stateRule struct {
	when  func(in StateInput) bool
	state entity.FlightState
	time  func(in StateInput) *int
}

func minutesOffset(offset int) func(in StateInput) *int {
	return func(in StateInput) *int {
		v := in.Minutes - offset
		return &v
	}
}

var stateRules = []stateRule{
	{
		// Airport check-in opens 3h before departure for passengers
		// without a seat, unless the provider already reports otherwise.
		when: func(in StateInput) bool {
			return in.Hours < 3 && in.Hours > 1 && !in.Seated &&
				in.Status != entity.StatusCheckIn && in.Status != entity.StatusBoarding
		},
		state: entity.StateCheckInStart,
		time:  minutesOffset(120),
	},
	{
		when: func(in StateInput) bool {
			return (in.Status == entity.StatusCheckIn || (in.Hours < 2 && in.Minutes > 40)) && !in.Seated
		},
		state: entity.StateCheckInEnd,
		time:  minutesOffset(40),
	},
	{
		// With a seat assigned the check-in countdown is irrelevant;
		// boarding opens at 40 minutes.
		when: func(in StateInput) bool {
			return in.Minutes > 40 && in.Seated
		},
		state: entity.StateBoardingStart,
		time:  minutesOffset(40),
	},
	{
		when: func(in StateInput) bool {
			return (in.Status == entity.StatusBoarding || in.Minutes <= 40) && in.Minutes > 25
		},
		state: entity.StateBoardingEnd,
		time:  minutesOffset(25),
	},
	{
		when: func(in StateInput) bool {
			return (in.Status == entity.StatusBoarding || in.Minutes <= 40) && in.Minutes <= 25
		},
		state: entity.StateLastCall,
	},
	{
		when: func(in StateInput) bool {
			return in.Status == entity.StatusGateClosed
		},
		state: entity.StateGateClosed,
	},
	{
		when: func(in StateInput) bool {
			return in.Minutes <= 20
		},
		state: entity.StateFlightStart,
		time: func(in StateInput) *int {
			v := in.Minutes
			return &v
		},
	},
	{
		// Airborne: departed but not yet at the scheduled arrival time.
		when: func(in StateInput) bool {
			return in.Minutes <= 0 && in.ArrivalMinutes < 0
		},
		state: entity.StateFlightEnd,
		time: func(in StateInput) *int {
			v := -in.ArrivalMinutes
			return &v
		},
	},
}

// DeriveState evaluates the rule table and returns the presentation
// state label with its countdown. Both are empty when no rule matches.
func DeriveState(in StateInput) (entity.FlightState, *int) {
	var state entity.FlightState
	var stateTime *int
	for _, rule := range stateRules {
		if rule.when(in) {
			state = rule.state
			stateTime = nil
			if rule.time != nil {
				stateTime = rule.time(in)
			}
		}
	}
	return state, stateTime
}
