package usecase

import "math"

// PollWindow is one of the named time-to-departure bands that bound
// provider API call volume. Each band has its own cadence.
type PollWindow string

const (
	WindowNone PollWindow = ""
	Window24h  PollWindow = "24h"  // once, 23-24h before departure
	Window3h   PollWindow = "3h"   // hourly, 1.9-3h before departure
	Window90m  PollWindow = "90m"  // every 5 minutes, 45-90 min before
	WindowLast PollWindow = "last" // every 3 minutes, 15-45 min before

	// beltWindow labels the post-arrival baggage-belt queries. It is not
	// part of the pre-departure cadence table.
	beltWindow PollWindow = "belt"
)

// pollWindowFor returns the polling window for the given time to
// departure. force bypasses the cadence checks and, outside every band,
// falls through to the last window so a manual refresh always queries.
func pollWindowFor(hours float64, minutes int, force bool) PollWindow {
	switch {
	case hours >= 23 && hours < 24:
		return Window24h
	case hours >= 1.9 && hours <= 3 && hours == math.Floor(hours):
		return Window3h
	case hours >= 0.75 && hours <= 1.5 && (minutes%5 == 0 || force):
		return Window90m
	case hours >= 0.25 && hours < 0.75 && (minutes%3 == 0 || force):
		return WindowLast
	case force:
		return WindowLast
	}
	return WindowNone
}
