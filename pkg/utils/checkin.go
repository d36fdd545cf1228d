package utils

import "strings"

// CheckInLinkFields carries the values substituted into an airline's
// online check-in URL template.
type CheckInLinkFields struct {
	DepartureDate    string // YYYY-MM-DD
	DepartureAirport string
	FirstName        string
	LastName         string
	PNR              string
	FlightNumber     string // airline code + number, e.g. BA176
}

// MakeCheckInLink substitutes the airline template tokens with flight and
// passenger values. Unknown tokens are left untouched.
func MakeCheckInLink(template string, fields CheckInLinkFields) string {
	replacer := strings.NewReplacer(
		"{DEP_DATE_EU}", fields.DepartureDate,
		"{IATA_DEP}", fields.DepartureAirport,
		"{FIRST}", fields.FirstName,
		"{LAST}", fields.LastName,
		"{PNR}", fields.PNR,
		"{FLT_NO}", fields.FlightNumber,
	)
	return replacer.Replace(template)
}
