package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"airplain-service/internal/domain/entity"
	"airplain-service/internal/domain/repository"
	"airplain-service/pkg/logger"
)

// Flights longer than this count as long haul.
const longHaulMinutes = 6 * 60

// YearStats aggregates the travel history of one calendar year.
type YearStats struct {
	Flights              int    `json:"flights"`
	Distance             int    `json:"distance"`
	Duration             int    `json:"duration"`
	DomesticFlights      int    `json:"domesticFlights"`
	InternationalFlights int    `json:"internationalFlights"`
	LongHaulFlights      int    `json:"longHaulFlights"`
	Airports             int    `json:"airports"`
	Airlines             int    `json:"airlines"`
	Aircrafts            int    `json:"aircrafts"`
	Countries            int    `json:"countries"`
	CountryCodes         string `json:"countryCodes"`
	AvgDistance          int    `json:"avgDistance"`
	AvgDuration          int    `json:"avgDuration"`
	AvgDelay             int    `json:"avgDelay"`
}

// StatsService computes travel statistics over archived flights
type StatsService struct {
	flightRepo repository.FlightRepository
	logger     logger.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(flightRepo repository.FlightRepository, logger logger.Logger) *StatsService {
	return &StatsService{
		flightRepo: flightRepo,
		logger:     logger,
	}
}

type yearAccumulator struct {
	stats      YearStats
	airports   map[string]bool
	airlines   map[string]bool
	aircrafts  map[string]bool
	countries  map[string]bool
	delaySum   int
	delayCount int
}

// YearlyStats aggregates archived flights per departure year. Canceled
// flights do not contribute.
func (s *StatsService) YearlyStats(ctx context.Context) (map[string]*YearStats, error) {
	flights, err := s.flightRepo.GetArchived(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load archived flights: %w", err)
	}

	years := make(map[string]*yearAccumulator)
	for _, f := range flights {
		if f.Status == entity.StatusCanceled {
			continue
		}

		year := fmt.Sprintf("%d", f.StartDatetime.Year())
		acc, ok := years[year]
		if !ok {
			acc = &yearAccumulator{
				airports:  make(map[string]bool),
				airlines:  make(map[string]bool),
				aircrafts: make(map[string]bool),
				countries: make(map[string]bool),
			}
			years[year] = acc
		}

		duration := int(f.ArrivalTime().Sub(f.DepartureTime()).Minutes())
		if duration < 0 {
			duration = 0
		}

		acc.stats.Flights++
		acc.stats.Distance += f.Distance
		acc.stats.Duration += duration
		if duration > longHaulMinutes {
			acc.stats.LongHaulFlights++
		}
		if f.DepartureCountry != "" && f.DepartureCountry == f.ArrivalCountry {
			acc.stats.DomesticFlights++
		} else {
			acc.stats.InternationalFlights++
		}

		acc.airports[f.DepartureAirport] = true
		acc.airports[f.ArrivalAirport] = true
		acc.airlines[f.Airline] = true
		if f.AircraftType != "" {
			acc.aircrafts[f.AircraftType] = true
		}
		for _, country := range []string{f.DepartureCountry, f.ArrivalCountry} {
			if country != "" {
				acc.countries[country] = true
			}
		}

		if f.ActualEndDatetime != nil {
			acc.delaySum += int(f.ActualEndDatetime.Sub(f.EndDatetime).Minutes())
			acc.delayCount++
		}
	}

	result := make(map[string]*YearStats, len(years))
	for year, acc := range years {
		stats := acc.stats
		stats.Airports = len(acc.airports)
		stats.Airlines = len(acc.airlines)
		stats.Aircrafts = len(acc.aircrafts)
		stats.Countries = len(acc.countries)
		stats.CountryCodes = joinSorted(acc.countries)
		if stats.Flights > 0 {
			stats.AvgDistance = stats.Distance / stats.Flights
			stats.AvgDuration = stats.Duration / stats.Flights
		}
		if acc.delayCount > 0 {
			stats.AvgDelay = acc.delaySum / acc.delayCount
		}
		result[year] = &stats
	}

	return result, nil
}

func joinSorted(set map[string]bool) string {
	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return strings.Join(codes, ",")
}
