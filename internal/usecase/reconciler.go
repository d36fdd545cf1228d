package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/internal/domain/repository"
	"airplain-service/internal/infrastructure/config"
	"airplain-service/pkg/emitter"
	"airplain-service/pkg/logger"
	"airplain-service/pkg/metrics"
	"airplain-service/pkg/utils"
	"airplain-service/templates"
)

const throttleKeyPrefix = "flight-notifications-"

// PassSettings is the configuration snapshot a reconciliation pass runs
// with. The caller refreshes it from the settings store before each pass.
type PassSettings struct {
	RefreshInterval   time.Duration
	FlightsLimit      int
	OnlyManualRefresh bool
}

// Engine orchestrates a reconciliation pass: for each active flight it
// decides whether to query the provider, diffs the snapshot against the
// stored record, derives the presentation state, fires notifications for
// meaningful changes and archives flights past the threshold.
type Engine struct {
	flightRepo   repository.FlightRepository
	airlineRepo  repository.AirlineRepository
	settingsRepo repository.SettingsRepository
	notifier     repository.NotifierRepository
	provider     repository.FlightProvider
	events       *emitter.Emitter
	metrics      *metrics.Metrics
	config       *config.Config
	logger       logger.Logger
}

// NewEngine creates a new reconciliation engine
func NewEngine(
	flightRepo repository.FlightRepository,
	airlineRepo repository.AirlineRepository,
	settingsRepo repository.SettingsRepository,
	notifier repository.NotifierRepository,
	provider repository.FlightProvider,
	events *emitter.Emitter,
	m *metrics.Metrics,
	cfg *config.Config,
	logger logger.Logger,
) *Engine {
	return &Engine{
		flightRepo:   flightRepo,
		airlineRepo:  airlineRepo,
		settingsRepo: settingsRepo,
		notifier:     notifier,
		provider:     provider,
		events:       events,
		metrics:      m,
		config:       cfg,
		logger:       logger,
	}
}

// LoadSettings reads the pass settings from the settings store, falling
// back to the configured defaults.
func (e *Engine) LoadSettings(ctx context.Context) PassSettings {
	s := PassSettings{
		RefreshInterval:   e.config.RefreshInterval,
		FlightsLimit:      e.config.FlightsLimit,
		OnlyManualRefresh: e.config.OnlyManualRefresh,
	}
	if v, err := e.settingsRepo.Get(ctx, "REFRESH_INTERVAL", ""); err == nil && v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			s.RefreshInterval = time.Duration(minutes) * time.Minute
		}
	}
	if v, err := e.settingsRepo.Get(ctx, "FLIGHTS_LIMIT", ""); err == nil && v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			s.FlightsLimit = limit
		}
	}
	if v, err := e.settingsRepo.Get(ctx, "ONLY_MANUAL_REFRESH", ""); err == nil && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.OnlyManualRefresh = b
		}
	}
	return s
}

// RunPass reconciles every active flight against the reference time and
// returns the flights still active afterwards. A provider or persistence
// failure never aborts the pass; the affected flight is left for the
// next one.
func (e *Engine) RunPass(ctx context.Context, now time.Time, settings PassSettings, force bool) ([]*entity.Flight, error) {
	started := time.Now()

	flights, err := e.flightRepo.GetActive(ctx, settings.FlightsLimit)
	if err != nil {
		e.metrics.ErrorsCount.WithLabelValues("get_active_flights").Inc()
		return nil, fmt.Errorf("failed to load active flights: %w", err)
	}

	result := make([]*entity.Flight, 0, len(flights))
	for _, flight := range flights {
		if e.reconcileFlight(ctx, flight, now, force) {
			result = append(result, flight)
		}
		e.metrics.FlightsReconciled.Inc()
	}

	e.metrics.ActiveFlights.Set(float64(len(result)))
	e.metrics.PassDuration.Observe(time.Since(started).Seconds())
	e.logger.Debug("Reconciliation pass finished",
		"flights", len(flights),
		"active", len(result),
		"force", force)

	return result, nil
}

// reconcileFlight runs the per-flight algorithm and reports whether the
// flight stays in the active set.
func (e *Engine) reconcileFlight(ctx context.Context, flight *entity.Flight, now time.Time, force bool) bool {
	throttle := e.loadThrottle(ctx, flight.ID)
	dirty := false

	departure := flight.DepartureTime()
	hours := departure.Sub(now).Hours()
	minutes := int(math.Ceil(hours * 60))

	// Remote refresh is limited to API-tracked flights inside a polling
	// window whose minute bucket has not fired yet.
	if flight.RecordType == entity.RecordAPITracked {
		window := pollWindowFor(hours, minutes, force)
		if window != WindowNone && (throttle.Bucket(string(window)) != minutes || force) {
			snapshot := e.query(ctx, flight, departure, window)
			if snapshot != nil {
				messages, updated := ApplySnapshot(flight, snapshot)
				dirty = dirty || updated
				flight.Distance = snapshot.Distance
				if len(messages) > 0 && minutes > 0 {
					channel := entity.ChannelFlight
					if minutes < 60 {
						channel = entity.ChannelUrgent
					}
					e.notify(ctx, flight, channel, strings.Join(messages, "\n"))
				}
			}
			throttle.SetBucket(string(window), minutes)
		}
	}

	arrival := flight.ArrivalTime()
	arrivalMinutes := int(math.Ceil(now.Sub(arrival).Minutes()))

	e.resolveCheckInMeta(ctx, flight)

	state, stateTime := DeriveState(StateInput{
		Hours:          hours,
		Minutes:        minutes,
		ArrivalMinutes: arrivalMinutes,
		Status:         flight.Status,
		Seated:         flight.SeatNumber != "",
	})
	flight.Info = entity.FlightInfo{State: state, StateTime: stateTime}

	if minutes <= 0 && !isAirborneOrFinal(flight.Status) {
		flight.Status = entity.StatusEnRoute
		dirty = true
	}

	if hours <= 3 && hours > 2.9 && !throttle.BeforeFlight3h {
		e.notify(ctx, flight, entity.ChannelFlight, templates.MsgBeforeFlight3h)
		throttle.BeforeFlight3h = true
	}

	if flight.CheckInTime != 0 {
		flight.Info.OnlineCheckInOpen = false
		if hours < float64(flight.CheckInTime) && hours > 1 {
			flight.Info.OnlineCheckInOpen = true
			if flight.CheckInLink != "" {
				flight.Info.OnlineCheckInLink = e.makeCheckInLink(ctx, flight, departure)
			}
			if !throttle.OnlineCheckInOpen {
				e.notify(ctx, flight, entity.ChannelFlight, templates.MsgOnlineCheckInOpen)
				throttle.OnlineCheckInOpen = true
			}
		}
	}

	// Late baggage-belt discovery in the first 30 minutes after arrival.
	if flight.RecordType == entity.RecordAPITracked &&
		arrivalMinutes < 30 && arrivalMinutes >= 0 &&
		(arrivalMinutes%5 == 0 || force) && flight.BaggageBelt == "" {
		snapshot := e.query(ctx, flight, departure, beltWindow)
		if snapshot != nil && snapshot.BaggageBelt != "" && flight.BaggageBelt != snapshot.BaggageBelt {
			e.notify(ctx, flight, entity.ChannelFlight, fmt.Sprintf(templates.MsgBaggageBeltChanged, snapshot.BaggageBelt))
			throttle.BaggageBelt = true
			flight.BaggageBelt = snapshot.BaggageBelt
			dirty = true
		}
	}

	// Landed: advance without a status-changed notification.
	if arrivalMinutes >= 0 && !isFinal(flight.Status) {
		flight.Status = entity.StatusArrived
		dirty = true
	}

	// Throttle buckets advance every pass, with or without notifications.
	e.saveThrottle(ctx, flight.ID, throttle)

	if dirty {
		if err := e.flightRepo.Update(ctx, flight); err != nil {
			e.metrics.ErrorsCount.WithLabelValues("update_flight").Inc()
			e.logger.Error("Failed to persist flight update", "flightId", flight.ID, "error", err)
		}
	}

	if arrivalMinutes >= 60 {
		if err := e.flightRepo.Archive(ctx, flight.ID); err != nil {
			e.metrics.ErrorsCount.WithLabelValues("archive_flight").Inc()
			e.logger.Error("Failed to archive flight", "flightId", flight.ID, "error", err)
		}
		if err := e.settingsRepo.Delete(ctx, throttleKeyPrefix+flight.ID); err != nil {
			e.logger.Error("Failed to delete throttle state", "flightId", flight.ID, "error", err)
		}
		flight.IsArchived = true
		e.metrics.FlightsArchived.Inc()
		e.events.Emit(emitter.PastFlightsChanged)
		return false
	}

	return true
}

// query asks the provider for a snapshot. All failures collapse to "no
// data this pass".
func (e *Engine) query(ctx context.Context, flight *entity.Flight, departure time.Time, window PollWindow) *entity.Snapshot {
	e.metrics.ProviderCalls.WithLabelValues(e.provider.Name(), string(window)).Inc()
	snapshot, err := e.provider.GetFlightData(ctx, flight.Airline, flight.FlightNumber, departure)
	if err != nil {
		e.metrics.ErrorsCount.WithLabelValues("provider_query").Inc()
		e.logger.Warn("Provider query failed",
			"airline", flight.Airline,
			"flightNumber", flight.FlightNumber,
			"error", err)
		return nil
	}
	return snapshot
}

// notify dispatches a notification for the flight. Fire-and-forget.
func (e *Engine) notify(ctx context.Context, flight *entity.Flight, channel entity.NotificationChannel, body string) {
	notification := &entity.Notification{
		Channel: channel,
		Title:   templates.FlightTitle(flight.Airline, flight.FlightNumber),
		Body:    body,
		Link:    templates.FlightLink(flight.ID),
	}
	if err := e.notifier.Send(ctx, notification); err != nil {
		e.metrics.ErrorsCount.WithLabelValues("send_notification").Inc()
		e.logger.Error("Failed to send notification", "flightId", flight.ID, "error", err)
		return
	}
	e.metrics.NotificationsSent.WithLabelValues(string(channel)).Inc()
}

// resolveCheckInMeta backfills check-in metadata from the airline
// reference data when the flight record lacks it.
func (e *Engine) resolveCheckInMeta(ctx context.Context, flight *entity.Flight) {
	if flight.CheckInTime != 0 || flight.CheckInLink != "" {
		return
	}
	airline, err := e.airlineRepo.GetByCode(ctx, flight.Airline)
	if err != nil {
		return
	}
	flight.CheckInLink = airline.CheckInLink
	flight.CheckInTime = airline.CheckInTime
}

func (e *Engine) makeCheckInLink(ctx context.Context, flight *entity.Flight, departure time.Time) string {
	firstName, _ := e.settingsRepo.Get(ctx, "firstname", "")
	lastName, _ := e.settingsRepo.Get(ctx, "surname", "")
	return utils.MakeCheckInLink(flight.CheckInLink, utils.CheckInLinkFields{
		DepartureDate:    departure.UTC().Format("2006-01-02"),
		DepartureAirport: flight.DepartureAirport,
		FirstName:        firstName,
		LastName:         lastName,
		PNR:              flight.PNR,
		FlightNumber:     flight.Airline + flight.FlightNumber,
	})
}

func (e *Engine) loadThrottle(ctx context.Context, flightID string) *entity.ThrottleState {
	throttle := &entity.ThrottleState{}
	raw, err := e.settingsRepo.Get(ctx, throttleKeyPrefix+flightID, "{}")
	if err != nil {
		e.logger.Warn("Failed to load throttle state", "flightId", flightID, "error", err)
		return throttle
	}
	if err := json.Unmarshal([]byte(raw), throttle); err != nil {
		e.logger.Warn("Malformed throttle state, starting fresh", "flightId", flightID, "error", err)
		return &entity.ThrottleState{}
	}
	return throttle
}

func (e *Engine) saveThrottle(ctx context.Context, flightID string, throttle *entity.ThrottleState) {
	raw, err := json.Marshal(throttle)
	if err != nil {
		return
	}
	if err := e.settingsRepo.Set(ctx, throttleKeyPrefix+flightID, string(raw)); err != nil {
		e.logger.Error("Failed to persist throttle state", "flightId", flightID, "error", err)
	}
}

func isAirborneOrFinal(status entity.FlightStatus) bool {
	return status == entity.StatusEnRoute || status == entity.StatusDiverted || status == entity.StatusCanceled
}

func isFinal(status entity.FlightStatus) bool {
	return status == entity.StatusArrived || status == entity.StatusDiverted || status == entity.StatusCanceled
}
