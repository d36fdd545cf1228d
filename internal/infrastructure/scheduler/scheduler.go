package scheduler

import (
	"context"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/internal/usecase"
	"airplain-service/pkg/emitter"
	"airplain-service/pkg/logger"
)

// Engine is the part of the reconciliation engine the scheduler drives.
type Engine interface {
	LoadSettings(ctx context.Context) usecase.PassSettings
	RunPass(ctx context.Context, now time.Time, settings usecase.PassSettings, force bool) ([]*entity.Flight, error)
}

// Scheduler drives reconciliation passes: a periodic timer at the
// configured refresh interval plus refresh requests from the API. The
// timer pauses while no flights are active or manual-refresh-only is
// set; a refresh request always runs a forced pass and re-arms the
// timer when active flights reappear. Flight lookup and import emit a
// refresh request, so a new flight wakes a paused scheduler.
type Scheduler struct {
	engine Engine
	events *emitter.Emitter
	logger logger.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(engine Engine, events *emitter.Emitter, logger logger.Logger) *Scheduler {
	return &Scheduler{
		engine: engine,
		events: events,
		logger: logger,
	}
}

// Run loops until the context is canceled. Settings are re-read from the
// settings store before every pass, so interval and limit changes take
// effect without a restart.
func (s *Scheduler) Run(ctx context.Context) {
	refreshCh := s.events.Subscribe(emitter.RefreshRequested)

	// Initial pass establishes the active-flight count.
	settings := s.engine.LoadSettings(ctx)
	active := s.pass(ctx, settings, false)

	for {
		var timer *time.Timer
		var timerCh <-chan time.Time
		if !settings.OnlyManualRefresh && active > 0 {
			timer = time.NewTimer(settings.RefreshInterval)
			timerCh = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			s.logger.Info("Scheduler stopped")
			return
		case <-refreshCh:
			if timer != nil {
				timer.Stop()
			}
			settings = s.engine.LoadSettings(ctx)
			active = s.pass(ctx, settings, true)
		case <-timerCh:
			settings = s.engine.LoadSettings(ctx)
			active = s.pass(ctx, settings, false)
		}
	}
}

func (s *Scheduler) pass(ctx context.Context, settings usecase.PassSettings, force bool) int {
	flights, err := s.engine.RunPass(ctx, time.Now(), settings, force)
	if err != nil {
		s.logger.Error("Reconciliation pass failed", "error", err)
		return 0
	}
	if len(flights) == 0 {
		s.logger.Debug("No active flights, periodic refresh paused")
	}
	return len(flights)
}
