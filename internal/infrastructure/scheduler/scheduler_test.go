package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"airplain-service/internal/domain/entity"
	"airplain-service/internal/usecase"
	"airplain-service/pkg/emitter"
	"airplain-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	mu        sync.Mutex
	settings  usecase.PassSettings
	active    int
	passes    int
	forced    []bool
	loadCalls int
}

func (e *fakeEngine) LoadSettings(ctx context.Context) usecase.PassSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadCalls++
	return e.settings
}

func (e *fakeEngine) RunPass(ctx context.Context, now time.Time, settings usecase.PassSettings, force bool) ([]*entity.Flight, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.passes++
	e.forced = append(e.forced, force)
	flights := make([]*entity.Flight, e.active)
	for i := range flights {
		flights[i] = &entity.Flight{}
	}
	return flights, nil
}

func (e *fakeEngine) setActive(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = n
}

func (e *fakeEngine) passCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.passes
}

func (e *fakeEngine) lastForced() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.forced) > 0 && e.forced[len(e.forced)-1]
}

func (e *fakeEngine) loadCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadCalls
}

func newSchedulerFixture(settings usecase.PassSettings) (*Scheduler, *fakeEngine, *emitter.Emitter) {
	engine := &fakeEngine{settings: settings}
	events := emitter.New()
	return NewScheduler(engine, events, logger.NewNopLogger()), engine, events
}

func TestRunPollsWhileFlightsAreActive(t *testing.T) {
	sched, engine, _ := newSchedulerFixture(usecase.PassSettings{RefreshInterval: 10 * time.Millisecond})
	engine.setActive(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	require.Eventually(t, func() bool { return engine.passCount() >= 3 },
		time.Second, 5*time.Millisecond)
	// Timer passes are not forced.
	assert.False(t, engine.lastForced())
	// Settings are reloaded before every timer pass.
	assert.GreaterOrEqual(t, engine.loadCount(), 3)
}

func TestRunResumesAfterIdle(t *testing.T) {
	sched, engine, events := newSchedulerFixture(usecase.PassSettings{RefreshInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	// With no active flights the timer stays disarmed after the
	// initial pass.
	require.Eventually(t, func() bool { return engine.passCount() == 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, engine.passCount())

	// A new flight arrives through the API; the refresh event wakes
	// the scheduler and the periodic cadence resumes.
	engine.setActive(1)
	events.Emit(emitter.RefreshRequested)

	require.Eventually(t, func() bool { return engine.passCount() >= 3 },
		time.Second, 5*time.Millisecond)
}

func TestRunManualRefreshForcesThePass(t *testing.T) {
	sched, engine, events := newSchedulerFixture(usecase.PassSettings{RefreshInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	require.Eventually(t, func() bool { return engine.passCount() == 1 },
		time.Second, 5*time.Millisecond)
	assert.False(t, engine.lastForced())

	events.Emit(emitter.RefreshRequested)

	require.Eventually(t, func() bool { return engine.passCount() == 2 },
		time.Second, 5*time.Millisecond)
	assert.True(t, engine.lastForced())
}

func TestRunPausesWhenManualRefreshOnly(t *testing.T) {
	sched, engine, events := newSchedulerFixture(usecase.PassSettings{
		RefreshInterval:   10 * time.Millisecond,
		OnlyManualRefresh: true,
	})
	engine.setActive(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	require.Eventually(t, func() bool { return engine.passCount() == 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, engine.passCount())

	events.Emit(emitter.RefreshRequested)
	require.Eventually(t, func() bool { return engine.passCount() == 2 },
		time.Second, 5*time.Millisecond)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	sched, engine, _ := newSchedulerFixture(usecase.PassSettings{RefreshInterval: 10 * time.Millisecond})
	engine.setActive(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return engine.passCount() >= 1 },
		time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}
