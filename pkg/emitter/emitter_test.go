package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitReachesSubscribers(t *testing.T) {
	e := New()
	ch := e.Subscribe(RefreshRequested)

	e.Emit(RefreshRequested)

	select {
	case <-ch:
	default:
		t.Fatal("expected an event")
	}
}

func TestEmitWithoutSubscribers(t *testing.T) {
	e := New()
	assert.NotPanics(t, func() { e.Emit(PastFlightsChanged) })
}

func TestEmitNeverBlocks(t *testing.T) {
	e := New()
	ch := e.Subscribe(RefreshRequested)

	// Second emit finds the buffer full and is dropped.
	e.Emit(RefreshRequested)
	e.Emit(RefreshRequested)

	<-ch
	select {
	case <-ch:
		t.Fatal("expected the second event to be dropped")
	default:
	}
}

func TestTopicsAreIndependent(t *testing.T) {
	e := New()
	refresh := e.Subscribe(RefreshRequested)
	past := e.Subscribe(PastFlightsChanged)

	e.Emit(PastFlightsChanged)

	select {
	case <-refresh:
		t.Fatal("unexpected event on the refresh topic")
	default:
	}
	select {
	case <-past:
	default:
		t.Fatal("expected an event on the past flights topic")
	}
}
