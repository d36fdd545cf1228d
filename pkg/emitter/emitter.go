package emitter

import "sync"

// Topic names events flowing between the engine, the scheduler and the API.
type Topic string

const (
	PastFlightsChanged Topic = "pastFlightsChanged"
	RefreshRequested   Topic = "refreshRequested"
)

// Emitter is a small in-process event bus. Emit never blocks: a subscriber
// that is not draining its channel misses the event.
type Emitter struct {
	mu   sync.RWMutex
	subs map[Topic][]chan struct{}
}

// New creates a new emitter
func New() *Emitter {
	return &Emitter{
		subs: make(map[Topic][]chan struct{}),
	}
}

// Subscribe returns a channel that receives a signal on every Emit for
// the topic.
func (e *Emitter) Subscribe(topic Topic) <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	ch := make(chan struct{}, 1)
	e.subs[topic] = append(e.subs[topic], ch)
	return ch
}

// Emit signals all subscribers of the topic
func (e *Emitter) Emit(topic Topic) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, ch := range e.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
