package events

import (
	"context"
	"sync"

	"refdata/internal/catalog/core"
)

// Recorder collects published events in memory. Used by tests and as the
// default sink when no Kafka brokers are configured.
type Recorder struct {
	mu     sync.Mutex
	events []core.Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, evts []core.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evts...)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []core.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset clears recorded events between test cases.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
