package services

import (
	"context"
	"sync"
	"time"
)

// MemoryAuditRecorder keeps events in process. Handy for tests and local runs.
type MemoryAuditRecorder struct {
	mu     sync.Mutex
	events []AssignmentEvent
}

func (r *MemoryAuditRecorder) Record(_ context.Context, ev AssignmentEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of what has been recorded so far.
func (r *MemoryAuditRecorder) Events() []AssignmentEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]AssignmentEvent(nil), r.events...)
}
