package event

import (
	"context"
	"sync"

	"dsc/core"
)

// Memory in-memory append-only event store
type Memory struct {
	mu     sync.RWMutex
	events []core.Event
	traces map[string]bool
}

// NewMemory new in-memory event store
func NewMemory() *Memory {
	return &Memory{
		traces: map[string]bool{},
	}
}

var _ core.EventStore = (*Memory)(nil)

func (s *Memory) Create(_ context.Context, events ...*core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range events {
		if s.traces[event.TraceID] {
			continue
		}

		event.ID = int64(len(s.events) + 1)
		s.events = append(s.events, *event)
		s.traces[event.TraceID] = true
	}

	return nil
}

func (s *Memory) List(_ context.Context, fromID int64, limit int) ([]*core.Event, error) {
	return s.filter(fromID, limit, func(*core.Event) bool { return true }), nil
}

func (s *Memory) ListByUser(_ context.Context, userID string, fromID int64, limit int) ([]*core.Event, error) {
	return s.filter(fromID, limit, func(e *core.Event) bool {
		return e.From == userID || e.To == userID
	}), nil
}

func (s *Memory) filter(fromID int64, limit int, match func(*core.Event) bool) []*core.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 500
	}

	var events []*core.Event
	for idx := range s.events {
		event := s.events[idx]
		if event.ID <= fromID || !match(&event) {
			continue
		}

		events = append(events, &event)
		if len(events) >= limit {
			break
		}
	}

	return events
}
