package position

import (
	"context"
	"sort"
	"sync"

	"dsc/core"

	"github.com/fox-one/pkg/store/db"
)

// Memory in-memory position store
type Memory struct {
	mu        sync.RWMutex
	positions map[string]*core.Position
}

// NewMemory new in-memory position store
func NewMemory() *Memory {
	return &Memory{
		positions: map[string]*core.Position{},
	}
}

var _ core.PositionStore = (*Memory)(nil)

func (s *Memory) Find(_ context.Context, userID string) (*core.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.positions[userID]; ok {
		return p.Clone(), nil
	}

	return core.NewPosition(userID), nil
}

func (s *Memory) Save(_ context.Context, positions ...*core.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range positions {
		var version int64
		if stored, ok := s.positions[p.UserID]; ok {
			version = stored.Version
		}

		if p.Version != version {
			return db.ErrOptimisticLock
		}
	}

	for _, p := range positions {
		p.Version++
		s.positions[p.UserID] = p.Clone()
	}

	return nil
}

func (s *Memory) Users(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.positions))
	for user := range s.positions {
		users = append(users, user)
	}

	sort.Strings(users)
	return users, nil
}
