package price

import (
	"context"
	"sync"
	"time"

	"dsc/core"
)

// Memory in-memory price store, keeps the latest row per feed only
type Memory struct {
	mu     sync.RWMutex
	seq    int64
	latest map[string]core.Price
}

// NewMemory new in-memory price store
func NewMemory() *Memory {
	return &Memory{
		latest: map[string]core.Price{},
	}
}

var _ core.PriceStore = (*Memory)(nil)

func (s *Memory) Create(_ context.Context, price *core.Price) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	price.ID = s.seq
	if price.CreatedAt.IsZero() {
		price.CreatedAt = time.Now()
	}

	s.latest[price.FeedID] = *price
	return nil
}

func (s *Memory) Latest(_ context.Context, feedID string) (*core.Price, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	price, ok := s.latest[feedID]
	if !ok {
		return nil, false, nil
	}

	return &price, true, nil
}
