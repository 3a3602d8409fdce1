package position

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dsc/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache read-through LRU cache in front of store, entries are replaced on save
func Cache(store core.PositionStore, exp time.Duration) core.PositionStore {
	b := gcache.New(2048).LRU()
	if exp > 0 {
		b = b.Expiration(exp)
	}

	return &cachePositionStore{
		PositionStore: store,
		cache:         b.Build(),
		sf:            &singleflight.Group{},
		generations:   map[string]uint64{},
	}
}

type cachePositionStore struct {
	core.PositionStore
	cache gcache.Cache
	sf    *singleflight.Group

	// generations is bumped on every save of a key, a fill read under an older
	// generation is not written into the cache
	mu          sync.Mutex
	generations map[string]uint64
}

func (s *cachePositionStore) Find(ctx context.Context, userID string) (*core.Position, error) {
	key := s.positionKey(userID)
	if v, err := s.cache.Get(key); err == nil {
		if p, ok := v.(*core.Position); ok {
			return p.Clone(), nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		gen := s.generation(key)

		p, err := s.PositionStore.Find(ctx, userID)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.generations[key] == gen {
			_ = s.cache.Set(key, p.Clone())
		}
		s.mu.Unlock()

		return p, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Position).Clone(), nil
}

func (s *cachePositionStore) Save(ctx context.Context, positions ...*core.Position) error {
	s.mu.Lock()
	for _, p := range positions {
		key := s.positionKey(p.UserID)
		s.generations[key]++
		s.cache.Remove(key)
		s.sf.Forget(key)
	}
	s.mu.Unlock()

	err := s.PositionStore.Save(ctx, positions...)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range positions {
		key := s.positionKey(p.UserID)
		s.generations[key]++
		if err == nil {
			_ = s.cache.Set(key, p.Clone())
		}
	}

	return err
}

func (s *cachePositionStore) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generations[key]
}

func (s *cachePositionStore) positionKey(userID string) string {
	return fmt.Sprintf("position:user:%s", userID)
}
