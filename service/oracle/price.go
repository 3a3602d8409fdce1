package oracle

import (
	"context"
	"math/big"
	"sync"
	"time"

	"dsc/core"

	"github.com/shopspring/decimal"
)

// Static in-memory price feed, the answer can be replaced at any time
type Static struct {
	FeedID string

	mu    sync.RWMutex
	round core.PriceRound
}

// NewStatic new static feed answering price (in USD)
func NewStatic(feedID string, price decimal.Decimal) *Static {
	s := &Static{FeedID: feedID}
	s.Set(price)
	return s
}

// Set replace the answer with price in USD
func (s *Static) Set(price decimal.Decimal) {
	s.SetAnswer(price.Shift(core.FeedDecimals).BigInt())
}

// SetAnswer replace the answer with a raw 8-decimal value
func (s *Static) SetAnswer(answer *big.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.round = core.PriceRound{
		FeedID:    s.FeedID,
		Answer:    new(big.Int).Set(answer),
		UpdatedAt: time.Now(),
	}
}

func (s *Static) LatestPrice(_ context.Context) (*core.PriceRound, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	round := s.round
	round.Answer = new(big.Int).Set(s.round.Answer)
	return &round, nil
}
