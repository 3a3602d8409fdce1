package ledger

import (
	"context"
	"sort"
	"sync"

	"dsc/core"
)

// Memory in-memory ledger store
type Memory struct {
	mu         sync.RWMutex
	balances   map[string]map[string]core.Balance
	allowances map[string]map[[2]string]core.Allowance
}

// NewMemory new in-memory ledger store
func NewMemory() *Memory {
	return &Memory{
		balances:   map[string]map[string]core.Balance{},
		allowances: map[string]map[[2]string]core.Allowance{},
	}
}

var _ core.LedgerStore = (*Memory)(nil)

func (s *Memory) Balances(_ context.Context, ledger string) ([]*core.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balances := make([]*core.Balance, 0, len(s.balances[ledger]))
	for _, b := range s.balances[ledger] {
		b := b
		balances = append(balances, &b)
	}

	sort.Slice(balances, func(i, j int) bool {
		return balances[i].Account < balances[j].Account
	})

	return balances, nil
}

func (s *Memory) Allowances(_ context.Context, ledger string) ([]*core.Allowance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowances := make([]*core.Allowance, 0, len(s.allowances[ledger]))
	for _, a := range s.allowances[ledger] {
		a := a
		allowances = append(allowances, &a)
	}

	sort.Slice(allowances, func(i, j int) bool {
		if allowances[i].Owner != allowances[j].Owner {
			return allowances[i].Owner < allowances[j].Owner
		}

		return allowances[i].Spender < allowances[j].Spender
	})

	return allowances, nil
}

func (s *Memory) Save(_ context.Context, balances []*core.Balance, allowances []*core.Allowance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range balances {
		m, ok := s.balances[b.Ledger]
		if !ok {
			m = map[string]core.Balance{}
			s.balances[b.Ledger] = m
		}

		m[b.Account] = *b
	}

	for _, a := range allowances {
		m, ok := s.allowances[a.Ledger]
		if !ok {
			m = map[[2]string]core.Allowance{}
			s.allowances[a.Ledger] = m
		}

		m[[2]string{a.Owner, a.Spender}] = *a
	}

	return nil
}
