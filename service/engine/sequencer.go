package engine

import (
	"context"

	"dsc/core"

	"github.com/holiman/uint256"
	"golang.org/x/sync/semaphore"
)

// Sequencer serializes mutating calls from concurrent callers. Waiting callers
// block until the running operation completes or their context is done; the
// engine itself still rejects re-entrant calls.
type Sequencer struct {
	core.IEngine
	sem *semaphore.Weighted
}

// Serialize wrap engine with a sequencer
func Serialize(engine core.IEngine) *Sequencer {
	return &Sequencer{
		IEngine: engine,
		sem:     semaphore.NewWeighted(1),
	}
}

func (s *Sequencer) do(ctx context.Context, fn func() error) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	return fn()
}

func (s *Sequencer) DepositCollateral(ctx context.Context, from, assetID string, amount *uint256.Int) error {
	return s.do(ctx, func() error {
		return s.IEngine.DepositCollateral(ctx, from, assetID, amount)
	})
}

func (s *Sequencer) RedeemCollateral(ctx context.Context, from, assetID string, amount *uint256.Int) error {
	return s.do(ctx, func() error {
		return s.IEngine.RedeemCollateral(ctx, from, assetID, amount)
	})
}

func (s *Sequencer) MintDsc(ctx context.Context, from string, amount *uint256.Int) error {
	return s.do(ctx, func() error {
		return s.IEngine.MintDsc(ctx, from, amount)
	})
}

func (s *Sequencer) BurnDsc(ctx context.Context, from string, amount *uint256.Int) error {
	return s.do(ctx, func() error {
		return s.IEngine.BurnDsc(ctx, from, amount)
	})
}

func (s *Sequencer) DepositCollateralAndMintDsc(ctx context.Context, from, assetID string, collateral, dsc *uint256.Int) error {
	return s.do(ctx, func() error {
		return s.IEngine.DepositCollateralAndMintDsc(ctx, from, assetID, collateral, dsc)
	})
}

func (s *Sequencer) RedeemCollateralForDsc(ctx context.Context, from, assetID string, collateral, dsc *uint256.Int) error {
	return s.do(ctx, func() error {
		return s.IEngine.RedeemCollateralForDsc(ctx, from, assetID, collateral, dsc)
	})
}

func (s *Sequencer) Liquidate(ctx context.Context, from, assetID, user string, debtToCover *uint256.Int) error {
	return s.do(ctx, func() error {
		return s.IEngine.Liquidate(ctx, from, assetID, user, debtToCover)
	})
}
