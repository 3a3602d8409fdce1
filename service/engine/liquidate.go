package engine

import (
	"context"

	"dsc/core"
	"dsc/pkg/dsc"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// Liquidate cover debtToCover of user's debt with the caller's synthetic tokens
// and seize the equivalent amount of assetID plus the liquidation bonus.
//
// The seized amount is taken from user's deposit of assetID only; a deposit
// smaller than the seized amount is an underflow fault, there is no partial
// liquidation.
func (e *Engine) Liquidate(ctx context.Context, from, assetID, user string, debtToCover *uint256.Int) error {
	return e.execute(ctx, "liquidate", func(ctx context.Context, u *unit) error {
		if err := positive(debtToCover); err != nil {
			return err
		}

		asset, err := e.asset(assetID)
		if err != nil {
			return err
		}

		starting, err := u.healthFactor(ctx, user)
		if err != nil {
			return err
		}

		if dsc.IsHealthy(starting) {
			return core.ErrHealthFactorOk
		}

		amount, err := u.tokenAmountFromUsd(ctx, asset, debtToCover)
		if err != nil {
			return err
		}

		seized, err := dsc.WithLiquidationBonus(amount)
		if err != nil {
			return err
		}

		if err := u.redeem(ctx, assetID, seized, user, from); err != nil {
			return err
		}

		if err := u.burn(ctx, debtToCover, user, from); err != nil {
			return err
		}

		ending, err := u.healthFactor(ctx, user)
		if err != nil {
			return err
		}

		if !ending.Gt(starting) {
			return core.ErrHealthFactorNotImproved
		}

		if err := u.requireHealthy(ctx, from); err != nil {
			return err
		}

		logger.FromContext(ctx).WithField("user", user).Debugf(
			"liquidation checked: cover %s seize %s health factor %s -> %s",
			debtToCover.Dec(), seized.Dec(), starting.Dec(), ending.Dec(),
		)
		return nil
	})
}
