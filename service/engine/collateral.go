package engine

import (
	"context"

	"dsc/core"
	"dsc/pkg/dsc"

	"github.com/holiman/uint256"
)

// DepositCollateral lock amount of assetID from the caller into engine custody
func (e *Engine) DepositCollateral(ctx context.Context, from, assetID string, amount *uint256.Int) error {
	return e.execute(ctx, "deposit", func(ctx context.Context, u *unit) error {
		return u.deposit(ctx, from, assetID, amount)
	})
}

// RedeemCollateral withdraw amount of assetID back to the caller
func (e *Engine) RedeemCollateral(ctx context.Context, from, assetID string, amount *uint256.Int) error {
	return e.execute(ctx, "redeem", func(ctx context.Context, u *unit) error {
		if err := u.redeem(ctx, assetID, amount, from, from); err != nil {
			return err
		}

		return u.requireHealthy(ctx, from)
	})
}

// DepositCollateralAndMintDsc deposit then mint in one operation
func (e *Engine) DepositCollateralAndMintDsc(ctx context.Context, from, assetID string, collateral, amount *uint256.Int) error {
	return e.execute(ctx, "deposit_and_mint", func(ctx context.Context, u *unit) error {
		if err := u.deposit(ctx, from, assetID, collateral); err != nil {
			return err
		}

		return u.mint(ctx, from, amount)
	})
}

// RedeemCollateralForDsc burn then redeem in one operation, the debt is
// lowered before the collateral leaves
func (e *Engine) RedeemCollateralForDsc(ctx context.Context, from, assetID string, collateral, amount *uint256.Int) error {
	return e.execute(ctx, "redeem_for_dsc", func(ctx context.Context, u *unit) error {
		if err := u.burn(ctx, amount, from, from); err != nil {
			return err
		}

		if err := u.redeem(ctx, assetID, collateral, from, from); err != nil {
			return err
		}

		return u.requireHealthy(ctx, from)
	})
}

func (u *unit) deposit(ctx context.Context, from, assetID string, amount *uint256.Int) error {
	if err := positive(amount); err != nil {
		return err
	}

	asset, err := u.e.asset(assetID)
	if err != nil {
		return err
	}

	p, err := u.position(ctx, from)
	if err != nil {
		return err
	}

	balance, err := dsc.Add(p.Collateral(assetID), amount)
	if err != nil {
		return err
	}

	p.Collaterals[assetID] = balance
	u.touch(from)
	u.emit(core.EventCollateralDeposited, from, u.e.self, assetID, amount)

	self := u.e.self
	u.pull(func(ctx context.Context) error {
		if err := asset.Token.TransferFrom(ctx, self, from, self, amount); err != nil {
			return core.ErrTokenTransferFailed.With(err)
		}

		return nil
	}, func(ctx context.Context) error {
		return asset.Token.Transfer(ctx, self, from, amount)
	})

	return nil
}

// redeem move amount of assetID out of from's position to the account to
func (u *unit) redeem(ctx context.Context, assetID string, amount *uint256.Int, from, to string) error {
	if err := positive(amount); err != nil {
		return err
	}

	asset, err := u.e.asset(assetID)
	if err != nil {
		return err
	}

	p, err := u.position(ctx, from)
	if err != nil {
		return err
	}

	balance, err := dsc.Sub(p.Collateral(assetID), amount)
	if err != nil {
		return err
	}

	p.Collaterals[assetID] = balance
	u.touch(from)
	u.emit(core.EventCollateralRedeemed, from, to, assetID, amount)

	self := u.e.self
	u.payout(func(ctx context.Context) error {
		if err := asset.Token.Transfer(ctx, self, to, amount); err != nil {
			return core.ErrTokenTransferFailed.With(err)
		}

		return nil
	})

	return nil
}
