package engine

import (
	"context"

	"dsc/core"
	"dsc/pkg/dsc"

	"github.com/holiman/uint256"
)

// MintDsc mint amount of synthetic tokens to the caller against its collateral
func (e *Engine) MintDsc(ctx context.Context, from string, amount *uint256.Int) error {
	return e.execute(ctx, "mint", func(ctx context.Context, u *unit) error {
		return u.mint(ctx, from, amount)
	})
}

// BurnDsc burn amount of the caller's synthetic tokens against its debt
func (e *Engine) BurnDsc(ctx context.Context, from string, amount *uint256.Int) error {
	return e.execute(ctx, "burn", func(ctx context.Context, u *unit) error {
		if err := u.burn(ctx, amount, from, from); err != nil {
			return err
		}

		return u.requireHealthy(ctx, from)
	})
}

func (u *unit) mint(ctx context.Context, to string, amount *uint256.Int) error {
	if err := positive(amount); err != nil {
		return err
	}

	p, err := u.position(ctx, to)
	if err != nil {
		return err
	}

	minted, err := dsc.Add(p.DscMinted, amount)
	if err != nil {
		return err
	}

	p.DscMinted = minted
	u.touch(to)

	if err := u.requireHealthy(ctx, to); err != nil {
		return err
	}

	ledger, self := u.e.dsc, u.e.self
	u.payout(func(ctx context.Context) error {
		if err := ledger.Mint(ctx, self, to, amount); err != nil {
			return core.ErrMintFailed.With(err)
		}

		return nil
	})

	return nil
}

// burn lower onBehalfOf's debt by amount, paid with payer's synthetic tokens
func (u *unit) burn(ctx context.Context, amount *uint256.Int, onBehalfOf, payer string) error {
	if err := positive(amount); err != nil {
		return err
	}

	p, err := u.position(ctx, onBehalfOf)
	if err != nil {
		return err
	}

	minted, err := dsc.Sub(p.DscMinted, amount)
	if err != nil {
		return err
	}

	p.DscMinted = minted
	u.touch(onBehalfOf)

	ledger, self := u.e.dsc, u.e.self
	u.pull(func(ctx context.Context) error {
		if err := ledger.TransferFrom(ctx, self, payer, self, amount); err != nil {
			return core.ErrTokenTransferFailed.With(err)
		}

		return nil
	}, func(ctx context.Context) error {
		return ledger.Transfer(ctx, self, payer, amount)
	})

	u.pull(func(ctx context.Context) error {
		if err := ledger.Burn(ctx, self, amount); err != nil {
			return core.ErrTokenTransferFailed.With(err)
		}

		return nil
	}, func(ctx context.Context) error {
		return ledger.Mint(ctx, self, self, amount)
	})

	return nil
}
