package engine

import (
	"context"
	"errors"
	"testing"

	"dsc/core"
	"dsc/pkg/dsc"
	"dsc/service/token"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintDscBoundary(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, alice, weth, ether(10))

	// 10 WETH at $2000 backs at most $10000 of debt
	require.Nil(t, f.engine.MintDsc(f.ctx, alice, ether(10000)))
	assert.Equal(t, uint256.NewInt(dsc.MinHealthFactor), f.healthFactor(t, alice))
	assert.Equal(t, ether(10000), f.dsc.BalanceOf(f.ctx, alice))

	err := f.engine.MintDsc(f.ctx, alice, uint256.NewInt(1))
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, core.ErrBreaksHealthFactor))
	assert.Equal(t, core.ErrSolvency, core.CodeOf(err))

	var e *core.Error
	require.True(t, errors.As(err, &e))
	require.NotNil(t, e.HealthFactor)
	assert.False(t, dsc.IsHealthy(e.HealthFactor))

	assert.Equal(t, ether(10000), f.position(t, alice).DscMinted)
	assert.Equal(t, ether(10000), f.dsc.BalanceOf(f.ctx, alice))
	assert.Equal(t, ether(10000), f.dsc.TotalSupply(f.ctx))
}

func TestMintDscRejected(t *testing.T) {
	f := newFixture(t)

	err := f.engine.MintDsc(f.ctx, alice, ether(1))
	assert.True(t, errors.Is(err, core.ErrBreaksHealthFactor))

	var e *core.Error
	require.True(t, errors.As(err, &e))
	assert.True(t, e.HealthFactor.IsZero())

	err = f.engine.MintDsc(f.ctx, alice, new(uint256.Int))
	assert.True(t, errors.Is(err, core.ErrNeedsMoreThanZero))

	assert.True(t, f.dsc.TotalSupply(f.ctx).IsZero())
}

func TestDepositCollateralAndMintDsc(t *testing.T) {
	f := newFixture(t)
	f.fund(t, alice, weth, ether(10))

	err := f.engine.DepositCollateralAndMintDsc(f.ctx, alice, weth, ether(10), ether(10001))
	assert.True(t, errors.Is(err, core.ErrBreaksHealthFactor))

	assert.True(t, f.position(t, alice).Collateral(weth).IsZero())
	assert.Equal(t, ether(10), f.tokens[weth].BalanceOf(f.ctx, alice))
	assert.Equal(t, ether(10), f.tokens[weth].Allowance(f.ctx, alice, self))
	assert.True(t, f.dsc.TotalSupply(f.ctx).IsZero())
	assert.Empty(t, f.listEvents(t))

	require.Nil(t, f.engine.DepositCollateralAndMintDsc(f.ctx, alice, weth, ether(10), ether(10000)))

	p := f.position(t, alice)
	assert.Equal(t, ether(10), p.Collateral(weth))
	assert.Equal(t, ether(10000), p.DscMinted)
	assert.Equal(t, ether(10000), f.dsc.BalanceOf(f.ctx, alice))
	assert.Len(t, f.listEvents(t), 1)
}

func TestBurnDsc(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, alice, weth, ether(10))
	require.Nil(t, f.engine.MintDsc(f.ctx, alice, ether(10000)))
	f.approveDsc(t, alice, ether(4000))

	require.Nil(t, f.engine.BurnDsc(f.ctx, alice, ether(4000)))
	assert.Equal(t, ether(6000), f.position(t, alice).DscMinted)
	assert.Equal(t, ether(6000), f.dsc.BalanceOf(f.ctx, alice))
	assert.Equal(t, ether(6000), f.dsc.TotalSupply(f.ctx))
	assert.True(t, f.dsc.BalanceOf(f.ctx, self).IsZero())

	f.approveDsc(t, alice, ether(10000))
	err := f.engine.BurnDsc(f.ctx, alice, ether(7000))
	assert.True(t, errors.Is(err, core.ErrUnderflow))
	assert.Equal(t, core.ErrArithmeticFault, core.CodeOf(err))

	f.approveDsc(t, alice, new(uint256.Int))
	err = f.engine.BurnDsc(f.ctx, alice, ether(1000))
	assert.True(t, errors.Is(err, core.ErrTokenTransferFailed))
	assert.True(t, errors.Is(err, token.ErrInsufficientAllowance))

	assert.Equal(t, ether(6000), f.position(t, alice).DscMinted)
	assert.Equal(t, ether(6000), f.dsc.BalanceOf(f.ctx, alice))
	assert.Equal(t, ether(6000), f.dsc.TotalSupply(f.ctx))
}

// a partial repayment that leaves the account below the minimum is rejected,
// the debt has to be cleared far enough to restore health in one call
func TestBurnDscUnderwater(t *testing.T) {
	f := underwater(t)
	f.approveDsc(t, alice, ether(10000))

	err := f.engine.BurnDsc(f.ctx, alice, ether(500))
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, core.ErrBreaksHealthFactor))
	assert.Equal(t, core.ErrSolvency, core.CodeOf(err))

	assert.Equal(t, ether(10000), f.position(t, alice).DscMinted)
	assert.Equal(t, ether(10000), f.dsc.BalanceOf(f.ctx, alice))
	assert.Equal(t, ether(20000), f.dsc.TotalSupply(f.ctx))
	assert.Equal(t, uint256.NewInt(9e17), f.healthFactor(t, alice))

	// 10 WETH at $1800 backs $9000 of debt
	require.Nil(t, f.engine.BurnDsc(f.ctx, alice, ether(1000)))
	assert.Equal(t, uint256.NewInt(dsc.MinHealthFactor), f.healthFactor(t, alice))

	require.Nil(t, f.engine.BurnDsc(f.ctx, alice, ether(9000)))
	assert.True(t, f.position(t, alice).DscMinted.IsZero())
	assert.True(t, f.dsc.BalanceOf(f.ctx, alice).IsZero())
	assert.Equal(t, ether(10000), f.dsc.TotalSupply(f.ctx))
}

type failingLedger struct {
	*token.Token
}

func (failingLedger) Mint(context.Context, string, string, *uint256.Int) error {
	return errors.New("ledger paused")
}

func TestMintFailureRollsBack(t *testing.T) {
	f := newFixtureWith(t, nil, func(tk *token.Token) core.SyntheticLedger {
		return failingLedger{Token: tk}
	})
	f.fund(t, alice, weth, ether(10))

	err := f.engine.DepositCollateralAndMintDsc(f.ctx, alice, weth, ether(10), ether(1000))
	assert.True(t, errors.Is(err, core.ErrMintFailed))
	assert.Equal(t, core.ErrTransferFailure, core.CodeOf(err))

	p := f.position(t, alice)
	assert.True(t, p.Collateral(weth).IsZero())
	assert.True(t, p.DscMinted.IsZero())
	assert.Equal(t, ether(10), f.tokens[weth].BalanceOf(f.ctx, alice))
	assert.True(t, f.tokens[weth].BalanceOf(f.ctx, self).IsZero())
	assert.Empty(t, f.listEvents(t))

	// the restored position carries the stored version, later operations commit
	require.Nil(t, f.tokens[weth].Approve(f.ctx, alice, self, ether(10)))
	require.Nil(t, f.engine.DepositCollateral(f.ctx, alice, weth, ether(10)))
	assert.Equal(t, ether(10), f.position(t, alice).Collateral(weth))
}
