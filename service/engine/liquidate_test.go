package engine

import (
	"errors"
	"testing"

	"dsc/core"
	"dsc/pkg/number"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// underwater alice holds 10 WETH against 10000 DSC, bob holds 20 WETH
// against 10000 DSC and approved the engine to spend it, then WETH falls to $1800
func underwater(t *testing.T) *fixture {
	f := newFixture(t)

	f.deposit(t, alice, weth, ether(10))
	require.Nil(t, f.engine.MintDsc(f.ctx, alice, ether(10000)))

	f.deposit(t, bob, weth, ether(20))
	require.Nil(t, f.engine.MintDsc(f.ctx, bob, ether(10000)))
	f.approveDsc(t, bob, ether(10000))

	f.feeds[weth].Set(number.Decimal("1800"))
	return f
}

func TestLiquidateHealthyAccount(t *testing.T) {
	f := newFixture(t)
	f.deposit(t, alice, weth, ether(10))
	require.Nil(t, f.engine.MintDsc(f.ctx, alice, ether(5000)))

	f.deposit(t, bob, weth, ether(10))
	require.Nil(t, f.engine.MintDsc(f.ctx, bob, ether(1000)))
	f.approveDsc(t, bob, ether(1000))

	err := f.engine.Liquidate(f.ctx, bob, weth, alice, ether(100))
	assert.True(t, errors.Is(err, core.ErrHealthFactorOk))
	assert.Equal(t, core.ErrLiquidationPrecondition, core.CodeOf(err))

	p := f.position(t, alice)
	assert.Equal(t, ether(10), p.Collateral(weth))
	assert.Equal(t, ether(5000), p.DscMinted)
	assert.Equal(t, ether(1000), f.dsc.BalanceOf(f.ctx, bob))
	assert.True(t, f.tokens[weth].BalanceOf(f.ctx, bob).IsZero())
	assert.Len(t, f.listEvents(t), 2)
}

func TestLiquidate(t *testing.T) {
	f := underwater(t)

	before := f.healthFactor(t, alice)
	assert.Equal(t, uint256.NewInt(9e17), before)

	f.feeds[weth].reset()
	require.Nil(t, f.engine.Liquidate(f.ctx, bob, weth, alice, ether(1000)))
	assert.Equal(t, int32(1), f.feeds[weth].calls)

	// $1000 at $1800 is 0.5555.. WETH, plus the 10% bonus
	seized, _ := uint256.FromDecimal("611111111111111110")

	p := f.position(t, alice)
	assert.Equal(t, new(uint256.Int).Sub(ether(10), seized), p.Collateral(weth))
	assert.Equal(t, ether(9000), p.DscMinted)

	after := f.healthFactor(t, alice)
	assert.True(t, after.Gt(before))
	assert.Equal(t, "938888888888888889", after.Dec())

	assert.Equal(t, seized, f.tokens[weth].BalanceOf(f.ctx, bob))
	assert.Equal(t, ether(9000), f.dsc.BalanceOf(f.ctx, bob))
	assert.Equal(t, ether(10000), f.position(t, bob).DscMinted)
	assert.Equal(t, ether(19000), f.dsc.TotalSupply(f.ctx))
	assert.Equal(t, new(uint256.Int).Sub(ether(30), seized), f.tokens[weth].BalanceOf(f.ctx, self))

	events := f.listEvents(t)
	last := events[len(events)-1]
	assert.Equal(t, core.EventCollateralRedeemed, last.Name)
	assert.Equal(t, alice, last.From)
	assert.Equal(t, bob, last.To)
	assert.Equal(t, seized.Dec(), last.Amount.String())
}

func TestLiquidateBreaksLiquidatorHealth(t *testing.T) {
	f := newFixture(t)

	f.deposit(t, alice, weth, ether(10))
	require.Nil(t, f.engine.MintDsc(f.ctx, alice, ether(10000)))

	f.deposit(t, carol, weth, ether(11))
	require.Nil(t, f.engine.MintDsc(f.ctx, carol, ether(11000)))
	f.approveDsc(t, carol, ether(11000))

	f.feeds[weth].Set(number.Decimal("1800"))

	err := f.engine.Liquidate(f.ctx, carol, weth, alice, ether(1000))
	assert.True(t, errors.Is(err, core.ErrBreaksHealthFactor))

	p := f.position(t, alice)
	assert.Equal(t, ether(10), p.Collateral(weth))
	assert.Equal(t, ether(10000), p.DscMinted)
	assert.Equal(t, ether(11000), f.dsc.BalanceOf(f.ctx, carol))
	assert.True(t, f.tokens[weth].BalanceOf(f.ctx, carol).IsZero())
}

func TestLiquidateNotImproved(t *testing.T) {
	f := newFixture(t)

	f.deposit(t, alice, weth, ether(10))
	require.Nil(t, f.engine.MintDsc(f.ctx, alice, ether(10000)))

	f.deposit(t, bob, weth, ether(30))
	require.Nil(t, f.engine.MintDsc(f.ctx, bob, ether(10000)))
	f.approveDsc(t, bob, ether(10000))

	// at 0.5 the bonus costs more collateral value than the debt it covers
	f.feeds[weth].Set(number.Decimal("1000"))

	err := f.engine.Liquidate(f.ctx, bob, weth, alice, ether(1000))
	assert.True(t, errors.Is(err, core.ErrHealthFactorNotImproved))
	assert.Equal(t, core.ErrLiquidationPrecondition, core.CodeOf(err))

	p := f.position(t, alice)
	assert.Equal(t, ether(10), p.Collateral(weth))
	assert.Equal(t, ether(10000), p.DscMinted)
	assert.Equal(t, ether(10000), f.dsc.BalanceOf(f.ctx, bob))
}

// The seized amount comes from one asset only; a shortfall is not a partial
// liquidation.
func TestLiquidateCollateralShortfall(t *testing.T) {
	f := newFixture(t)

	f.deposit(t, alice, weth, ether(1))
	f.deposit(t, alice, wbtc, ether(18))
	require.Nil(t, f.engine.MintDsc(f.ctx, alice, ether(10000)))

	f.deposit(t, bob, weth, ether(20))
	require.Nil(t, f.engine.MintDsc(f.ctx, bob, ether(5000)))
	f.approveDsc(t, bob, ether(5000))

	f.feeds[wbtc].Set(number.Decimal("900"))

	err := f.engine.Liquidate(f.ctx, bob, weth, alice, ether(2000))
	assert.True(t, errors.Is(err, core.ErrUnderflow))

	p := f.position(t, alice)
	assert.Equal(t, ether(1), p.Collateral(weth))
	assert.Equal(t, ether(10000), p.DscMinted)
}

func TestLiquidateRejected(t *testing.T) {
	f := underwater(t)

	err := f.engine.Liquidate(f.ctx, bob, weth, alice, new(uint256.Int))
	assert.True(t, errors.Is(err, core.ErrNeedsMoreThanZero))

	err = f.engine.Liquidate(f.ctx, bob, "doge", alice, ether(1))
	assert.True(t, errors.Is(err, core.ErrNotAllowedToken))

	// covering more than the debt
	err = f.engine.Liquidate(f.ctx, bob, weth, alice, ether(10001))
	assert.True(t, errors.Is(err, core.ErrArithmeticFault))

	f.approveDsc(t, bob, new(uint256.Int))
	err = f.engine.Liquidate(f.ctx, bob, weth, alice, ether(1000))
	assert.True(t, errors.Is(err, core.ErrTokenTransferFailed))

	p := f.position(t, alice)
	assert.Equal(t, ether(10), p.Collateral(weth))
	assert.Equal(t, ether(10000), p.DscMinted)
	assert.Equal(t, ether(10000), f.dsc.BalanceOf(f.ctx, bob))
	assert.True(t, f.tokens[weth].BalanceOf(f.ctx, bob).IsZero())
}
