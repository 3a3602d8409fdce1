package dsc

import (
	"errors"
	"math/big"
	"testing"

	"dsc/core"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ether(v uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(v), uint256.NewInt(Precision))
}

func TestFeedPrice(t *testing.T) {
	price, err := FeedPrice(big.NewInt(2000e8))
	require.Nil(t, err)
	assert.Equal(t, ether(2000), price)

	for _, answer := range []*big.Int{nil, big.NewInt(0), big.NewInt(-1)} {
		_, err := FeedPrice(answer)
		assert.True(t, errors.Is(err, core.ErrInvalidPrice), "answer %v", answer)
		assert.True(t, errors.Is(err, core.ErrArithmeticFault))
	}
}

func TestUsdValue(t *testing.T) {
	v, err := UsdValue(ether(2000), ether(15))
	require.Nil(t, err)
	assert.Equal(t, ether(30000), v)
}

func TestTokenAmountFromUsd(t *testing.T) {
	v, err := TokenAmountFromUsd(ether(2000), ether(100))
	require.Nil(t, err)
	assert.Equal(t, uint256.NewInt(5e16), v)

	_, err = TokenAmountFromUsd(new(uint256.Int), ether(1))
	assert.True(t, errors.Is(err, core.ErrInvalidPrice))
}

func TestHealthFactor(t *testing.T) {
	cases := []struct {
		name       string
		minted     *uint256.Int
		collateral *uint256.Int
		want       *uint256.Int
	}{
		{"boundary", ether(10000), ether(20000), uint256.NewInt(MinHealthFactor)},
		{"half", ether(100), ether(100), uint256.NewInt(5e17)},
		{"over", ether(100), ether(1000), uint256.NewInt(5e18)},
		// zero debt is vacuously healthy
		{"no debt", new(uint256.Int), ether(1), MaxHealthFactor()},
		{"no debt no collateral", new(uint256.Int), new(uint256.Int), MaxHealthFactor()},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hf, err := HealthFactor(c.minted, c.collateral)
			require.Nil(t, err)
			assert.Equal(t, c.want, hf)
		})
	}
}

func TestIsHealthy(t *testing.T) {
	assert.True(t, IsHealthy(uint256.NewInt(MinHealthFactor)))
	assert.True(t, IsHealthy(MaxHealthFactor()))
	assert.False(t, IsHealthy(uint256.NewInt(MinHealthFactor-1)))
}

func TestWithLiquidationBonus(t *testing.T) {
	v, err := WithLiquidationBonus(uint256.NewInt(5e16))
	require.Nil(t, err)
	assert.Equal(t, uint256.NewInt(55e15), v)
}

func TestCheckedMath(t *testing.T) {
	_, err := Sub(uint256.NewInt(1), uint256.NewInt(2))
	assert.True(t, errors.Is(err, core.ErrUnderflow))

	_, err = Add(MaxHealthFactor(), uint256.NewInt(1))
	assert.True(t, errors.Is(err, core.ErrOverflow))

	_, err = MulDiv(MaxHealthFactor(), uint256.NewInt(2), uint256.NewInt(1))
	assert.True(t, errors.Is(err, core.ErrOverflow))
}

func TestConversionRoundTrip(t *testing.T) {
	prices := []uint64{1, 3, 1999_99999999, 2000e8, 123456789}
	amounts := []*uint256.Int{uint256.NewInt(1), uint256.NewInt(7), ether(15), uint256.NewInt(333333333333)}

	for _, p := range prices {
		price, err := FeedPrice(new(big.Int).SetUint64(p))
		require.Nil(t, err)

		for _, amount := range amounts {
			usd, err := UsdValue(price, amount)
			require.Nil(t, err)
			back, err := TokenAmountFromUsd(price, usd)
			require.Nil(t, err)

			// truncation only ever loses value
			assert.False(t, back.Gt(amount))
			diff := new(uint256.Int).Sub(amount, back)
			// one usd unit is worth at most 1e18/price token units
			tolerance := new(uint256.Int).Div(uint256.NewInt(Precision), price)
			tolerance.AddUint64(tolerance, 1)
			assert.False(t, diff.Gt(tolerance), "price %d amount %s back %s", p, amount.Dec(), back.Dec())
		}
	}
}
