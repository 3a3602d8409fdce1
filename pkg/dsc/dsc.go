package dsc

import (
	"math/big"

	"dsc/core"

	"github.com/holiman/uint256"
)

const (
	// AdditionalFeedPrecision scale 8-decimal feed prices to 18 decimals
	AdditionalFeedPrecision uint64 = 1e10
	// Precision internal fixed-point scale
	Precision uint64 = 1e18
	// LiquidationThreshold percent of collateral value counted, 200% over-collateralized
	LiquidationThreshold uint64 = 50
	// LiquidationPrecision percent denominator
	LiquidationPrecision uint64 = 100
	// LiquidationBonus percent of seized collateral paid on top of covered debt
	LiquidationBonus uint64 = 10
	// MinHealthFactor 1.0
	MinHealthFactor uint64 = 1e18
)

// MaxHealthFactor health factor of an account without debt
func MaxHealthFactor() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}

// IsHealthy hf >= MinHealthFactor
func IsHealthy(hf *uint256.Int) bool {
	return !hf.Lt(uint256.NewInt(MinHealthFactor))
}

// Add a + b, overflow is a fault
func Add(a, b *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, core.ErrOverflow
	}

	return z, nil
}

// Sub a - b, underflow is a fault
func Sub(a, b *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, core.ErrUnderflow
	}

	return z, nil
}

// MulDiv a * b / d, d must not be zero
func MulDiv(a, b, d *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, core.ErrOverflow
	}

	return z.Div(z, d), nil
}

// FeedPrice normalize an 8-decimal feed answer to the 18-decimal internal scale.
// A zero or negative answer is a data fault.
func FeedPrice(answer *big.Int) (*uint256.Int, error) {
	if answer == nil || answer.Sign() <= 0 {
		return nil, core.ErrInvalidPrice
	}

	price, overflow := uint256.FromBig(answer)
	if overflow {
		return nil, core.ErrOverflow
	}

	return MulDiv(price, uint256.NewInt(AdditionalFeedPrecision), uint256.NewInt(1))
}

// UsdValue price * amount / 1e18
func UsdValue(price, amount *uint256.Int) (*uint256.Int, error) {
	return MulDiv(price, amount, uint256.NewInt(Precision))
}

// TokenAmountFromUsd usd * 1e18 / price
func TokenAmountFromUsd(price, usd *uint256.Int) (*uint256.Int, error) {
	if price.IsZero() {
		return nil, core.ErrInvalidPrice
	}

	return MulDiv(usd, uint256.NewInt(Precision), price)
}

// HealthFactor (collateralUSD * threshold / 100) * 1e18 / minted.
// Zero debt is treated as infinitely healthy.
func HealthFactor(minted, collateralUSD *uint256.Int) (*uint256.Int, error) {
	if minted.IsZero() {
		return MaxHealthFactor(), nil
	}

	adjusted, err := MulDiv(collateralUSD, uint256.NewInt(LiquidationThreshold), uint256.NewInt(LiquidationPrecision))
	if err != nil {
		return nil, err
	}

	return MulDiv(adjusted, uint256.NewInt(Precision), minted)
}

// WithLiquidationBonus amount + amount * bonus / 100
func WithLiquidationBonus(amount *uint256.Int) (*uint256.Int, error) {
	bonus, err := MulDiv(amount, uint256.NewInt(LiquidationBonus), uint256.NewInt(LiquidationPrecision))
	if err != nil {
		return nil, err
	}

	return Add(amount, bonus)
}
