package number

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Decimals fixed-point decimals of every on-ledger amount
const Decimals = 18

// ErrNegative negative amounts have no on-ledger form
var ErrNegative = errors.New("number: negative amount")

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// ToUnits scale a human amount to 18-decimal integer units, truncating extra digits
func ToUnits(d decimal.Decimal) (*uint256.Int, error) {
	return ToInt(d.Shift(Decimals))
}

// ToInt convert an integral decimal to uint256, fractional digits are truncated
func ToInt(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, ErrNegative
	}

	v, overflow := uint256.FromBig(d.Truncate(0).BigInt())
	if overflow {
		return nil, errors.New("number: amount overflows 256 bits")
	}

	return v, nil
}

// FromInt uint256 to an integral decimal
func FromInt(v *uint256.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v.ToBig(), 0)
}

// FromUnits 18-decimal integer units to a human amount
func FromUnits(v *uint256.Int) decimal.Decimal {
	return FromInt(v).Shift(-Decimals)
}
