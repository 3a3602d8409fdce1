package views

import (
	"dsc/core"
	"dsc/pkg/dsc"
	"dsc/pkg/number"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Collateral deposited and wallet balance of one asset
type Collateral struct {
	AssetID   string          `json:"asset_id"`
	Symbol    string          `json:"symbol"`
	Deposited decimal.Decimal `json:"deposited"`
	Balance   decimal.Decimal `json:"balance"`
}

// Account account view
type Account struct {
	User               string          `json:"user"`
	DscMinted          decimal.Decimal `json:"dsc_minted"`
	DscBalance         decimal.Decimal `json:"dsc_balance"`
	CollateralValueUSD decimal.Decimal `json:"collateral_value_usd"`
	// HealthFactor empty without debt
	HealthFactor string        `json:"health_factor"`
	Healthy      bool          `json:"healthy"`
	Collaterals  []*Collateral `json:"collaterals"`
}

// AccountView render account information
func AccountView(user string, info *core.AccountInformation, hf, dscBalance *uint256.Int, collaterals []*Collateral) *Account {
	view := &Account{
		User:               user,
		DscMinted:          number.FromUnits(info.DscMinted),
		DscBalance:         number.FromUnits(dscBalance),
		CollateralValueUSD: number.FromUnits(info.CollateralValueUSD),
		Healthy:            dsc.IsHealthy(hf),
		Collaterals:        collaterals,
	}

	if !info.DscMinted.IsZero() {
		view.HealthFactor = number.FromUnits(hf).String()
	}

	return view
}
