package core

import (
	"context"

	"github.com/holiman/uint256"
)

// AccountInformation synthetic debt and collateral value of an account
type AccountInformation struct {
	DscMinted          *uint256.Int
	CollateralValueUSD *uint256.Int
}

// IEngine collateral engine interface, from is the calling account
type IEngine interface {
	DepositCollateral(ctx context.Context, from, assetID string, amount *uint256.Int) error
	RedeemCollateral(ctx context.Context, from, assetID string, amount *uint256.Int) error
	MintDsc(ctx context.Context, from string, amount *uint256.Int) error
	BurnDsc(ctx context.Context, from string, amount *uint256.Int) error
	DepositCollateralAndMintDsc(ctx context.Context, from, assetID string, collateral, dsc *uint256.Int) error
	RedeemCollateralForDsc(ctx context.Context, from, assetID string, collateral, dsc *uint256.Int) error
	Liquidate(ctx context.Context, from, assetID, user string, debtToCover *uint256.Int) error

	AccountCollateralValue(ctx context.Context, user string) (*uint256.Int, error)
	AccountInformation(ctx context.Context, user string) (*AccountInformation, error)
	HealthFactor(ctx context.Context, user string) (*uint256.Int, error)
	CalculateHealthFactor(minted, collateralUSD *uint256.Int) (*uint256.Int, error)
	CollateralBalance(ctx context.Context, user, assetID string) (*uint256.Int, error)
	UsdValue(ctx context.Context, assetID string, amount *uint256.Int) (*uint256.Int, error)
	TokenAmountFromUsd(ctx context.Context, assetID string, usd *uint256.Int) (*uint256.Int, error)
	CollateralTokens() []string
	CollateralAsset(assetID string) (*CollateralAsset, bool)
	CollateralTokenPriceFeed(assetID string) (PriceFeed, bool)
	Dsc() SyntheticLedger
	Self() string
}
