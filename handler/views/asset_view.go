package views

import (
	"time"

	"dsc/core"

	"github.com/shopspring/decimal"
)

// Asset collateral asset view
type Asset struct {
	AssetID   string          `json:"asset_id"`
	Symbol    string          `json:"symbol"`
	FeedID    string          `json:"feed_id,omitempty"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
	Custody   decimal.Decimal `json:"custody"`
}

// AssetView render asset with its latest price round
func AssetView(asset *core.CollateralAsset, round *core.PriceRound, custody decimal.Decimal) *Asset {
	view := &Asset{
		AssetID: asset.AssetID,
		Symbol:  asset.Symbol,
		Custody: custody,
	}

	if round != nil {
		view.FeedID = round.FeedID
		view.Price = decimal.NewFromBigInt(round.Answer, -core.FeedDecimals)
		if !round.UpdatedAt.IsZero() {
			t := round.UpdatedAt
			view.UpdatedAt = &t
		}
	}

	return view
}
