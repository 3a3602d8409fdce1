package core

import (
	"context"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// FeedDecimals decimals of every price feed answer
const FeedDecimals = 8

// PriceRound latest answer of a price feed, Answer is a signed 8-decimal USD price
type PriceRound struct {
	FeedID    string
	Answer    *big.Int
	UpdatedAt time.Time
}

// PriceFeed per-asset price source
type PriceFeed interface {
	LatestPrice(ctx context.Context) (*PriceRound, error)
}

// Price price row recorded for a feed
type Price struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	FeedID    string          `sql:"size:64;index:idx_prices_feed_id" json:"feed_id,omitempty"`
	Price     decimal.Decimal `sql:"type:decimal(36,8)" json:"price,omitempty"`
	Provider  string          `sql:"size:64" json:"provider,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
}

// Round convert the row into a feed answer
func (p *Price) Round() *PriceRound {
	return &PriceRound{
		FeedID:    p.FeedID,
		Answer:    p.Price.Shift(FeedDecimals).BigInt(),
		UpdatedAt: p.CreatedAt,
	}
}

// PriceTicker price ticker
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// PriceStore price store interface
type PriceStore interface {
	Create(ctx context.Context, price *Price) error
	// Latest return the most recent price of the feed, found is false if none
	Latest(ctx context.Context, feedID string) (*Price, bool, error)
}

// PriceTickerService remote price source pulled by the price feed worker
type PriceTickerService interface {
	PullPriceTicker(ctx context.Context, feedID string, t time.Time) (*PriceTicker, error)
}
