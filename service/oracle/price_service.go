package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dsc/core"
	"dsc/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

// ErrNoPrice feed has not published any price yet
var ErrNoPrice = errors.New("oracle: no price")

// Feed price feed reading the latest recorded price of FeedID
type Feed struct {
	FeedID string
	prices core.PriceStore
}

// NewFeed new store backed price feed
func NewFeed(feedID string, prices core.PriceStore) *Feed {
	return &Feed{
		FeedID: feedID,
		prices: prices,
	}
}

// LatestPrice latest recorded round, staleness is not checked
func (f *Feed) LatestPrice(ctx context.Context) (*core.PriceRound, error) {
	price, found, err := f.prices.Latest(ctx, f.FeedID)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNoPrice, f.FeedID)
	}

	return price.Round(), nil
}

// TickerService pull price tickers from a remote endpoint
type TickerService struct {
	EndPoint string
}

// NewTickerService new ticker service
func NewTickerService(endPoint string) *TickerService {
	return &TickerService{EndPoint: endPoint}
}

// PullPriceTicker pull price ticker
func (s *TickerService) PullPriceTicker(ctx context.Context, feedID string, t time.Time) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s?ts=%d", s.EndPoint, feedID, t.UTC().Unix())
	logger.FromContext(ctx).Debugln("pull price:", url)
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var price core.PriceTicker
	if err := resthttp.ParseResponse(resp, &price); err != nil {
		return nil, err
	}

	return &price, nil
}
