package pricefeed

import (
	"context"
	"fmt"
	"time"

	"dsc/core"
	"dsc/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Worker pull tickers of every feed and record them as prices
type Worker struct {
	worker.BaseJob
	feeds   []string
	tickers core.PriceTickerService
	prices  core.PriceStore
}

// New new price feed worker running every period
func New(feeds []string, period time.Duration, tickers core.PriceTickerService, prices core.PriceStore) (*Worker, error) {
	w := &Worker{
		feeds:   feeds,
		tickers: tickers,
		prices:  prices,
	}

	w.Name = "pricefeed"
	w.Cron = cron.New()
	w.OnWork = w.onWork
	if err := w.Schedule(fmt.Sprintf("@every %s", period)); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	now := time.Now()

	var g errgroup.Group
	for _, feedID := range w.feeds {
		feedID := feedID
		g.Go(func() error {
			return w.pull(ctx, feedID, now)
		})
	}

	return g.Wait()
}

func (w *Worker) pull(ctx context.Context, feedID string, t time.Time) error {
	log := logger.FromContext(ctx).WithField("feed", feedID)

	ticker, err := w.tickers.PullPriceTicker(ctx, feedID, t)
	if err != nil {
		log.WithError(err).Errorln("pull price ticker")
		return err
	}

	if ticker.Price.LessThanOrEqual(decimal.Zero) {
		log.Errorln("invalid ticker price:", ticker.Symbol, ":", ticker.Price)
		return nil
	}

	price := &core.Price{
		FeedID:   feedID,
		Price:    ticker.Price.Truncate(core.FeedDecimals),
		Provider: ticker.Provider,
	}

	if err := w.prices.Create(ctx, price); err != nil {
		log.WithError(err).Errorln("prices.Create")
		return err
	}

	log.Debugln("price recorded:", price.Price)
	return nil
}
