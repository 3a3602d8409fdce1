package cmd

import (
	"context"
	"time"

	"dsc/core"
	"dsc/internal/setup"
	"dsc/service/engine"
	"dsc/service/oracle"
	"dsc/service/session"
	"dsc/store/event"
	"dsc/store/ledger"
	"dsc/store/position"
	"dsc/store/price"

	"github.com/fox-one/pkg/store/db"
	_ "github.com/lib/pq"
)

type stores struct {
	positions core.PositionStore
	prices    core.PriceStore
	events    core.EventStore
	// ledgers nil keeps the token ledgers in memory only
	ledgers core.LedgerStore
	ping      func(ctx context.Context) error
	close     func() error
}

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

// provideStores memory stores when no database dialect is configured
func provideStores() stores {
	if cfg.DB.Dialect == "" {
		return stores{
			positions: position.NewMemory(),
			prices:    price.NewMemory(),
			events:    event.NewMemory(),
			ping:      func(context.Context) error { return nil },
			close:     func() error { return nil },
		}
	}

	database := provideDatabase()
	return stores{
		positions: position.Cache(position.New(database), time.Minute),
		prices:    price.New(database),
		events:    event.New(database),
		ledgers:   ledger.New(database),
		ping: func(ctx context.Context) error {
			return database.View().DB().PingContext(ctx)
		},
		close: database.Close,
	}
}

func provideEngine(ctx context.Context, s stores) (*engine.Sequencer, error) {
	assets, tokens, err := setup.Assets(ctx, cfg.Collaterals, s.prices, s.ledgers)
	if err != nil {
		return nil, err
	}

	if err := setup.Genesis(ctx, cfg.Genesis, tokens); err != nil {
		return nil, err
	}

	dsc, err := setup.Ledger(ctx, cfg.App.DscSymbol, cfg.App.DscSymbol, cfg.App.Self, s.ledgers)
	if err != nil {
		return nil, err
	}

	e, err := engine.New(cfg.App.Self, assets, dsc, s.positions, s.events)
	if err != nil {
		return nil, err
	}

	return engine.Serialize(e), nil
}

func provideSession() core.Session {
	return session.New(session.Config{
		Secret:   cfg.App.JWTSecret,
		Capacity: 1024,
		CacheTTL: time.Minute,
		Leeway:   5 * time.Second,
	})
}

func provideTickerService() core.PriceTickerService {
	return oracle.NewTickerService(cfg.PriceFeed.EndPoint)
}

func feedIDs() []string {
	ids := make([]string, 0, len(cfg.Collaterals))
	for _, c := range cfg.Collaterals {
		ids = append(ids, c.FeedID)
	}

	return ids
}
