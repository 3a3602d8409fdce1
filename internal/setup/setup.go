package setup

import (
	"context"
	"fmt"

	"dsc/core"
	"dsc/pkg/number"
	"dsc/service/oracle"
	"dsc/service/token"

	"github.com/fox-one/pkg/logger"
)

// Assets build the collateral registry from confs. Each asset gets a custody
// token, restored from ledgers when not nil, and a feed reading prices; a
// configured price seeds a feed that has not recorded any price yet.
func Assets(ctx context.Context, confs []core.AssetConf, prices core.PriceStore, ledgers core.LedgerStore) (*core.AssetRegistry, map[string]*token.Token, error) {
	log := logger.FromContext(ctx)

	tokens := make(map[string]*token.Token, len(confs))
	assets := make([]*core.CollateralAsset, 0, len(confs))
	for _, c := range confs {
		if c.Price.IsPositive() {
			_, found, err := prices.Latest(ctx, c.FeedID)
			if err != nil {
				return nil, nil, err
			}

			if !found {
				if err := prices.Create(ctx, &core.Price{
					FeedID:   c.FeedID,
					Price:    c.Price.Truncate(core.FeedDecimals),
					Provider: "config",
				}); err != nil {
					return nil, nil, err
				}

				log.WithField("feed", c.FeedID).Infoln("price seeded:", c.Price)
			}
		}

		tk, err := Ledger(ctx, c.AssetID, c.Symbol, token.GenesisMinter, ledgers)
		if err != nil {
			return nil, nil, err
		}

		tokens[c.AssetID] = tk
		assets = append(assets, &core.CollateralAsset{
			AssetID: c.AssetID,
			Symbol:  c.Symbol,
			Feed:    oracle.NewFeed(c.FeedID, prices),
			Token:   tk,
		})
	}

	registry, err := core.NewAssetRegistry(assets...)
	if err != nil {
		return nil, nil, err
	}

	return registry, tokens, nil
}

// Ledger token named ledger, in memory only when ledgers is nil
func Ledger(ctx context.Context, ledger, symbol, owner string, ledgers core.LedgerStore) (*token.Token, error) {
	if ledgers == nil {
		return token.New(symbol, owner), nil
	}

	return token.Load(ctx, ledger, symbol, owner, ledgers)
}

// Genesis credit the initial balances, only collateral assets can be credited.
// A token that already has a supply, restored from its store, is skipped.
func Genesis(ctx context.Context, entries []core.Genesis, tokens map[string]*token.Token) error {
	log := logger.FromContext(ctx)

	skip := map[string]bool{}
	for _, g := range entries {
		tk, ok := tokens[g.AssetID]
		if !ok {
			return fmt.Errorf("genesis: %s is not a collateral asset", g.AssetID)
		}

		if _, checked := skip[g.AssetID]; !checked {
			skip[g.AssetID] = !tk.TotalSupply(ctx).IsZero()
			if skip[g.AssetID] {
				log.WithField("asset", g.AssetID).Infoln("genesis already applied")
			}
		}

		if skip[g.AssetID] {
			continue
		}

		amount, err := number.ToUnits(g.Amount)
		if err != nil {
			return fmt.Errorf("genesis: %s %s: %w", g.Account, g.AssetID, err)
		}

		if err := tk.Mint(ctx, token.GenesisMinter, g.Account, amount); err != nil {
			return fmt.Errorf("genesis: %s %s: %w", g.Account, g.AssetID, err)
		}
	}

	return nil
}
