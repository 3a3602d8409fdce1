package engine

import (
	"context"
	"fmt"
	"time"

	"dsc/core"
	"dsc/pkg/dsc"
	"dsc/pkg/id"
	"dsc/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// unit is the working set of one engine operation. Positions are mutated on
// copies and every external call is queued; commit runs the pulls into the
// engine first, then saves the positions, then runs the payouts to accounts.
// Applied pulls are undone in reverse order when a later step fails.
type unit struct {
	e *Engine

	originals map[string]*core.Position
	positions map[string]*core.Position
	touched   []string
	prices    map[string]*uint256.Int

	pulls         []step
	payouts       []func(ctx context.Context) error
	compensations []func(ctx context.Context) error
	events        []*core.Event
}

// step external call and the call undoing it
type step struct {
	run  func(ctx context.Context) error
	undo func(ctx context.Context) error
}

func (e *Engine) begin() *unit {
	return &unit{
		e:         e,
		originals: map[string]*core.Position{},
		positions: map[string]*core.Position{},
		prices:    map[string]*uint256.Int{},
	}
}

// position provisional position of user
func (u *unit) position(ctx context.Context, user string) (*core.Position, error) {
	if p, ok := u.positions[user]; ok {
		return p, nil
	}

	p, err := u.e.positions.Find(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("find position %s: %w", user, err)
	}

	u.originals[user] = p.Clone()
	u.positions[user] = p.Clone()
	return u.positions[user], nil
}

func (u *unit) touch(user string) {
	for _, t := range u.touched {
		if t == user {
			return
		}
	}

	u.touched = append(u.touched, user)
}

// price 18-decimal price of asset, sampled once per unit
func (u *unit) price(ctx context.Context, asset *core.CollateralAsset) (*uint256.Int, error) {
	if p, ok := u.prices[asset.AssetID]; ok {
		return p, nil
	}

	round, err := asset.Feed.LatestPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest price %s: %w", asset.AssetID, err)
	}

	p, err := dsc.FeedPrice(round.Answer)
	if err != nil {
		return nil, err
	}

	u.prices[asset.AssetID] = p
	return p, nil
}

func (u *unit) usdValue(ctx context.Context, asset *core.CollateralAsset, amount *uint256.Int) (*uint256.Int, error) {
	price, err := u.price(ctx, asset)
	if err != nil {
		return nil, err
	}

	return dsc.UsdValue(price, amount)
}

func (u *unit) tokenAmountFromUsd(ctx context.Context, asset *core.CollateralAsset, usd *uint256.Int) (*uint256.Int, error) {
	price, err := u.price(ctx, asset)
	if err != nil {
		return nil, err
	}

	return dsc.TokenAmountFromUsd(price, usd)
}

func (u *unit) collateralValue(ctx context.Context, user string) (*uint256.Int, error) {
	p, err := u.position(ctx, user)
	if err != nil {
		return nil, err
	}

	total := new(uint256.Int)
	err = u.e.assets.Each(func(asset *core.CollateralAsset) error {
		amount := p.Collateral(asset.AssetID)
		if amount.IsZero() {
			return nil
		}

		v, err := u.usdValue(ctx, asset, amount)
		if err != nil {
			return err
		}

		total, err = dsc.Add(total, v)
		return err
	})

	return total, err
}

func (u *unit) accountInformation(ctx context.Context, user string) (*core.AccountInformation, error) {
	p, err := u.position(ctx, user)
	if err != nil {
		return nil, err
	}

	value, err := u.collateralValue(ctx, user)
	if err != nil {
		return nil, err
	}

	return &core.AccountInformation{
		DscMinted:          p.DscMinted.Clone(),
		CollateralValueUSD: value,
	}, nil
}

func (u *unit) healthFactor(ctx context.Context, user string) (*uint256.Int, error) {
	info, err := u.accountInformation(ctx, user)
	if err != nil {
		return nil, err
	}

	return dsc.HealthFactor(info.DscMinted, info.CollateralValueUSD)
}

func (u *unit) requireHealthy(ctx context.Context, user string) error {
	hf, err := u.healthFactor(ctx, user)
	if err != nil {
		return err
	}

	if !dsc.IsHealthy(hf) {
		return core.ErrBreaksHealthFactor.WithHealthFactor(hf)
	}

	return nil
}

func (u *unit) pull(run, undo func(ctx context.Context) error) {
	u.pulls = append(u.pulls, step{run: run, undo: undo})
}

func (u *unit) payout(fn func(ctx context.Context) error) {
	u.payouts = append(u.payouts, fn)
}

func (u *unit) emit(name, from, to, assetID string, amount *uint256.Int) {
	u.events = append(u.events, &core.Event{
		TraceID:   id.GenTraceID(),
		Name:      name,
		From:      from,
		To:        to,
		AssetID:   assetID,
		Amount:    number.FromInt(amount),
		CreatedAt: time.Now(),
	})
}

func (u *unit) save(ctx context.Context, from map[string]*core.Position) error {
	if len(u.touched) == 0 {
		return nil
	}

	positions := make([]*core.Position, 0, len(u.touched))
	for _, user := range u.touched {
		positions = append(positions, from[user])
	}

	return u.e.positions.Save(ctx, positions...)
}

// commit run pulls, persist touched positions, run payouts and publish events
func (u *unit) commit(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for _, s := range u.pulls {
		if err := s.run(ctx); err != nil {
			return err
		}

		if s.undo != nil {
			u.compensations = append(u.compensations, s.undo)
		}
	}

	if err := u.save(ctx, u.positions); err != nil {
		return fmt.Errorf("save positions: %w", err)
	}

	for idx, pay := range u.payouts {
		if err := pay(ctx); err != nil {
			if idx > 0 {
				log.Errorln("payouts partially applied:", idx)
			}

			for _, user := range u.touched {
				u.originals[user].Version = u.positions[user].Version
			}

			if err := u.save(ctx, u.originals); err != nil {
				log.WithError(err).Errorln("restore positions")
			}

			return err
		}
	}

	if len(u.events) > 0 && u.e.events != nil {
		if err := u.e.events.Create(ctx, u.events...); err != nil {
			log.WithError(err).Errorln("events.Create")
		}
	}

	return nil
}

// rollback undo applied pulls in reverse order
func (u *unit) rollback(ctx context.Context) {
	log := logger.FromContext(ctx)

	for i := len(u.compensations) - 1; i >= 0; i-- {
		if err := u.compensations[i](ctx); err != nil {
			log.WithError(err).Errorln("compensation failed")
		}
	}
}
