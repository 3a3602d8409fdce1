package engine

import (
	"context"
	"errors"
	"sync"

	"dsc/core"
	"dsc/pkg/dsc"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// Engine collateral engine. It owns every position, is the custodian of the
// deposited collateral and the mint authority of the synthetic ledger.
type Engine struct {
	self      string
	assets    *core.AssetRegistry
	dsc       core.SyntheticLedger
	positions core.PositionStore
	events    core.EventStore
	guard     guard
}

// New new collateral engine identified by self
func New(
	self string,
	assets *core.AssetRegistry,
	ledger core.SyntheticLedger,
	positions core.PositionStore,
	events core.EventStore,
) (*Engine, error) {
	if self == "" {
		return nil, errors.New("engine: empty identity")
	}

	if assets == nil || assets.Len() == 0 {
		return nil, errors.New("engine: no collateral assets")
	}

	if ledger == nil {
		return nil, errors.New("engine: synthetic ledger not configured")
	}

	if positions == nil {
		return nil, errors.New("engine: position store not configured")
	}

	return &Engine{
		self:      self,
		assets:    assets,
		dsc:       ledger,
		positions: positions,
		events:    events,
	}, nil
}

var _ core.IEngine = (*Engine)(nil)

// guard rejects re-entrant calls instead of blocking on them
type guard struct {
	mu sync.Mutex
}

func (g *guard) enter() bool {
	return g.mu.TryLock()
}

func (g *guard) exit() {
	g.mu.Unlock()
}

// execute run fn as one atomic non-reentrant operation
func (e *Engine) execute(ctx context.Context, op string, fn func(ctx context.Context, u *unit) error) error {
	if !e.guard.enter() {
		return core.ErrReentrantCall
	}
	defer e.guard.exit()

	log := logger.FromContext(ctx).WithField("op", op)
	ctx = logger.WithContext(ctx, log)

	u := e.begin()
	if err := fn(ctx, u); err != nil {
		log.WithError(err).Infoln("rejected")
		return err
	}

	if err := u.commit(ctx); err != nil {
		u.rollback(ctx)
		log.WithError(err).Errorln("commit failed")
		return err
	}

	log.Debugln("done")
	return nil
}

func (e *Engine) asset(assetID string) (*core.CollateralAsset, error) {
	asset, ok := e.assets.Find(assetID)
	if !ok {
		return nil, core.ErrNotAllowedToken
	}

	return asset, nil
}

func positive(amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return core.ErrNeedsMoreThanZero
	}

	return nil
}

// Self engine identity
func (e *Engine) Self() string {
	return e.self
}

// CollateralTokens registered asset ids in registration order
func (e *Engine) CollateralTokens() []string {
	return e.assets.IDs()
}

// CollateralAsset registered asset by id
func (e *Engine) CollateralAsset(assetID string) (*core.CollateralAsset, bool) {
	return e.assets.Find(assetID)
}

// CollateralTokenPriceFeed price feed of a registered asset
func (e *Engine) CollateralTokenPriceFeed(assetID string) (core.PriceFeed, bool) {
	asset, ok := e.assets.Find(assetID)
	if !ok {
		return nil, false
	}

	return asset.Feed, true
}

// Dsc synthetic ledger
func (e *Engine) Dsc() core.SyntheticLedger {
	return e.dsc
}

// AccountCollateralValue USD value of every asset deposited by user
func (e *Engine) AccountCollateralValue(ctx context.Context, user string) (*uint256.Int, error) {
	return e.begin().collateralValue(ctx, user)
}

// AccountInformation minted debt and collateral value of user
func (e *Engine) AccountInformation(ctx context.Context, user string) (*core.AccountInformation, error) {
	return e.begin().accountInformation(ctx, user)
}

// HealthFactor health factor of user, max uint256 without debt
func (e *Engine) HealthFactor(ctx context.Context, user string) (*uint256.Int, error) {
	return e.begin().healthFactor(ctx, user)
}

// CalculateHealthFactor health factor of an arbitrary debt and collateral value
func (e *Engine) CalculateHealthFactor(minted, collateralUSD *uint256.Int) (*uint256.Int, error) {
	return dsc.HealthFactor(minted, collateralUSD)
}

// CollateralBalance amount of assetID deposited by user
func (e *Engine) CollateralBalance(ctx context.Context, user, assetID string) (*uint256.Int, error) {
	p, err := e.positions.Find(ctx, user)
	if err != nil {
		return nil, err
	}

	return p.Collateral(assetID).Clone(), nil
}

// UsdValue USD value of amount of assetID
func (e *Engine) UsdValue(ctx context.Context, assetID string, amount *uint256.Int) (*uint256.Int, error) {
	asset, err := e.asset(assetID)
	if err != nil {
		return nil, err
	}

	return e.begin().usdValue(ctx, asset, amount)
}

// TokenAmountFromUsd amount of assetID worth usd
func (e *Engine) TokenAmountFromUsd(ctx context.Context, assetID string, usd *uint256.Int) (*uint256.Int, error) {
	asset, err := e.asset(assetID)
	if err != nil {
		return nil, err
	}

	return e.begin().tokenAmountFromUsd(ctx, asset, usd)
}
