package core

import (
	"context"
	"time"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Position collateral and synthetic debt of one account
type Position struct {
	UserID      string
	Collaterals map[string]*uint256.Int
	DscMinted   *uint256.Int
	// Version the stored version the position was read at, 0 if never saved
	Version int64
}

// NewPosition all-zero position
func NewPosition(userID string) *Position {
	return &Position{
		UserID:      userID,
		Collaterals: map[string]*uint256.Int{},
		DscMinted:   new(uint256.Int),
	}
}

// Collateral deposited amount of asset, never nil
func (p *Position) Collateral(assetID string) *uint256.Int {
	if v, ok := p.Collaterals[assetID]; ok && v != nil {
		return v
	}

	return new(uint256.Int)
}

// Clone deep copy
func (p *Position) Clone() *Position {
	cp := NewPosition(p.UserID)
	for k, v := range p.Collaterals {
		if v != nil {
			cp.Collaterals[k] = new(uint256.Int).Set(v)
		}
	}

	if p.DscMinted != nil {
		cp.DscMinted.Set(p.DscMinted)
	}

	cp.Version = p.Version
	return cp
}

// Collateral collateral row
type Collateral struct {
	UserID    string          `sql:"size:64;PRIMARY_KEY" json:"user_id"`
	AssetID   string          `sql:"size:64;PRIMARY_KEY" json:"asset_id"`
	Amount    decimal.Decimal `sql:"type:decimal(78,0)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Debt synthetic debt row, its Version is the version of the whole position
type Debt struct {
	UserID    string          `sql:"size:64;PRIMARY_KEY" json:"user_id"`
	Minted    decimal.Decimal `sql:"type:decimal(78,0)" json:"minted"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PositionStore position store interface
type PositionStore interface {
	// Find return an all-zero position when the user has none
	Find(ctx context.Context, userID string) (*Position, error)
	// Save persist all positions atomically. A position whose Version is not
	// the stored one fails with db.ErrOptimisticLock; on success Version is
	// advanced on every saved position.
	Save(ctx context.Context, positions ...*Position) error
	// Users every user with a saved position, ordered by id
	Users(ctx context.Context) ([]string, error)
}
