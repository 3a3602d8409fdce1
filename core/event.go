package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// EventCollateralDeposited collateral deposited
	EventCollateralDeposited = "CollateralDeposited"
	// EventCollateralRedeemed collateral redeemed, From and To differ on liquidation
	EventCollateralRedeemed = "CollateralRedeemed"
)

// Event audit event emitted by a committed engine operation
type Event struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index:idx_events_trace_id" json:"trace_id"`
	Name      string          `sql:"size:32" json:"name"`
	From      string          `sql:"size:64;index:idx_events_from" gorm:"column:from_user" json:"from"`
	To        string          `sql:"size:64;index:idx_events_to" gorm:"column:to_user" json:"to"`
	AssetID   string          `sql:"size:64" json:"asset_id"`
	Amount    decimal.Decimal `sql:"type:decimal(78,0)" json:"amount"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// EventStore event store interface
type EventStore interface {
	Create(ctx context.Context, events ...*Event) error
	List(ctx context.Context, fromID int64, limit int) ([]*Event, error)
	ListByUser(ctx context.Context, userID string, fromID int64, limit int) ([]*Event, error)
}
