package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Balance token balance row of an account
type Balance struct {
	Ledger    string          `sql:"size:64;PRIMARY_KEY" json:"ledger"`
	Account   string          `sql:"size:64;PRIMARY_KEY" json:"account"`
	Amount    decimal.Decimal `sql:"type:decimal(78,0)" json:"amount"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Allowance spending allowance row
type Allowance struct {
	Ledger    string          `sql:"size:64;PRIMARY_KEY" json:"ledger"`
	Owner     string          `sql:"size:64;PRIMARY_KEY" json:"owner"`
	Spender   string          `sql:"size:64;PRIMARY_KEY" json:"spender"`
	Amount    decimal.Decimal `sql:"type:decimal(78,0)" json:"amount"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// LedgerStore persisted state of the token ledgers
type LedgerStore interface {
	Balances(ctx context.Context, ledger string) ([]*Balance, error)
	Allowances(ctx context.Context, ledger string) ([]*Allowance, error)
	// Save upsert the rows atomically
	Save(ctx context.Context, balances []*Balance, allowances []*Allowance) error
}
