package core

import (
	"context"

	"github.com/holiman/uint256"
)

// Token fungible asset ledger used for collateral custody
type Token interface {
	BalanceOf(ctx context.Context, account string) *uint256.Int
	TotalSupply(ctx context.Context) *uint256.Int
	Allowance(ctx context.Context, owner, spender string) *uint256.Int
	Approve(ctx context.Context, owner, spender string, amount *uint256.Int) error
	Transfer(ctx context.Context, from, to string, amount *uint256.Int) error
	TransferFrom(ctx context.Context, spender, from, to string, amount *uint256.Int) error
}

// SyntheticLedger ledger of the pegged synthetic token, mint and burn are
// restricted to the ledger owner
type SyntheticLedger interface {
	Token
	Mint(ctx context.Context, caller, to string, amount *uint256.Int) error
	// Burn destroy amount from the caller's own balance
	Burn(ctx context.Context, caller string, amount *uint256.Int) error
}
