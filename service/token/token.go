package token

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"dsc/core"
	"dsc/pkg/number"

	"github.com/holiman/uint256"
)

var (
	// ErrInvalidAmount zero amount
	ErrInvalidAmount = errors.New("token: amount must be more than zero")
	// ErrInvalidReceiver empty receiver
	ErrInvalidReceiver = errors.New("token: invalid receiver")
	// ErrInsufficientBalance balance below amount
	ErrInsufficientBalance = errors.New("token: insufficient balance")
	// ErrInsufficientAllowance allowance below amount
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
)

// GenesisMinter mint authority of the collateral custody tokens, only used to
// credit the configured genesis balances
const GenesisMinter = "genesis"

// Token in-process fungible token ledger. Mint and burn are gated on the
// configured owner. With a store every change is saved before it is applied.
type Token struct {
	ledger string
	symbol string
	owner  string
	store  core.LedgerStore

	mu         sync.RWMutex
	supply     *uint256.Int
	balances   map[string]*uint256.Int
	allowances map[string]map[string]*uint256.Int
}

// New new token whose mint authority is owner
func New(symbol, owner string) *Token {
	return &Token{
		ledger:     symbol,
		symbol:     symbol,
		owner:      owner,
		supply:     new(uint256.Int),
		balances:   map[string]*uint256.Int{},
		allowances: map[string]map[string]*uint256.Int{},
	}
}

// Load token named ledger restored from and saved to store
func Load(ctx context.Context, ledger, symbol, owner string, store core.LedgerStore) (*Token, error) {
	t := New(symbol, owner)
	t.ledger = ledger
	t.store = store

	balances, err := store.Balances(ctx, ledger)
	if err != nil {
		return nil, fmt.Errorf("token %s: balances: %w", ledger, err)
	}

	for _, b := range balances {
		amount, err := number.ToInt(b.Amount)
		if err != nil {
			return nil, fmt.Errorf("token %s: balance of %s: %w", ledger, b.Account, err)
		}

		supply, overflow := new(uint256.Int).AddOverflow(t.supply, amount)
		if overflow {
			return nil, fmt.Errorf("token %s: %w", ledger, core.ErrOverflow)
		}

		t.supply = supply
		t.balances[b.Account] = amount
	}

	allowances, err := store.Allowances(ctx, ledger)
	if err != nil {
		return nil, fmt.Errorf("token %s: allowances: %w", ledger, err)
	}

	for _, a := range allowances {
		amount, err := number.ToInt(a.Amount)
		if err != nil {
			return nil, fmt.Errorf("token %s: allowance of %s: %w", ledger, a.Owner, err)
		}

		t.setAllowance(a.Owner, a.Spender, amount)
	}

	return t, nil
}

var _ core.SyntheticLedger = (*Token)(nil)

// Ledger name the token is stored under
func (t *Token) Ledger() string {
	return t.ledger
}

// Symbol token symbol
func (t *Token) Symbol() string {
	return t.symbol
}

// Owner mint authority
func (t *Token) Owner() string {
	return t.owner
}

func (t *Token) authorized(caller string) bool {
	return t.owner != "" && caller == t.owner
}

func (t *Token) BalanceOf(_ context.Context, account string) *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.balanceOf(account).Clone()
}

func (t *Token) TotalSupply(_ context.Context) *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.supply.Clone()
}

func (t *Token) Allowance(_ context.Context, owner, spender string) *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.allowance(owner, spender).Clone()
}

func (t *Token) Approve(ctx context.Context, owner, spender string, amount *uint256.Int) error {
	if spender == "" {
		return ErrInvalidReceiver
	}

	if amount == nil {
		return ErrInvalidAmount
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	c := t.pending()
	c.allow(owner, spender, amount.Clone())
	return t.apply(ctx, c)
}

func (t *Token) Transfer(ctx context.Context, from, to string, amount *uint256.Int) error {
	if amount == nil {
		return ErrInvalidAmount
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	c := t.pending()
	if err := t.move(c, from, to, amount); err != nil {
		return err
	}

	return t.apply(ctx, c)
}

func (t *Token) TransferFrom(ctx context.Context, spender, from, to string, amount *uint256.Int) error {
	if amount == nil {
		return ErrInvalidAmount
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	allowed := t.allowance(from, spender)
	if allowed.Lt(amount) {
		return ErrInsufficientAllowance
	}

	c := t.pending()
	if err := t.move(c, from, to, amount); err != nil {
		return err
	}

	c.allow(from, spender, new(uint256.Int).Sub(allowed, amount))
	return t.apply(ctx, c)
}

// Mint create amount for to, only the owner may mint
func (t *Token) Mint(ctx context.Context, caller, to string, amount *uint256.Int) error {
	if !t.authorized(caller) {
		return core.ErrUnauthorized
	}

	if to == "" {
		return ErrInvalidReceiver
	}

	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	supply, overflow := new(uint256.Int).AddOverflow(t.supply, amount)
	if overflow {
		return core.ErrOverflow
	}

	c := t.pending()
	c.supply = supply
	c.balances[to] = new(uint256.Int).Add(t.balanceOf(to), amount)
	return t.apply(ctx, c)
}

// Burn destroy amount from the caller's balance, only the owner may burn
func (t *Token) Burn(ctx context.Context, caller string, amount *uint256.Int) error {
	if !t.authorized(caller) {
		return core.ErrUnauthorized
	}

	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	balance := t.balanceOf(caller)
	if balance.Lt(amount) {
		return ErrInsufficientBalance
	}

	c := t.pending()
	c.supply = new(uint256.Int).Sub(t.supply, amount)
	c.balances[caller] = new(uint256.Int).Sub(balance, amount)
	return t.apply(ctx, c)
}

// change pending balances and allowances of one ledger call
type change struct {
	supply     *uint256.Int
	balances   map[string]*uint256.Int
	allowances map[[2]string]*uint256.Int
}

func (t *Token) pending() *change {
	return &change{
		balances:   map[string]*uint256.Int{},
		allowances: map[[2]string]*uint256.Int{},
	}
}

func (c *change) allow(owner, spender string, amount *uint256.Int) {
	c.allowances[[2]string{owner, spender}] = amount
}

func (t *Token) move(c *change, from, to string, amount *uint256.Int) error {
	if to == "" {
		return ErrInvalidReceiver
	}

	balance := t.balanceOf(from)
	if balance.Lt(amount) {
		return ErrInsufficientBalance
	}

	if from == to {
		return nil
	}

	c.balances[from] = new(uint256.Int).Sub(balance, amount)
	c.balances[to] = new(uint256.Int).Add(t.balanceOf(to), amount)
	return nil
}

// apply save c when the token has a store, then apply it in memory
func (t *Token) apply(ctx context.Context, c *change) error {
	if t.store != nil {
		if err := t.save(ctx, c); err != nil {
			return fmt.Errorf("token %s: save: %w", t.ledger, err)
		}
	}

	if c.supply != nil {
		t.supply = c.supply
	}

	for account, amount := range c.balances {
		t.balances[account] = amount
	}

	for key, amount := range c.allowances {
		t.setAllowance(key[0], key[1], amount)
	}

	return nil
}

func (t *Token) save(ctx context.Context, c *change) error {
	accounts := make([]string, 0, len(c.balances))
	for account := range c.balances {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)

	balances := make([]*core.Balance, 0, len(accounts))
	for _, account := range accounts {
		balances = append(balances, &core.Balance{
			Ledger:  t.ledger,
			Account: account,
			Amount:  number.FromInt(c.balances[account]),
		})
	}

	allowances := make([]*core.Allowance, 0, len(c.allowances))
	for key, amount := range c.allowances {
		allowances = append(allowances, &core.Allowance{
			Ledger:  t.ledger,
			Owner:   key[0],
			Spender: key[1],
			Amount:  number.FromInt(amount),
		})
	}

	return t.store.Save(ctx, balances, allowances)
}

func (t *Token) setAllowance(owner, spender string, amount *uint256.Int) {
	m, ok := t.allowances[owner]
	if !ok {
		m = map[string]*uint256.Int{}
		t.allowances[owner] = m
	}

	m[spender] = amount
}

func (t *Token) balanceOf(account string) *uint256.Int {
	if v, ok := t.balances[account]; ok {
		return v
	}

	return new(uint256.Int)
}

func (t *Token) allowance(owner, spender string) *uint256.Int {
	if v, ok := t.allowances[owner][spender]; ok {
		return v
	}

	return new(uint256.Int)
}
