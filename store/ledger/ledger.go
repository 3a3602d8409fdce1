package ledger

import (
	"context"

	"dsc/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type ledgerStore struct {
	db *db.DB
}

// New new ledger store
func New(db *db.DB) core.LedgerStore {
	return &ledgerStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Balance{})
		if err := tx.AutoMigrate(core.Balance{}).Error; err != nil {
			return err
		}

		tx = db.Update().Model(core.Allowance{})
		if err := tx.AutoMigrate(core.Allowance{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *ledgerStore) Balances(ctx context.Context, ledger string) ([]*core.Balance, error) {
	var balances []*core.Balance
	if err := s.db.View().Where("ledger = ?", ledger).Order("account").Find(&balances).Error; err != nil {
		return nil, err
	}

	return balances, nil
}

func (s *ledgerStore) Allowances(ctx context.Context, ledger string) ([]*core.Allowance, error) {
	var allowances []*core.Allowance
	if err := s.db.View().Where("ledger = ?", ledger).Order("owner, spender").Find(&allowances).Error; err != nil {
		return nil, err
	}

	return allowances, nil
}

func (s *ledgerStore) Save(ctx context.Context, balances []*core.Balance, allowances []*core.Allowance) error {
	return s.db.Tx(func(tx *db.DB) error {
		for _, b := range balances {
			if err := saveBalance(tx, b); err != nil {
				return err
			}
		}

		for _, a := range allowances {
			if err := saveAllowance(tx, a); err != nil {
				return err
			}
		}

		return nil
	})
}

func saveBalance(tx *db.DB, b *core.Balance) error {
	var row core.Balance
	err := tx.Update().Where("ledger = ? AND account = ?", b.Ledger, b.Account).First(&row).Error
	if store.IsErrNotFound(err) {
		row = *b
		return tx.Update().Create(&row).Error
	}

	if err != nil {
		return err
	}

	return tx.Update().Model(core.Balance{}).
		Where("ledger = ? AND account = ?", b.Ledger, b.Account).
		Updates(map[string]interface{}{
			"amount": b.Amount,
		}).Error
}

func saveAllowance(tx *db.DB, a *core.Allowance) error {
	var row core.Allowance
	err := tx.Update().Where("ledger = ? AND owner = ? AND spender = ?", a.Ledger, a.Owner, a.Spender).First(&row).Error
	if store.IsErrNotFound(err) {
		row = *a
		return tx.Update().Create(&row).Error
	}

	if err != nil {
		return err
	}

	return tx.Update().Model(core.Allowance{}).
		Where("ledger = ? AND owner = ? AND spender = ?", a.Ledger, a.Owner, a.Spender).
		Updates(map[string]interface{}{
			"amount": a.Amount,
		}).Error
}
