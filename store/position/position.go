package position

import (
	"context"
	"fmt"

	"dsc/core"
	"dsc/pkg/number"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.PositionStore {
	return &positionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Collateral{})
		if err := tx.AutoMigrate(core.Collateral{}).Error; err != nil {
			return err
		}

		tx = db.Update().Model(core.Debt{})
		if err := tx.AutoMigrate(core.Debt{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Find(ctx context.Context, userID string) (*core.Position, error) {
	p := core.NewPosition(userID)

	var collaterals []*core.Collateral
	if err := s.db.View().Where("user_id = ?", userID).Find(&collaterals).Error; err != nil {
		return nil, err
	}

	for _, c := range collaterals {
		amount, err := number.ToInt(c.Amount)
		if err != nil {
			return nil, fmt.Errorf("collateral %s/%s: %w", c.UserID, c.AssetID, err)
		}

		p.Collaterals[c.AssetID] = amount
	}

	var debt core.Debt
	err := s.db.View().Where("user_id = ?", userID).First(&debt).Error
	if err != nil && !store.IsErrNotFound(err) {
		return nil, err
	}

	if err == nil {
		minted, err := number.ToInt(debt.Minted)
		if err != nil {
			return nil, fmt.Errorf("debt %s: %w", debt.UserID, err)
		}

		p.DscMinted = minted
		p.Version = debt.Version
	}

	return p, nil
}

func (s *positionStore) Save(ctx context.Context, positions ...*core.Position) error {
	if err := s.db.Tx(func(tx *db.DB) error {
		for _, p := range positions {
			if err := saveDebt(tx, p); err != nil {
				return err
			}

			if err := saveCollaterals(tx, p); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return err
	}

	for _, p := range positions {
		p.Version++
	}

	return nil
}

// saveDebt write the debt row guarded by the version p was read at
func saveDebt(tx *db.DB, p *core.Position) error {
	if p.Version == 0 {
		var count int
		if err := tx.Update().Model(core.Debt{}).Where("user_id = ?", p.UserID).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return db.ErrOptimisticLock
		}

		row := core.Debt{
			UserID:  p.UserID,
			Minted:  number.FromInt(p.DscMinted),
			Version: 1,
		}

		return tx.Update().Create(&row).Error
	}

	update := tx.Update().Model(core.Debt{}).
		Where("user_id = ? AND version = ?", p.UserID, p.Version).
		Updates(map[string]interface{}{
			"minted":  number.FromInt(p.DscMinted),
			"version": p.Version + 1,
		})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func saveCollaterals(tx *db.DB, p *core.Position) error {
	for assetID, amount := range p.Collaterals {
		var row core.Collateral
		err := tx.Update().Where("user_id = ? AND asset_id = ?", p.UserID, assetID).First(&row).Error
		if store.IsErrNotFound(err) {
			row = core.Collateral{
				UserID:  p.UserID,
				AssetID: assetID,
				Amount:  number.FromInt(amount),
			}

			if err := tx.Update().Create(&row).Error; err != nil {
				return err
			}

			continue
		}

		if err != nil {
			return err
		}

		if err := tx.Update().Model(core.Collateral{}).
			Where("user_id = ? AND asset_id = ?", p.UserID, assetID).
			Updates(map[string]interface{}{
				"amount":  number.FromInt(amount),
				"version": gorm.Expr("version + 1"),
			}).Error; err != nil {
			return err
		}
	}

	return nil
}

func (s *positionStore) Users(ctx context.Context) ([]string, error) {
	var users []string
	if err := s.db.View().Model(core.Debt{}).Order("user_id").Pluck("user_id", &users).Error; err != nil {
		return nil, err
	}

	return users, nil
}
