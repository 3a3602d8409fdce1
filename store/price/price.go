package price

import (
	"context"

	"dsc/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.PriceStore {
	return &priceStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})

		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Create(ctx context.Context, price *core.Price) error {
	return s.db.Update().Create(price).Error
}

func (s *priceStore) Latest(ctx context.Context, feedID string) (*core.Price, bool, error) {
	var price core.Price
	err := s.db.View().Where("feed_id = ?", feedID).Order("id DESC").First(&price).Error
	if store.IsErrNotFound(err) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	return &price, true, nil
}
