package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config dsc config
type Config struct {
	App         App           `json:"app"`
	DB          db.Config     `json:"db"`
	PriceFeed   PriceFeedConf `json:"price_feed"`
	Collaterals []AssetConf   `json:"collaterals"`
	Genesis     []Genesis     `json:"genesis"`
	Admins      []string      `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	if len(c.Admins) <= 0 {
		return false
	}

	for _, a := range c.Admins {
		if a == userID {
			return true
		}
	}

	return false
}

// App app config
type App struct {
	// Self engine account, custodian of the collateral and mint authority of DSC
	Self      string `json:"self"`
	DscSymbol string `json:"dsc_symbol"`
	JWTSecret string `json:"jwt_secret"`
}

// PriceFeedConf price feed worker config
type PriceFeedConf struct {
	EndPoint string `json:"end_point"`
	// Interval seconds between two pulls
	Interval int64 `json:"interval"`
}

// Period pull interval
func (c PriceFeedConf) Period() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

// AssetConf collateral asset config, Price seeds the feed when it has no price yet
type AssetConf struct {
	AssetID string          `json:"asset_id"`
	Symbol  string          `json:"symbol"`
	FeedID  string          `json:"feed_id"`
	Price   decimal.Decimal `json:"price"`
}

// Genesis initial collateral balance credited on the in-process ledgers
type Genesis struct {
	Account string          `json:"account"`
	AssetID string          `json:"asset_id"`
	Amount  decimal.Decimal `json:"amount"`
}
