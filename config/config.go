package config

import (
	"fmt"
	"strings"

	"dsc/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file, env variables prefixed with DSC override it
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("DSC")
	if configFile != "" {
		if err := configUtil.LoadYaml(configFile, config); err != nil {
			return err
		}
	}

	defaultConfig(config)
	return validate(config)
}

// validate asset ids name the token ledgers, none may clash with the dsc ledger
func validate(config *core.Config) error {
	for _, c := range config.Collaterals {
		if strings.EqualFold(c.AssetID, config.App.DscSymbol) {
			return fmt.Errorf("config: collateral %s clashes with the dsc symbol", c.AssetID)
		}
	}

	return nil
}

func defaultConfig(config *core.Config) {
	if config.App.Self == "" {
		config.App.Self = "dsc-engine"
	}

	if config.App.DscSymbol == "" {
		config.App.DscSymbol = "DSC"
	}

	if config.PriceFeed.Interval <= 0 {
		config.PriceFeed.Interval = 30
	}

	for idx := range config.Collaterals {
		c := &config.Collaterals[idx]
		if c.FeedID == "" {
			c.FeedID = c.AssetID
		}
	}
}
