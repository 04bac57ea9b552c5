// Package config loads the engine's self-trade-prevention policy and log
// level from a YAML file, with MATCHCORE_-prefixed environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"matchcore/matching"
)

// EngineConfig is the top-level configuration, mapping directly to the
// YAML file structure.
type EngineConfig struct {
	SelfTrade struct {
		Enable bool   `mapstructure:"enable"`
		Policy string `mapstructure:"policy"`
	} `mapstructure:"self_trade"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
}

// Load reads engine configuration from a YAML file at path, with
// MATCHCORE_SELF_TRADE_ENABLE-style env var overrides.
func Load(path string) (*EngineConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("MATCHCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("self_trade.enable", false)
	v.SetDefault("self_trade.policy", "cancel_passive")
	v.SetDefault("logging.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg EngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// STPConfig converts the loaded policy name into the engine's config type.
func (c *EngineConfig) STPConfig() (matching.STPConfig, error) {
	if !c.SelfTrade.Enable {
		return matching.STPConfig{}, nil
	}
	switch strings.ToLower(c.SelfTrade.Policy) {
	case "cancel_passive", "":
		return matching.STPConfig{Enable: true, Policy: matching.CancelPassive}, nil
	case "cancel_active":
		return matching.STPConfig{Enable: true, Policy: matching.CancelActive}, nil
	case "cancel_both":
		return matching.STPConfig{Enable: true, Policy: matching.CancelBoth}, nil
	default:
		return matching.STPConfig{}, fmt.Errorf("unknown self_trade.policy %q", c.SelfTrade.Policy)
	}
}
