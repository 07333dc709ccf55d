// Package config provides a reusable loader for cycle-ledger's deployment
// configuration files and environment variables. It is versioned so that
// applications can depend on a stable API contract.
//
// Version: v0.1.0
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"cycle-ledger/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the unified configuration for a cycle-ledger deployment. It
// mirrors the structure of the YAML files under config/.
type Config struct {
	Token struct {
		Name          string `mapstructure:"name" json:"name" yaml:"name"`
		Symbol        string `mapstructure:"symbol" json:"symbol" yaml:"symbol"`
		Decimals      int    `mapstructure:"decimals" json:"decimals" yaml:"decimals"`
		Logo          string `mapstructure:"logo" json:"logo" yaml:"logo"`
		InitialSupply string `mapstructure:"initial_supply" json:"initial_supply" yaml:"initial_supply"`
		Owner         string `mapstructure:"owner" json:"owner" yaml:"owner"`
		Fee           string `mapstructure:"fee" json:"fee" yaml:"fee"`
		FeeTo         string `mapstructure:"fee_to" json:"fee_to" yaml:"fee_to"`
		IsTestToken   bool   `mapstructure:"is_test_token" json:"is_test_token" yaml:"is_test_token"`
	} `mapstructure:"token" json:"token" yaml:"token"`

	Ledger struct {
		WALPath          string `mapstructure:"wal_path" json:"wal_path" yaml:"wal_path"`
		SnapshotPath     string `mapstructure:"snapshot_path" json:"snapshot_path" yaml:"snapshot_path"`
		ArchivePath      string `mapstructure:"archive_path" json:"archive_path" yaml:"archive_path"`
		SnapshotInterval int    `mapstructure:"snapshot_interval" json:"snapshot_interval" yaml:"snapshot_interval"`
		MaxHistory       uint64 `mapstructure:"max_history" json:"max_history" yaml:"max_history"`
		RemovalBatch     uint64 `mapstructure:"removal_batch" json:"removal_batch" yaml:"removal_batch"`
	} `mapstructure:"ledger" json:"ledger" yaml:"ledger"`

	Auction struct {
		PeriodSeconds uint64 `mapstructure:"period_seconds" json:"period_seconds" yaml:"period_seconds"`
		MinCycles     uint64 `mapstructure:"min_cycles" json:"min_cycles" yaml:"min_cycles"`
	} `mapstructure:"auction" json:"auction" yaml:"auction"`

	API struct {
		ListenAddr string `mapstructure:"listen_addr" json:"listen_addr" yaml:"listen_addr"`
	} `mapstructure:"api" json:"api" yaml:"api"`

	Logging struct {
		Level string `mapstructure:"level" json:"level" yaml:"level"`
		File  string `mapstructure:"file" json:"file" yaml:"file"`
	} `mapstructure:"logging" json:"logging" yaml:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment-specific
// overrides. The resulting configuration is stored in AppConfig and
// returned.
//
// The function uses the provided environment name to merge additional
// config files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // an env var named like the upper-cased key (e.g. TOKEN.NAME) overrides it; no prefix is set

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the CYCLE_LEDGER_ENV environment
// variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("CYCLE_LEDGER_ENV", ""))
}
