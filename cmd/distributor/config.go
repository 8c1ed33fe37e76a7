package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/Taraxa-project/taraxa-distributor/taraxa/logger"
	"github.com/Taraxa-project/taraxa-distributor/taraxa/state/state_db"
)

const env_prefix = "DISTRIBUTOR"

type Config struct {
	DB  state_db.Opts `mapstructure:"db"`
	Log logger.Opts   `mapstructure:"log"`
	// Chain config json, applied to an empty database only
	Genesis string `mapstructure:"genesis"`
}

// Reads the config file, if any, and the DISTRIBUTOR_ prefixed environment on top of it,
// e.g. DISTRIBUTOR_DB_PATH overrides db.path
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(env_prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Env overrides are only picked up for known keys
	v.SetDefault("db.path", "")
	v.SetDefault("db.in_memory", false)
	v.SetDefault("db.cache", 16)
	v.SetDefault("db.handles", 64)
	v.SetDefault("db.cache_entries", state_db.DefaultCacheEntries)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("genesis", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
