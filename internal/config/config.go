package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

const EnvPrefix = "RANGESET"

type Config struct {
	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`
	// Echo prints the set after every add and remove, not only on print.
	Echo bool `mapstructure:"echo"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("echo", false)
}

// Load reads the configuration from configPath, or from .rangeset.yaml in
// the working or home directory when configPath is empty. A missing default
// file is not an error. RANGESET_* environment variables and flags bound to
// v take precedence over the file.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".rangeset")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
