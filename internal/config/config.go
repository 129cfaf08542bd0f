package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type RenderConfig struct {
	AutoImpls    bool   `mapstructure:"auto_impls"`
	PrivateItems bool   `mapstructure:"private_items"`
	RustfmtPath  string `mapstructure:"rustfmt_path"`
	Edition      string `mapstructure:"edition"`
	NoFormat     bool   `mapstructure:"no_format"`
}

type FetchConfig struct {
	CacheDir       string `mapstructure:"cache_dir"`
	NoCache        bool   `mapstructure:"no_cache"`
	Offline        bool   `mapstructure:"offline"`
	Toolchain      string `mapstructure:"toolchain"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Config struct {
	Render RenderConfig `mapstructure:"render"`
	Fetch  FetchConfig  `mapstructure:"fetch"`
}

// cacheBase returns the base cache directory. Checks XDG_CACHE_HOME, then
// ~/.cache, then the system temp dir as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "rskel")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "rskel")
	}
	return filepath.Join(os.TempDir(), "rskel")
}

// JSONCacheDir returns the directory holding cached rustdoc JSON.
func JSONCacheDir() string {
	return filepath.Join(cacheBase(), "json")
}

func InitializeViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "rskel"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "rskel"))
	}

	viper.SetDefault("render.edition", "2021")
	viper.SetDefault("fetch.toolchain", "nightly")
	viper.SetDefault("fetch.timeout_seconds", 300)

	viper.SetEnvPrefix("RSKEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func Load() (*Config, error) {
	if err := InitializeViper(); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Fetch.CacheDir == "" {
		config.Fetch.CacheDir = JSONCacheDir()
	}

	return &config, nil
}
