package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/trendspot/pkg/pipeline"
)

// Config holds user-level defaults loaded from the config file.
// Flags override config values, config values override built-in defaults.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
}

// AnalysisConfig sets default ranking behavior.
type AnalysisConfig struct {
	Metric      string  `toml:"metric"`
	TopFraction float64 `toml:"top_fraction"`
}

// CacheConfig selects the cache backend. With RedisAddr empty, a file
// cache in the XDG cache directory is used.
type CacheConfig struct {
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ServerConfig sets defaults for the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Analysis: AnalysisConfig{
			Metric:      pipeline.DefaultMetric,
			TopFraction: pipeline.DefaultTopFraction,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads the TOML config at path. An empty path resolves to the
// XDG config location (~/.config/trendspot/config.toml). A missing file is
// not an error; the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// configPath returns the config file location using XDG standard.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
