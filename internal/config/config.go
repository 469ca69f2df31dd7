// ABOUTME: Tool configuration from config.yaml and FITTRACK_* env vars.
// ABOUTME: Viper-backed with sensible defaults; a missing file is fine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mohammad0234/Fitness-Tracker-App-sub003/internal/storage"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "FITTRACK"
)

// Config stores fittrack settings.
type Config struct {
	// DataDir is the root directory for data storage. The SQLite file
	// lives here. Supports ~ expansion; defaults to the XDG data dir.
	DataDir string `mapstructure:"data_dir"`

	Logging     Logging     `mapstructure:"logging"`
	Maintenance Maintenance `mapstructure:"maintenance"`
}

// Logging selects the level and format of the process logger.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Maintenance configures the daily goal sweep.
type Maintenance struct {
	// Schedule is a cron expression. The default runs at 03:00 local.
	Schedule string `mapstructure:"schedule"`
}

// Dir returns the config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fittrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fittrack")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), configFileExt())
}

func configFileExt() string {
	return configFileName + "." + configFileType
}

// Load reads configuration from disk and the environment. A missing
// config.yaml is not an error: defaults stand and FITTRACK_* variables
// still override them.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", storage.DataDir())
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("maintenance.schedule", "0 3 * * *")

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(Dir())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.DataDir = ExpandPath(cfg.DataDir)
	return &cfg, nil
}

// DBPath returns the SQLite database location under the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "fittrack.db")
}

// OpenStore opens the SQLite store at the configured location.
func (c *Config) OpenStore(log *zap.Logger) (*storage.Store, error) {
	return storage.Open(c.DBPath(), log)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
