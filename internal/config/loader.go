package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

const (
	configDir  = ".fandb"
	configFile = "config"
	configType = "yaml"
)

// Load reads the configuration from ~/.fandb/config.yaml.
// Returns an empty config if the file does not exist.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("config dir: %w", err)
	}

	viper.SetConfigName(configFile)
	viper.SetConfigType(configType)
	viper.AddConfigPath(dir)

	cfg := &Config{}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to ~/.fandb/config.yaml.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return fmt.Errorf("config dir: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	viper.Set("servers", cfg.Servers)
	viper.Set("preferences", cfg.Preferences)

	path := filepath.Join(dir, configFile+"."+configType)
	return viper.WriteConfigAs(path)
}

// SaveLastLogin records a successful login: the server profile is upserted
// and the last-login cache updated. The password is not persisted here.
func SaveLastLogin(cfg *Config, server Server) error {
	if server.Name == "" {
		server.Name = "postgres-" + server.Host + "-" + strconv.Itoa(server.Port)
	}
	cfg.AddServer(server)
	cfg.Preferences.LastServer = server.Name
	cfg.Preferences.LastUsername = server.Username
	return Save(cfg)
}

// Dir returns the fandb configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDir), nil
}
