package config

import (
	"fmt"
	"strconv"

	"github.com/franvera/fandb/internal/database"
)

// Config represents the application configuration.
type Config struct {
	Servers     []Server    `mapstructure:"servers" yaml:"servers"`
	Preferences Preferences `mapstructure:"preferences" yaml:"preferences"`
}

// Server represents a saved server profile. Passwords are never written to
// the config file; they live in the OS keyring.
type Server struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	SSLMode  string `mapstructure:"sslmode" yaml:"sslmode"`
}

// Preferences holds user preferences, including the last-login cache.
type Preferences struct {
	DefaultServer string `mapstructure:"default_server" yaml:"default_server"`
	LastServer    string `mapstructure:"last_server" yaml:"last_server"`
	LastUsername  string `mapstructure:"last_username" yaml:"last_username"`
}

// Target builds a connection target from the profile and a password.
func (s Server) Target(password string) database.Target {
	return database.Target{
		Host:     s.Host,
		Port:     s.Port,
		Username: s.Username,
		Password: password,
		SSLMode:  s.SSLMode,
	}
}

// Addr returns the host:port form of the server.
func (s Server) Addr() string {
	if s.Port <= 0 {
		return s.Host
	}
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// DisplayString returns a human-readable summary of the profile.
func (s Server) DisplayString() string {
	out := s.Addr()
	if s.Username != "" {
		out = s.Username + "@" + out
	}
	return out
}

// credentialKey identifies the profile's password in the OS keyring.
func (s Server) credentialKey() string {
	return fmt.Sprintf("%s@%s", s.Username, s.Addr())
}

// HasServer checks if a profile with the given name already exists.
func (cfg *Config) HasServer(name string) bool {
	for _, s := range cfg.Servers {
		if s.Name == name {
			return true
		}
	}
	return false
}

// AddServer appends a profile if it doesn't already exist.
func (cfg *Config) AddServer(s Server) {
	if !cfg.HasServer(s.Name) {
		cfg.Servers = append(cfg.Servers, s)
	}
}

// LastLogin returns a profile matching the last-login cache, falling back to
// the default server, then the first saved profile. Returns nil when nothing
// is cached.
func (cfg *Config) LastLogin() *Server {
	if cfg.Preferences.LastServer != "" {
		for i := range cfg.Servers {
			if cfg.Servers[i].Name == cfg.Preferences.LastServer {
				return &cfg.Servers[i]
			}
		}
	}
	if cfg.Preferences.DefaultServer != "" {
		for i := range cfg.Servers {
			if cfg.Servers[i].Name == cfg.Preferences.DefaultServer {
				return &cfg.Servers[i]
			}
		}
	}
	if len(cfg.Servers) > 0 {
		return &cfg.Servers[0]
	}
	return nil
}
