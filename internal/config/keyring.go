package config

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const keyringService = "fandb"

// SavePassword stores a server password in the OS keyring. Callers treat a
// failure as non-fatal: the user simply retypes the password next time.
func SavePassword(s Server, password string) error {
	return keyring.Set(keyringService, s.credentialKey(), password)
}

// LoadPassword retrieves a cached password for a server profile. Returns an
// empty string without error when no password is cached.
func LoadPassword(s Server) (string, error) {
	password, err := keyring.Get(keyringService, s.credentialKey())
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return password, nil
}

// DeletePassword removes a cached password.
func DeletePassword(s Server) error {
	err := keyring.Delete(keyringService, s.credentialKey())
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
