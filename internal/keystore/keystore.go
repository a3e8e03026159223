// Package keystore persists the board's read-write key in the OS keychain
// (macOS Keychain, Windows Credential Manager, Linux Secret Service).
// It is the last stop of the credential resolution order: flag, environment,
// config file, keychain.
package keystore

import (
	"errors"

	"github.com/zalando/go-keyring"

	"github.com/veloboard/flapship/internal/domain"
)

const (
	serviceName     = "flapship"
	keychainAccount = "read-write-key"
)

// Save persists the read-write key to the keychain.
func Save(key string) error {
	return keyring.Set(serviceName, keychainAccount, key)
}

// Load retrieves the stored read-write key from the keychain.
// Returns domain.ErrNoCredential if no key is stored.
func Load() (string, error) {
	secret, err := keyring.Get(serviceName, keychainAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", domain.ErrNoCredential
		}
		return "", err
	}
	return secret, nil
}

// Delete removes the stored read-write key from the keychain.
// Returns domain.ErrNoCredential if no key is stored.
func Delete() error {
	err := keyring.Delete(serviceName, keychainAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return domain.ErrNoCredential
		}
		return err
	}
	return nil
}
