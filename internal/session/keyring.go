package session

import (
	"encoding/json"
	"fmt"

	"github.com/99designs/keyring"

	"github.com/minhvu/garage-tasks/internal/model"
)

const (
	serviceName = "garage-tasks"
	tokenKey    = "token"
	userKey     = "user"
)

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/garage-tasks/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("garage-tasks-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Save persists the session (bearer token and user record) to the system
// keyring so a restarted client resumes without logging in again.
func Save(s *Session) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	userJSON, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encoding session user: %w", err)
	}

	if err := ring.Set(keyring.Item{Key: tokenKey, Data: []byte(s.Token)}); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	if err := ring.Set(keyring.Item{Key: userKey, Data: userJSON}); err != nil {
		return fmt.Errorf("storing session user: %w", err)
	}

	return nil
}

// Load restores a previously saved session from the system keyring.
// The stored role is re-normalized in case it was written by an older
// client.
func Load() (*Session, error) {
	ring, err := openKeyring()
	if err != nil {
		return nil, err
	}

	tokenItem, err := ring.Get(tokenKey)
	if err != nil {
		return nil, fmt.Errorf("no saved session: %w", err)
	}
	userItem, err := ring.Get(userKey)
	if err != nil {
		return nil, fmt.Errorf("no saved session user: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(userItem.Data, &user); err != nil {
		return nil, fmt.Errorf("decoding session user: %w", err)
	}

	return NewSession(user, string(tokenItem.Data))
}

// Clear removes any saved session from the system keyring. Clearing an
// absent session is not an error.
func Clear() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	for _, key := range []string{tokenKey, userKey} {
		if err := ring.Remove(key); err != nil && err != keyring.ErrKeyNotFound {
			return fmt.Errorf("removing %s: %w", key, err)
		}
	}

	return nil
}
