// Package credman persists the claim session cookie between runs.
package credman

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/warpdl/autoclaim/pkg/credman/keyring"
)

// ConfigDirEnv overrides the directory holding the fallback cookie file.
const ConfigDirEnv = "AUTOCLAIM_CONFIG_DIR"

// ErrNotFound is returned when neither store holds a cookie.
var ErrNotFound = keyring.ErrNotFound

// Store is a single place a cookie can be kept.
type Store interface {
	Name() string
	Get() (string, error)
	Set(value string) error
	Delete() error
}

// Manager reads from and writes to the primary store first and falls back
// to the secondary store when the primary one fails.
type Manager struct {
	primary  Store
	fallback Store
}

func NewManager(primary, fallback Store) *Manager {
	return &Manager{primary: primary, fallback: fallback}
}

// NewDefaultManager uses the OS keyring backed by a file under dir.
func NewDefaultManager(fsys afero.Fs, dir string) *Manager {
	return NewManager(keyring.NewKeyring(), keyring.NewFileStore(fsys, dir))
}

// DefaultDir returns $AUTOCLAIM_CONFIG_DIR or <user config dir>/autoclaim.
func DefaultDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return filepath.Abs(dir)
	}
	cdr, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cdr, "autoclaim"), nil
}

// Get returns the stored cookie and the name of the store that held it.
func (m *Manager) Get() (string, string, error) {
	v, err := m.primary.Get()
	if err == nil {
		return v, m.primary.Name(), nil
	}
	primaryErr := err
	v, err = m.fallback.Get()
	if err == nil {
		return v, m.fallback.Name(), nil
	}
	if errors.Is(primaryErr, ErrNotFound) && errors.Is(err, ErrNotFound) {
		return "", "", ErrNotFound
	}
	if errors.Is(err, ErrNotFound) {
		return "", "", fmt.Errorf("%s: %w", m.primary.Name(), primaryErr)
	}
	return "", "", fmt.Errorf("%s: %w", m.fallback.Name(), err)
}

// Set stores value and returns the name of the store that accepted it.
func (m *Manager) Set(value string) (string, error) {
	if value == "" {
		return "", errors.New("refusing to store an empty cookie")
	}
	primaryErr := m.primary.Set(value)
	if primaryErr == nil {
		return m.primary.Name(), nil
	}
	if err := m.fallback.Set(value); err != nil {
		return "", fmt.Errorf("%s: %v; %s: %w", m.primary.Name(), primaryErr, m.fallback.Name(), err)
	}
	return m.fallback.Name(), nil
}

// Delete removes the cookie from both stores. ErrNotFound is returned only
// when neither held one.
func (m *Manager) Delete() error {
	var removed bool
	for _, s := range []Store{m.primary, m.fallback} {
		err := s.Delete()
		switch {
		case err == nil:
			removed = true
		case errors.Is(err, ErrNotFound):
		default:
			if s == m.fallback {
				return fmt.Errorf("%s: %w", s.Name(), err)
			}
		}
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}
