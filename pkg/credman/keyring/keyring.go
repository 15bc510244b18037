// Package keyring stores the claim session cookie in the operating system's
// keyring, with a file based store for hosts that have none.
package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// ErrNotFound is returned when no cookie has been stored.
var ErrNotFound = errors.New("no stored cookie")

type Keyring struct {
	AppName string
	Field   string
}

var (
	keyringSet    = keyring.Set
	keyringGet    = keyring.Get
	keyringDelete = keyring.Delete
)

func NewKeyring() *Keyring {
	return &Keyring{
		AppName: "autoclaim",
		Field:   "cookie",
	}
}

func (k *Keyring) Name() string { return "keyring" }

func (k *Keyring) Get() (string, error) {
	v, err := keyringGet(k.AppName, k.Field)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (k *Keyring) Set(value string) error {
	return keyringSet(k.AppName, k.Field, value)
}

func (k *Keyring) Delete() error {
	err := keyringDelete(k.AppName, k.Field)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
