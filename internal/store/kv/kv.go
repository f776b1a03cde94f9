// Package kv provides the named string slots the task list is persisted in.
package kv

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidKey is returned for keys that cannot name a slot.
	ErrInvalidKey = errors.New("invalid storage key")
	// ErrLockTimeout is returned when a slot lock cannot be taken in time.
	ErrLockTimeout = errors.New("storage lock timeout")
)

// Storage gets and sets strings by key.
type Storage interface {
	// GetItem returns the value stored under key; ok is false when the slot is empty.
	GetItem(key string) (value string, ok bool, err error)
	// SetItem overwrites the slot under key.
	SetItem(key, value string) error
}

// ValidateKey rejects keys that would escape or collide with the slot layout.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case strings.ContainsAny(key, `/\`), strings.Contains(key, ".."):
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Memory is a map-backed Storage.
type Memory struct {
	slots map[string]string
}

func NewMemory() *Memory { return &Memory{slots: map[string]string{}} }

func (m *Memory) GetItem(key string) (string, bool, error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *Memory) SetItem(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.slots[key] = value
	return nil
}
