package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

const preferencesPrefix = "weather-units:"

// Preferences stores one client's unit preference map as a single JSON blob.
type Preferences struct {
	store Store
	key   string
}

// NewPreferences binds the blob of client to s.
func NewPreferences(s Store, client string) *Preferences {
	return &Preferences{store: s, key: preferencesPrefix + client}
}

// LoadPreferences returns the stored map, or an empty one if nothing was saved.
func (p *Preferences) LoadPreferences() (map[string]string, error) {
	data, err := p.store.Get(p.key)
	if errors.Is(err, ErrNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var prefs map[string]string
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences %s: %w", p.key, err)
	}
	return prefs, nil
}

// SavePreferences replaces the stored map.
func (p *Preferences) SavePreferences(prefs map[string]string) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return p.store.Put(p.key, data)
}

// Forget removes the stored map.
func (p *Preferences) Forget() error {
	return p.store.Delete(p.key)
}
