// Package storage holds the client-side state of the contacts shell: the
// local preference file and access to the server's account registry.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// DefaultPreferencesFile is used when LocalPreferences.Path is empty.
const DefaultPreferencesFile = "preferences.json"

// LocalPreferences is a key-value preference store persisted as a JSON file.
// It is safe for concurrent use.
type LocalPreferences struct {
	Path string

	mu     sync.Mutex
	values map[string]string
}

// NewLocalPreferences returns a store backed by path. Call Load to read it.
func NewLocalPreferences(path string) *LocalPreferences {
	return &LocalPreferences{Path: path, values: make(map[string]string)}
}

func (p *LocalPreferences) path() string {
	if p.Path == "" {
		return DefaultPreferencesFile
	}
	return p.Path
}

// Load replaces the in-memory values with the file's content. A missing
// file yields an empty store.
func (p *LocalPreferences) Load() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.Open(p.path())
	if err != nil {
		if os.IsNotExist(err) {
			p.values = make(map[string]string)
			return nil
		}
		return err
	}
	defer f.Close()

	values := make(map[string]string)
	if err := json.NewDecoder(f).Decode(&values); err != nil {
		return fmt.Errorf("decode %s: %w", p.path(), err)
	}
	p.values = values
	return nil
}

// Save writes all values to the file.
func (p *LocalPreferences) Save() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saveLocked()
}

func (p *LocalPreferences) saveLocked() error {
	f, err := os.Create(p.path())
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(p.values)
}

// GetString returns the value for key, or defaultValue when it is not set.
func (p *LocalPreferences) GetString(_ context.Context, key, defaultValue string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.values[key]; ok {
		return v, nil
	}
	return defaultValue, nil
}

// SetString stores value under key and persists the file. An empty value
// removes the key.
func (p *LocalPreferences) SetString(_ context.Context, key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if value == "" {
		delete(p.values, key)
	} else {
		p.values[key] = value
	}
	return p.saveLocked()
}
