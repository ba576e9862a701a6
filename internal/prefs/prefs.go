// Package prefs persists client display preferences in a YAML file.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the preferences file inside the config directory.
const FileName = "prefs.yaml"

// Preferences are the persisted client preferences.
type Preferences struct {
	DarkMode bool `yaml:"dark_mode"`
}

// Default returns the preferences used when no file exists.
func Default() *Preferences {
	return &Preferences{DarkMode: false}
}

// DefaultPath returns $XDG_CONFIG_HOME/kanban/prefs.yaml, falling back to the
// platform user config directory.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve config directory: %w", err)
		}
	}
	return filepath.Join(dir, "kanban", FileName), nil
}

// Load reads preferences from path. A missing file yields defaults.
func Load(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read preferences: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse preferences: %w", err)
	}
	return p, nil
}

// Save writes preferences to path, creating its directory.
func (p *Preferences) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}

// ToggleDarkMode flips the dark-mode flag and returns the new value.
func (p *Preferences) ToggleDarkMode() bool {
	p.DarkMode = !p.DarkMode
	return p.DarkMode
}
