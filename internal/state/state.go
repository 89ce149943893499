// Package state persists small CLI preferences between runs.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppState represents the persistent application state.
type AppState struct {
	DBPath       string `json:"db_path,omitempty"`
	LastMode     string `json:"last_mode,omitempty"`
	LastScramble string `json:"last_scramble_id,omitempty"`
	PresetFile   string `json:"preset_file,omitempty"`
}

// File manages the application state file.
type File struct {
	path  string
	state AppState
}

// DefaultPath returns ~/.scrambler/state.json. Save creates the directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".scrambler", "state.json"), nil
}

// Open loads the state file at path. A missing file yields empty state.
func Open(path string) (*File, error) {
	f := &File{path: path}

	if err := f.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return f, nil
}

// OpenDefault loads the state file at the default path.
func OpenDefault() (*File, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Load loads the state from disk.
func (f *File) Load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &f.state); err != nil {
		return fmt.Errorf("failed to parse state file %s: %w", f.path, err)
	}
	return nil
}

// Save saves the state to disk.
func (f *File) Save() error {
	data, err := json.MarshalIndent(f.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// Path returns the state file path.
func (f *File) Path() string {
	return f.path
}

// State returns the current state.
func (f *File) State() AppState {
	return f.state
}

// SetDBPath sets the database path.
func (f *File) SetDBPath(path string) error {
	f.state.DBPath = path
	return f.Save()
}

// SetLastMode records the mode of the most recent generation.
func (f *File) SetLastMode(mode string) error {
	f.state.LastMode = mode
	return f.Save()
}

// SetLastScramble records the ID of the most recently saved scramble.
func (f *File) SetLastScramble(id string) error {
	f.state.LastScramble = id
	return f.Save()
}

// SetPresetFile records the preset file to load by default.
func (f *File) SetPresetFile(path string) error {
	f.state.PresetFile = path
	return f.Save()
}

// LastMode returns the last used mode, or "" if none.
func (f *File) LastMode() string {
	return f.state.LastMode
}

// DBPath returns the database path.
func (f *File) DBPath() string {
	return f.state.DBPath
}
