package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SeamusWaldron/scrambler"
	"github.com/SeamusWaldron/scrambler/internal/presetfile"
	"github.com/SeamusWaldron/scrambler/internal/state"
	"github.com/SeamusWaldron/scrambler/internal/storage"
)

// openState loads the state file from its default location.
func openState() (*state.File, error) {
	sf, err := state.OpenDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return sf, nil
}

// resolveDBPath picks the database path from the flag, the state file, or
// the default location, in that order.
func resolveDBPath(sf *state.File) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if sf != nil && sf.DBPath() != "" {
		return sf.DBPath(), nil
	}
	return storage.DefaultDBPath()
}

// openDB opens the history database.
func openDB(sf *state.File) (*storage.DB, error) {
	path, err := resolveDBPath(sf)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// loadRegistry returns the built-in presets plus those from --presets or
// the preset file remembered in the state file.
func loadRegistry(sf *state.File) (*presetfile.Registry, error) {
	path := presetPath
	if path == "" && sf != nil {
		path = sf.State().PresetFile
	}
	if path == "" {
		return presetfile.NewRegistry(), nil
	}

	presets, err := presetfile.Load(path)
	if err != nil {
		return nil, err
	}
	return presetfile.NewRegistry(presets...), nil
}

// strictMode resolves a mode name, failing for unknown names instead of
// falling back to the default preset.
func strictMode(reg *presetfile.Registry, name string) (scrambler.Config, error) {
	cfg, ok := reg.Lookup(scrambler.Mode(name))
	if !ok {
		return scrambler.Config{}, fmt.Errorf("%w: %q (available: %s)", scrambler.ErrUnknownMode, name, modeList(reg))
	}
	return cfg, nil
}

func modeList(reg *presetfile.Registry) string {
	modes := reg.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// defaultMode returns the last used mode if it is still registered,
// otherwise scrambler.DefaultMode.
func defaultMode(sf *state.File, reg *presetfile.Registry) string {
	if sf != nil {
		if m := sf.LastMode(); m != "" {
			if _, ok := reg.Lookup(scrambler.Mode(m)); ok {
				return m
			}
		}
	}
	return string(scrambler.DefaultMode)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
