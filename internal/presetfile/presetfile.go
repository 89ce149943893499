// Package presetfile loads user-defined scramble presets from YAML and
// combines them with the built-in presets.
//
// File format:
//
//	presets:
//	  - name: 4x4
//	    length: 40
//	    moveset: [U, D, R, L, F, B, Uw, Rw, Fw]
//	    modifiers: ["", "'", "2"]
//	  - name: pyraminx
//	    length: 11
//	    moveset: URLB
//	    modifiers: " '"
//
// moveset and modifiers accept either a list or a compact string
// (see scrambler.ParseMoveset and scrambler.ParseModifiers).
package presetfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/scrambler"
)

// ErrDuplicatePreset is returned when a file names the same preset twice.
var ErrDuplicatePreset = errors.New("presetfile: duplicate preset name")

// Entry is one preset as written in the file.
type Entry struct {
	Name      string  `yaml:"name"`
	Length    int     `yaml:"length"`
	Moveset   symbols `yaml:"moveset"`
	Modifiers symbols `yaml:"modifiers"`
}

type document struct {
	Presets []Entry `yaml:"presets"`
}

// symbols decodes either a YAML sequence of strings or a compact scalar.
type symbols struct {
	list    []string
	compact *string
}

func (s *symbols) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		return node.Decode(&s.list)
	case yaml.ScalarNode:
		var v string
		if err := node.Decode(&v); err != nil {
			return err
		}
		s.compact = &v
		return nil
	default:
		return fmt.Errorf("line %d: expected a list or a string", node.Line)
	}
}

func (s symbols) moves() []string {
	if s.compact != nil {
		return scrambler.ParseMoveset(*s.compact)
	}
	return s.list
}

func (s symbols) modifiers() []scrambler.Modifier {
	if s.compact != nil {
		return scrambler.ParseModifiers(*s.compact)
	}
	mods := make([]scrambler.Modifier, len(s.list))
	for i, m := range s.list {
		mods[i] = scrambler.Modifier(m)
	}
	return mods
}

// Preset is a validated named configuration.
type Preset struct {
	Mode   scrambler.Mode
	Config scrambler.Config
}

// Parse decodes and validates presets from r.
func Parse(r io.Reader) ([]Preset, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode presets: %w", err)
	}

	seen := make(map[string]bool, len(doc.Presets))
	out := make([]Preset, 0, len(doc.Presets))
	for i, e := range doc.Presets {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("preset %d: missing name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePreset, name)
		}
		seen[name] = true

		cfg, err := scrambler.NewConfig(e.Length, e.Moveset.moves(), e.Modifiers.modifiers())
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}

		out = append(out, Preset{Mode: scrambler.Mode(name), Config: cfg})
	}

	return out, nil
}

// Load reads presets from the YAML file at path.
func Load(path string) ([]Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preset file: %w", err)
	}
	defer f.Close()

	presets, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return presets, nil
}

// Registry resolves modes against the built-in presets plus any loaded
// from files. File presets may shadow built-ins of the same name.
type Registry struct {
	extra map[scrambler.Mode]scrambler.Config
	order []scrambler.Mode
}

// NewRegistry creates a registry holding the built-in presets and extra.
func NewRegistry(extra ...Preset) *Registry {
	r := &Registry{
		extra: make(map[scrambler.Mode]scrambler.Config, len(extra)),
		order: scrambler.Modes(),
	}
	for _, p := range extra {
		if _, builtin := scrambler.LookupPreset(p.Mode); !builtin {
			if _, dup := r.extra[p.Mode]; !dup {
				r.order = append(r.order, p.Mode)
			}
		}
		r.extra[p.Mode] = p.Config
	}
	return r
}

// Lookup returns the configuration for mode and whether it is known.
func (r *Registry) Lookup(mode scrambler.Mode) (scrambler.Config, bool) {
	if c, ok := r.extra[mode]; ok {
		return c, true
	}
	return scrambler.LookupPreset(mode)
}

// Resolve returns the configuration for mode, falling back to
// scrambler.DefaultMode for unknown modes like scrambler.Preset does.
func (r *Registry) Resolve(mode scrambler.Mode) scrambler.Config {
	if c, ok := r.Lookup(mode); ok {
		return c
	}
	return scrambler.Preset(mode)
}

// Modes returns every known mode, built-ins first.
func (r *Registry) Modes() []scrambler.Mode {
	return append([]scrambler.Mode(nil), r.order...)
}

// IsCustom reports whether mode comes from a preset file.
func (r *Registry) IsCustom(mode scrambler.Mode) bool {
	_, ok := r.extra[mode]
	return ok
}
