package scrambler

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Modifier is the suffix appended to a move symbol.
type Modifier string

const (
	Blank  Modifier = ""  // Quarter turn, no suffix
	Prime  Modifier = "'" // Counter-clockwise quarter turn
	Double Modifier = "2" // Half turn
)

// StandardModifiers is the modifier set used by the built-in presets.
var StandardModifiers = []Modifier{Blank, Prime, Double}

// Config describes how a scramble is generated: how many moves, which move
// symbols may be drawn and which modifiers may follow them.
//
// A Config is a value; NewConfig copies the slices it is given and the
// accessors return copies, so a Config cannot be changed after construction.
type Config struct {
	length    int
	moveset   []string
	modifiers []Modifier
}

// NewConfig builds a Config. It returns an error wrapping ErrInvalidConfig
// when length is not positive, the moveset or modifier set is empty, or a
// move symbol is the empty string.
func NewConfig(length int, moveset []string, modifiers []Modifier) (Config, error) {
	if length <= 0 {
		return Config{}, fmt.Errorf("%w: length must be positive, got %d", ErrInvalidConfig, length)
	}
	if len(moveset) == 0 {
		return Config{}, fmt.Errorf("%w: empty moveset", ErrInvalidConfig)
	}
	if len(modifiers) == 0 {
		return Config{}, fmt.Errorf("%w: empty modifier set", ErrInvalidConfig)
	}
	for i, s := range moveset {
		if s == "" {
			return Config{}, fmt.Errorf("%w: empty move symbol at index %d", ErrInvalidConfig, i)
		}
	}

	return Config{
		length:    length,
		moveset:   append([]string(nil), moveset...),
		modifiers: append([]Modifier(nil), modifiers...),
	}, nil
}

// MustConfig is like NewConfig but panics on error. Intended for
// package-level preset tables.
func MustConfig(length int, moveset []string, modifiers []Modifier) Config {
	c, err := NewConfig(length, moveset, modifiers)
	if err != nil {
		panic(err)
	}
	return c
}

// Length returns the number of moves in a generated scramble.
func (c Config) Length() int { return c.length }

// Moveset returns a copy of the move symbols.
func (c Config) Moveset() []string { return append([]string(nil), c.moveset...) }

// Modifiers returns a copy of the modifier set.
func (c Config) Modifiers() []Modifier { return append([]Modifier(nil), c.modifiers...) }

// IsZero reports whether c is the zero Config, which NewConfig never returns.
func (c Config) IsZero() bool {
	return c.length == 0 && len(c.moveset) == 0 && len(c.modifiers) == 0
}

// DistinctMoves returns the number of unique symbols in the moveset.
// Duplicates are allowed and only weight the draw.
func (c Config) DistinctMoves() int {
	seen := make(map[string]struct{}, len(c.moveset))
	for _, s := range c.moveset {
		seen[s] = struct{}{}
	}
	return len(seen)
}

// Validate reports whether a scramble can be generated from c. It returns
// ErrInvalidConfig for a zero Config and ErrUnsatisfiableConstraint when the
// moveset is too small for the requested length.
//
// Each position must differ from the two before it, so a scramble longer
// than one move needs two distinct symbols and one longer than two moves
// needs three.
func (c Config) Validate() error {
	if c.IsZero() {
		return fmt.Errorf("%w: zero config", ErrInvalidConfig)
	}

	distinct := c.DistinctMoves()
	switch {
	case c.length > 1 && distinct < 2:
		return fmt.Errorf("%w: %d distinct move(s) for length %d", ErrUnsatisfiableConstraint, distinct, c.length)
	case c.length > 2 && distinct < 3:
		return fmt.Errorf("%w: %d distinct moves for length %d, need at least 3", ErrUnsatisfiableConstraint, distinct, c.length)
	}
	return nil
}

// String returns a short human-readable description.
// Example: len=20 moves=[U D R L F B] mods=[_ ' 2]
func (c Config) String() string {
	mods := make([]string, len(c.modifiers))
	for i, m := range c.modifiers {
		if m == Blank {
			mods[i] = "_"
		} else {
			mods[i] = string(m)
		}
	}
	return fmt.Sprintf("len=%d moves=[%s] mods=[%s]",
		c.length, strings.Join(c.moveset, " "), strings.Join(mods, " "))
}

// ParseMoveset splits a moveset description into symbols.
// "U,D,R" and "U D R" split on the separators; "URF" with no separator is
// read as one symbol per character.
func ParseMoveset(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.ContainsAny(s, ", \t") {
		return strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
	}

	moves := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		moves = append(moves, string(r))
	}
	return moves
}

// ParseModifiers reads a modifier string where every character is one
// modifier and a space stands for Blank.
// Example: " '2" -> [Blank, Prime, Double]
func ParseModifiers(s string) []Modifier {
	mods := make([]Modifier, 0, len(s))
	for _, r := range s {
		if r == ' ' {
			mods = append(mods, Blank)
			continue
		}
		mods = append(mods, Modifier(r))
	}
	return mods
}
