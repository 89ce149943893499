package scrambler

import (
	"fmt"
	"sort"
	"strings"
)

// Move is one step of a scramble: a move symbol and the modifier that follows it.
type Move struct {
	Symbol   string   // Face or axis, e.g. "U"
	Modifier Modifier // Turn suffix, Blank for a plain quarter turn
}

// Notation returns the move in standard notation.
// Examples: U, R', F2
func (m Move) Notation() string {
	return m.Symbol + string(m.Modifier)
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Scramble is an ordered sequence of moves.
type Scramble []Move

// Render formats a scramble as space-separated notation with no leading or
// trailing whitespace. An empty scramble renders as "".
func Render(s Scramble) string {
	if len(s) == 0 {
		return ""
	}

	parts := make([]string, len(s))
	for i, m := range s {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// String renders the scramble (alias for Render).
func (s Scramble) String() string {
	return Render(s)
}

// Symbols returns the move symbols of the scramble in order.
func (s Scramble) Symbols() []string {
	out := make([]string, len(s))
	for i, m := range s {
		out[i] = m.Symbol
	}
	return out
}

// CheckAdjacency returns an error wrapping ErrAdjacencyViolation for the
// first move whose symbol equals the symbol one or two positions earlier.
func CheckAdjacency(s Scramble) error {
	for i := range s {
		if i >= 1 && s[i].Symbol == s[i-1].Symbol {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrAdjacencyViolation, s[i].Symbol, i-1, i)
		}
		if i >= 2 && s[i].Symbol == s[i-2].Symbol {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrAdjacencyViolation, s[i].Symbol, i-2, i)
		}
	}
	return nil
}

// Valid reports whether the scramble satisfies the adjacency rule.
func (s Scramble) Valid() bool {
	return CheckAdjacency(s) == nil
}

// Parse reads scramble text produced for cfg. Each whitespace-separated
// token must be a moveset symbol followed by one of cfg's modifiers.
// Symbols are matched longest first so "Rw'" is not read as "R" + "w'".
func Parse(text string, cfg Config) (Scramble, error) {
	symbols := sortedByLength(cfg.moveset)
	mods := make(map[Modifier]bool, len(cfg.modifiers))
	for _, m := range cfg.modifiers {
		mods[m] = true
	}

	fields := strings.Fields(text)
	moves := make(Scramble, 0, len(fields))
	for i, tok := range fields {
		move, ok := parseToken(tok, symbols, mods)
		if !ok {
			return nil, fmt.Errorf("%w: token %d %q", ErrInvalidNotation, i, tok)
		}
		moves = append(moves, move)
	}

	return moves, nil
}

func parseToken(tok string, symbols []string, mods map[Modifier]bool) (Move, bool) {
	for _, sym := range symbols {
		if !strings.HasPrefix(tok, sym) {
			continue
		}
		mod := Modifier(tok[len(sym):])
		if mods[mod] {
			return Move{Symbol: sym, Modifier: mod}, true
		}
	}
	return Move{}, false
}

func sortedByLength(moveset []string) []string {
	out := append([]string(nil), moveset...)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}
