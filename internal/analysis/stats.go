// Package analysis computes distribution statistics over batches of
// generated scrambles.
package analysis

import (
	"sort"
	"strings"

	"github.com/SeamusWaldron/scrambler"
)

// Count is one observed value and how often it occurred.
type Count struct {
	Value    string  `json:"value"`
	Count    int     `json:"count"`
	Share    float64 `json:"share"`    // Observed fraction
	Expected float64 `json:"expected"` // Fraction by moveset/modifier weight
}

// NGram is a repeated run of consecutive move symbols.
type NGram struct {
	N        int      `json:"n"`
	Sequence []string `json:"sequence"`
	Count    int      `json:"count"`
}

// Report summarises a batch of scrambles.
type Report struct {
	Scrambles      int     `json:"scrambles"`
	Moves          int     `json:"moves"`
	Symbols        []Count `json:"symbols"`
	FirstSymbols   []Count `json:"first_symbols"`
	Modifiers      []Count `json:"modifiers"`
	AxisRepeats    int     `json:"axis_repeats"`    // Consecutive opposite-face pairs, e.g. U D
	AdjacencyFails int     `json:"adjacency_fails"` // Scrambles breaking the repeat rule
	SymbolSkew     float64 `json:"symbol_skew"`     // MaxDeviation of Symbols
	ModifierSkew   float64 `json:"modifier_skew"`   // MaxDeviation of Modifiers
	TopNGrams      []NGram `json:"top_ngrams,omitempty"`
}

// oppositeFace pairs the standard cube faces.
var oppositeFace = map[string]string{
	"U": "D", "D": "U",
	"R": "L", "L": "R",
	"F": "B", "B": "F",
}

// Analyze builds a Report for batch generated from cfg. topN bounds the
// number of bigrams and trigrams reported.
func Analyze(cfg scrambler.Config, batch []scrambler.Scramble, topN int) Report {
	r := Report{Scrambles: len(batch)}

	symbols := make(map[string]int)
	first := make(map[string]int)
	mods := make(map[string]int)

	for _, s := range batch {
		r.Moves += len(s)
		if !s.Valid() {
			r.AdjacencyFails++
		}
		for i, m := range s {
			symbols[m.Symbol]++
			mods[string(m.Modifier)]++
			if i == 0 {
				first[m.Symbol]++
			}
			if i > 0 && oppositeFace[s[i-1].Symbol] == m.Symbol {
				r.AxisRepeats++
			}
		}
	}

	r.Symbols = counts(symbols, r.Moves, weights(cfg.Moveset()))
	r.FirstSymbols = counts(first, len(batch), weights(cfg.Moveset()))
	r.Modifiers = counts(mods, r.Moves, weights(modifierStrings(cfg.Modifiers())))
	r.SymbolSkew = MaxDeviation(r.Symbols)
	r.ModifierSkew = MaxDeviation(r.Modifiers)

	if topN > 0 {
		r.TopNGrams = append(topNGrams(batch, 2, topN), topNGrams(batch, 3, topN)...)
	}
	return r
}

// MaxDeviation returns the largest absolute difference between observed and
// expected share across cs.
func MaxDeviation(cs []Count) float64 {
	var worst float64
	for _, c := range cs {
		d := c.Share - c.Expected
		if d < 0 {
			d = -d
		}
		if d > worst {
			worst = d
		}
	}
	return worst
}

func weights(values []string) map[string]float64 {
	w := make(map[string]float64, len(values))
	for _, v := range values {
		w[v] += 1 / float64(len(values))
	}
	return w
}

func modifierStrings(mods []scrambler.Modifier) []string {
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = string(m)
	}
	return out
}

// counts converts a tally to sorted Counts. Values with an expected share
// but no observations are included with a zero count.
func counts(tally map[string]int, total int, expected map[string]float64) []Count {
	keys := make(map[string]bool, len(expected))
	for k := range tally {
		keys[k] = true
	}
	for k := range expected {
		keys[k] = true
	}

	out := make([]Count, 0, len(keys))
	for k := range keys {
		c := Count{Value: k, Count: tally[k], Expected: expected[k]}
		if total > 0 {
			c.Share = float64(c.Count) / float64(total)
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// topNGrams returns the most frequent runs of n consecutive symbols.
func topNGrams(batch []scrambler.Scramble, n, limit int) []NGram {
	tally := make(map[string]int)
	for _, s := range batch {
		syms := s.Symbols()
		for i := 0; i+n <= len(syms); i++ {
			tally[strings.Join(syms[i:i+n], " ")]++
		}
	}

	grams := make([]NGram, 0, len(tally))
	for seq, c := range tally {
		if c < 2 {
			continue
		}
		grams = append(grams, NGram{N: n, Sequence: strings.Fields(seq), Count: c})
	}

	sort.Slice(grams, func(i, j int) bool {
		if grams[i].Count != grams[j].Count {
			return grams[i].Count > grams[j].Count
		}
		return strings.Join(grams[i].Sequence, " ") < strings.Join(grams[j].Sequence, " ")
	})

	if len(grams) > limit {
		grams = grams[:limit]
	}
	return grams
}
