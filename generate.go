package scrambler

// Generate produces a scramble of cfg.Length() moves. Each symbol is drawn
// uniformly from the moveset and redrawn while it equals one of the two
// symbols before it; each modifier is drawn independently. A nil src uses
// DefaultSource.
//
// Configurations that can never satisfy the adjacency rule are rejected
// before any entropy is consumed (see Config.Validate).
func Generate(cfg Config, src Source) (Scramble, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = DefaultSource()
	}

	moves := make(Scramble, cfg.length)
	for i := range moves {
		symbol := cfg.moveset[src.IntN(len(cfg.moveset))]
		for repeatsPrevious(moves, i, symbol) {
			symbol = cfg.moveset[src.IntN(len(cfg.moveset))]
		}

		moves[i] = Move{
			Symbol:   symbol,
			Modifier: cfg.modifiers[src.IntN(len(cfg.modifiers))],
		}
	}

	return moves, nil
}

// repeatsPrevious reports whether symbol equals the symbol at i-1 or i-2.
// Positions before the start of the scramble impose no constraint.
func repeatsPrevious(moves Scramble, i int, symbol string) bool {
	if i >= 1 && moves[i-1].Symbol == symbol {
		return true
	}
	if i >= 2 && moves[i-2].Symbol == symbol {
		return true
	}
	return false
}

// GenerateText generates a scramble from cfg with the default source and
// renders it.
func GenerateText(cfg Config) (string, error) {
	s, err := Generate(cfg, nil)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// GenerateModeText renders a scramble for the preset mode, falling back to
// DefaultMode for unknown modes.
func GenerateModeText(mode Mode) (string, error) {
	return GenerateText(Preset(mode))
}

// Generator owns a random source and produces scrambles from it.
// A Generator is as safe for concurrent use as its source.
type Generator struct {
	src Source
}

// NewGenerator creates a Generator. Without options it uses DefaultSource.
func NewGenerator(opts ...Option) *Generator {
	cfg := defaultGenConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.source == nil {
		cfg.source = DefaultSource()
	}
	return &Generator{src: cfg.source}
}

// Generate produces one scramble for cfg.
func (g *Generator) Generate(cfg Config) (Scramble, error) {
	return Generate(cfg, g.src)
}

// GenerateText produces one rendered scramble for cfg.
func (g *Generator) GenerateText(cfg Config) (string, error) {
	s, err := g.Generate(cfg)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// GenerateMode produces one scramble for the preset mode.
func (g *Generator) GenerateMode(mode Mode) (Scramble, error) {
	return g.Generate(Preset(mode))
}

// Batch produces n scrambles for cfg. It stops at the first error and
// returns no scrambles in that case.
func (g *Generator) Batch(cfg Config, n int) ([]Scramble, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := make([]Scramble, 0, n)
	for i := 0; i < n; i++ {
		s, err := g.Generate(cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
