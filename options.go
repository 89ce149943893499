package scrambler

// Option configures a Generator.
type Option func(*genConfig)

type genConfig struct {
	source Source
}

func defaultGenConfig() *genConfig {
	return &genConfig{}
}

// WithSource sets the random source used by the Generator.
// The Generator does not lock the source; pass a LockedSource if the
// Generator is shared between goroutines.
func WithSource(src Source) Option {
	return func(c *genConfig) {
		c.source = src
	}
}

// WithSeed gives the Generator its own PCGSource seeded with seed, making
// its output reproducible.
func WithSeed(seed uint64) Option {
	return func(c *genConfig) {
		c.source = NewSource(seed)
	}
}
