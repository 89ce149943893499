package scrambler

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source supplies uniformly distributed integers.
// Implementations need not be safe for concurrent use; wrap them in a
// LockedSource to share one between goroutines.
type Source interface {
	// IntN returns a value in [0, n). n is always positive.
	IntN(n int) int
}

// SeedableSource is a Source that can be reset to a known state.
type SeedableSource interface {
	Source
	Seed(seed uint64)
}

// PCGSource is a deterministic Source built on math/rand/v2's PCG generator.
type PCGSource struct {
	pcg *rand.PCG
	r   *rand.Rand
}

// NewSource returns a PCGSource seeded with seed. Two sources with the same
// seed produce the same sequence.
func NewSource(seed uint64) *PCGSource {
	pcg := rand.NewPCG(seed, 0)
	return &PCGSource{pcg: pcg, r: rand.New(pcg)}
}

// NewTimeSource returns a PCGSource seeded from the current time.
func NewTimeSource() *PCGSource {
	return NewSource(uint64(time.Now().UnixNano()))
}

// IntN implements Source.
func (s *PCGSource) IntN(n int) int {
	return s.r.IntN(n)
}

// Seed resets the source so it replays the sequence for seed.
func (s *PCGSource) Seed(seed uint64) {
	s.pcg.Seed(seed, 0)
}

// LockedSource serializes access to an underlying Source.
type LockedSource struct {
	mu  sync.Mutex
	src Source
}

// NewLockedSource wraps src.
func NewLockedSource(src Source) *LockedSource {
	return &LockedSource{src: src}
}

// IntN implements Source.
func (l *LockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// Seed reseeds the wrapped source. If the wrapped source is not seedable it
// is replaced with a PCGSource for seed.
func (l *LockedSource) Seed(seed uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.src.(SeedableSource); ok {
		s.Seed(seed)
		return
	}
	l.src = NewSource(seed)
}

var (
	defaultOnce   sync.Once
	defaultSource *LockedSource
)

// DefaultSource returns the process-wide source used when no Source is
// given. It is seeded from the clock on first use and safe for concurrent use.
func DefaultSource() *LockedSource {
	defaultOnce.Do(func() {
		defaultSource = NewLockedSource(NewTimeSource())
	})
	return defaultSource
}

// SeedDefault reseeds the process-wide source.
func SeedDefault(seed uint64) {
	DefaultSource().Seed(seed)
}
