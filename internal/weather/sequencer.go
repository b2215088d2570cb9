package weather

import (
	"go.uber.org/atomic"
)

// Token identifies one user-triggered fetch sequence.
type Token uint64

// Sequencer hands out monotonically increasing tokens. A token is current
// until the next call to Begin.
type Sequencer struct {
	generation *atomic.Uint64
}

// NewSequencer creates a Sequencer whose first token is 1.
func NewSequencer() *Sequencer {
	return &Sequencer{generation: atomic.NewUint64(0)}
}

// Begin starts a new request and returns its token.
func (s *Sequencer) Begin() Token {
	return Token(s.generation.Inc())
}

// IsStale reports whether a later Begin happened after t was issued.
func (s *Sequencer) IsStale(t Token) bool {
	return Token(s.generation.Load()) != t
}

// Current returns the latest issued token, or 0 before the first Begin.
func (s *Sequencer) Current() Token {
	return Token(s.generation.Load())
}
