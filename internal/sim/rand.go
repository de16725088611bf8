package sim

import "math/rand"

// Source is the sequential draw stream consumed by the simulation.
//
// A game owns exactly one Source for its whole lifetime and passes it
// explicitly to every component that needs randomness. Every probabilistic
// decision consumes draws in a fixed documented order, so two sources built
// from the same seed replay the same game byte for byte.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Stream is the production Source, backed by a seeded math/rand generator.
type Stream struct {
	rng *rand.Rand
}

// NewStream creates a draw stream from a seed.
func NewStream(seed int64) *Stream {
	return &Stream{rng: rand.New(rand.NewSource(seed))}
}

func (s *Stream) Float64() float64 { return s.rng.Float64() }
func (s *Stream) Intn(n int) int   { return s.rng.Intn(n) }

// Scripted is a Source that replays a prepared queue of draws. Tests use it
// to force the engine down an exact decision path.
type Scripted struct {
	Floats []float64
	Ints   []int
}

func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

func (s *Scripted) Intn(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if n <= 0 {
		return 0
	}
	return v % n
}
