package terrain

import (
	"math"
	"math/rand/v2"
)

// RandomSource produces uniform values in [0, magnitude).
// Implementations need not be safe for concurrent use.
type RandomSource interface {
	Uniform(magnitude float64) float64
}

// RandSource adapts a math/rand/v2 generator.
type RandSource struct {
	r *rand.Rand
}

// NewRandSource wraps r. Pass a seeded generator for deterministic output.
func NewRandSource(r *rand.Rand) *RandSource {
	return &RandSource{r: r}
}

// DefaultSource returns a source seeded from the runtime's entropy.
func DefaultSource() *RandSource {
	return NewRandSource(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

func (s *RandSource) Uniform(magnitude float64) float64 {
	return s.r.Float64() * magnitude
}

// SequenceSource replays a fixed list of unit values, scaled by the requested
// magnitude, wrapping around when exhausted. Values should lie in [0, 1).
type SequenceSource struct {
	units []float64
	next  int
	draws int
}

// NewSequenceSource returns a source cycling through units. An empty list
// always yields 0.
func NewSequenceSource(units ...float64) *SequenceSource {
	return &SequenceSource{units: units}
}

func (s *SequenceSource) Uniform(magnitude float64) float64 {
	if len(s.units) == 0 {
		return 0
	}
	u := s.units[s.next]
	s.next = (s.next + 1) % len(s.units)
	s.draws++
	return u * magnitude
}

// Draws reports how many values have been consumed so far.
func (s *SequenceSource) Draws() int { return s.draws }

// Noise selects how perturbations and derived values are represented.
type Noise int

const (
	// Continuous keeps noise and midpoints as real numbers.
	Continuous Noise = iota
	// Quantized floors seeds, noise and every derived midpoint, which gives
	// stepped, banded terrain. Centers receive no noise in this mode.
	Quantized
)

func (n Noise) String() string {
	switch n {
	case Continuous:
		return "continuous"
	case Quantized:
		return "quantized"
	default:
		return "unknown"
	}
}

// seed draws a corner value in [0, magnitude).
func (n Noise) seed(src RandomSource, magnitude float64) float64 {
	v := src.Uniform(magnitude)
	if n == Quantized {
		return math.Floor(v)
	}
	return v
}

// edge returns avg perturbed by centered noise of the given magnitude.
func (n Noise) edge(src RandomSource, avg, magnitude float64) float64 {
	jitter := src.Uniform(magnitude) - magnitude/2
	if n == Quantized {
		return math.Floor(avg + math.Floor(jitter))
	}
	return avg + jitter
}

// center is edge for continuous noise; quantized centers are the floored
// average and consume no random draw.
func (n Noise) center(src RandomSource, avg, magnitude float64) float64 {
	if n == Quantized {
		return math.Floor(avg)
	}
	return n.edge(src, avg, magnitude)
}
