package terrain

import (
	"fmt"
	"math"
	"strings"
)

// Method selects the subdivision strategy.
type Method int

const (
	// MidpointDisplacement perturbs the four edge midpoints of every
	// rectangle from their endpoints, then the center from those midpoints.
	MidpointDisplacement Method = iota
	// DiamondSquare computes every center of a level from its four corners
	// first, then each edge midpoint from its endpoints and the adjacent
	// centers.
	DiamondSquare
)

func (m Method) String() string {
	switch m {
	case MidpointDisplacement:
		return "midpointDisplacement"
	case DiamondSquare:
		return "diamondSquare"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod accepts the camelCase names returned by String as well as
// kebab-case and snake_case spellings.
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	switch key {
	case "midpointdisplacement", "midpoint", "mpd":
		return MidpointDisplacement, nil
	case "diamondsquare", "diamond", "ds":
		return DiamondSquare, nil
	}
	return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidParameters, s)
}

// Termination decides when a rectangle is split further.
type Termination int

const (
	// TerminateOnBoth splits while either extent exceeds 2, so every cell
	// of any grid is written. On square 2^n+1 grids it produces the same
	// tasks as TerminateOnX.
	TerminateOnBoth Termination = iota
	// TerminateOnX splits while the x extent exceeds 2 and ignores y. Any
	// grid other than a 2^n+1 square is left with rows that are never
	// written.
	TerminateOnX
)

// Task is one rectangle awaiting subdivision. Bounds are inclusive cell
// indices; Depth is 0 for the rectangle spanning the whole field.
type Task struct {
	XMin, XMax int
	YMin, YMax int

	Randomness float64
	Depth      int
}

func (t Task) mid() (xMid, yMid int) {
	return (t.XMin + t.XMax) / 2, (t.YMin + t.YMax) / 2
}

func (t Task) isCorner(x, y int) bool {
	return (x == t.XMin || x == t.XMax) && (y == t.YMin || y == t.YMax)
}

func (term Termination) splits(t Task) bool {
	if t.XMax-t.XMin > 2 {
		return true
	}
	return term == TerminateOnBoth && t.YMax-t.YMin > 2
}

// children returns the quadrants of t in the order top-left, top-right,
// bottom-left, bottom-right. TerminateOnX always yields all four, including
// zero-width ones. TerminateOnBoth drops a zero-span half when the other
// half of that axis already covers it.
func (term Termination) children(t Task, decay float64) []Task {
	xMid, yMid := t.mid()
	r := t.Randomness * decay
	d := t.Depth + 1

	xs := [][2]int{{t.XMin, xMid}, {xMid, t.XMax}}
	ys := [][2]int{{t.YMin, yMid}, {yMid, t.YMax}}
	if term == TerminateOnBoth {
		if xMid == t.XMin {
			xs = xs[1:]
		}
		if yMid == t.YMin {
			ys = ys[1:]
		}
	}

	out := make([]Task, 0, 4)
	for _, y := range ys {
		for _, x := range xs {
			out = append(out, Task{
				XMin: x[0], XMax: x[1],
				YMin: y[0], YMax: y[1],
				Randomness: r,
				Depth:      d,
			})
		}
	}
	return out
}

// Subdivider fills a HeightField by breadth-first rectangle subdivision.
// A Subdivider holds its RandomSource and is not safe for concurrent use.
type Subdivider struct {
	src    RandomSource
	noise  Noise
	method Method
	term   Termination

	onSet  func(x, y int, v float64)
	onTask func(Task)
}

// Option configures a Subdivider.
type Option func(*Subdivider)

// WithSource replaces the default auto-seeded source.
func WithSource(src RandomSource) Option {
	return func(s *Subdivider) { s.src = src }
}

// WithNoise selects continuous or quantized values.
func WithNoise(n Noise) Option {
	return func(s *Subdivider) { s.noise = n }
}

// WithMethod selects the subdivision strategy.
func WithMethod(m Method) Option {
	return func(s *Subdivider) { s.method = m }
}

// WithTermination selects the split rule.
func WithTermination(t Termination) Option {
	return func(s *Subdivider) { s.term = t }
}

// WithSetHook registers fn to observe every cell write, seeds included,
// in the order they happen.
func WithSetHook(fn func(x, y int, v float64)) Option {
	return func(s *Subdivider) { s.onSet = fn }
}

// WithTaskHook registers fn to observe every task as it is processed.
func WithTaskHook(fn func(Task)) Option {
	return func(s *Subdivider) { s.onTask = fn }
}

// NewSubdivider returns a midpoint-displacement Subdivider with continuous
// noise, x-only termination and an auto-seeded source, adjusted by opts.
func NewSubdivider(opts ...Option) *Subdivider {
	s := &Subdivider{}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = DefaultSource()
	}
	return s
}

// MaxRandLimit is the largest accepted maxRand. Averaging four cells and
// adding noise at every level stays well below math.MaxFloat64 under it.
const MaxRandLimit = math.MaxFloat64 / 1024

// ValidateParams checks maxRand and decayFactor without touching any field.
func ValidateParams(maxRand, decayFactor float64) error {
	if !(maxRand >= 0 && maxRand <= MaxRandLimit) {
		return fmt.Errorf("%w: maxRand %v must be in [0, %v]", ErrInvalidParameters, maxRand, MaxRandLimit)
	}
	if !(decayFactor > 0 && decayFactor <= 1) {
		return fmt.Errorf("%w: decayFactor %v must be in (0, 1]", ErrInvalidParameters, decayFactor)
	}
	return nil
}

// Fill seeds the four corners of f with draws in [0, maxRand) and fills the
// rest by subdivision, scaling randomness by decayFactor per level. Parameters
// are validated before f is modified.
func (s *Subdivider) Fill(f *HeightField, maxRand, decayFactor float64) error {
	if err := ValidateParams(maxRand, decayFactor); err != nil {
		return err
	}
	if err := f.check(); err != nil {
		return err
	}

	right, bottom := f.width-1, f.height-1
	s.set(f, 0, 0, s.noise.seed(s.src, maxRand))
	s.set(f, right, 0, s.noise.seed(s.src, maxRand))
	s.set(f, 0, bottom, s.noise.seed(s.src, maxRand))
	s.set(f, right, bottom, s.noise.seed(s.src, maxRand))

	root := Task{XMin: 0, XMax: right, YMin: 0, YMax: bottom, Randomness: maxRand / 2}
	switch s.method {
	case DiamondSquare:
		s.diamondSquare(f, root, decayFactor)
	default:
		s.midpoint(f, root, decayFactor)
	}
	return nil
}

func (s *Subdivider) midpoint(f *HeightField, root Task, decay float64) {
	queue := []Task{root}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]

		s.visit(t)
		s.displace(f, t)
		if s.term.splits(t) {
			queue = append(queue, s.term.children(t, decay)...)
		}
	}
}

// displace writes the four edge midpoints and the center of t. Every read
// goes through the field so a midpoint that lands on a corner of a thin
// rectangle is seen by the writes after it.
func (s *Subdivider) displace(f *HeightField, t Task) {
	xMid, yMid := t.mid()
	r := t.Randomness

	s.set(f, t.XMin, yMid, s.noise.edge(s.src, (f.at(t.XMin, t.YMin)+f.at(t.XMin, t.YMax))/2, r))
	s.set(f, t.XMax, yMid, s.noise.edge(s.src, (f.at(t.XMax, t.YMin)+f.at(t.XMax, t.YMax))/2, r))
	s.set(f, xMid, t.YMin, s.noise.edge(s.src, (f.at(t.XMin, t.YMin)+f.at(t.XMax, t.YMin))/2, r))
	s.set(f, xMid, t.YMax, s.noise.edge(s.src, (f.at(t.XMin, t.YMax)+f.at(t.XMax, t.YMax))/2, r))

	avg := (f.at(t.XMin, yMid) + f.at(t.XMax, yMid) + f.at(xMid, t.YMin) + f.at(xMid, t.YMax)) / 4
	s.set(f, xMid, yMid, s.noise.center(s.src, avg, r))
}

func (s *Subdivider) set(f *HeightField, x, y int, v float64) {
	f.put(x, y, v)
	if s.onSet != nil {
		s.onSet(x, y, v)
	}
}

func (s *Subdivider) visit(t Task) {
	if s.onTask != nil {
		s.onTask(t)
	}
}
