package terrain

import "fmt"

// Generate allocates a width×height field and fills it with method.
// All arguments are validated before anything is allocated, so a non-nil
// error always comes with a nil field. opts may replace the random source,
// the noise policy or the termination rule; a WithMethod option is
// overridden by method.
func Generate(width, height int, method Method, maxRand, decayFactor float64, opts ...Option) (*HeightField, error) {
	if method != MidpointDisplacement && method != DiamondSquare {
		return nil, fmt.Errorf("%w: unknown method %v", ErrInvalidParameters, method)
	}
	if err := ValidateParams(maxRand, decayFactor); err != nil {
		return nil, err
	}

	f, err := New(width, height)
	if err != nil {
		return nil, err
	}

	opts = append(opts[:len(opts):len(opts)], WithMethod(method))
	s := NewSubdivider(opts...)
	if err := s.Fill(f, maxRand, decayFactor); err != nil {
		return nil, fmt.Errorf("fill %s: %w", method, err)
	}
	return f, nil
}
