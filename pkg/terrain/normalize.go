package terrain

import (
	"fmt"
	"math"
)

// Normalize rescales f in place so every cell is an integer in [0, outMax].
// The smallest value maps to 0 and the largest to outMax; a flat field is
// filled with floor(outMax/2). Normalizing an already normalized field with
// the same outMax leaves it unchanged.
func Normalize(f *HeightField, outMax float64) error {
	if math.IsNaN(outMax) || math.IsInf(outMax, 0) || outMax < 0 || outMax != math.Trunc(outMax) {
		return fmt.Errorf("%w: outMax %v must be a non-negative integer", ErrInvalidParameters, outMax)
	}
	if err := f.check(); err != nil {
		return err
	}
	lo, hi := f.ScanRange()
	f.RescaleInPlace(lo, hi, outMax)
	return nil
}
