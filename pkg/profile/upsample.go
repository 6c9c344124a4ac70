package profile

import (
	"fmt"
	"math"
)

// countEpsilon absorbs float error in (H-1)/r for steps that are not exact binary fractions.
const countEpsilon = 1e-9

// InterpolatedCount returns how many points of the grid 0, r, 2r, ... lie
// inside the coarse index domain [0, H-1].
func InterpolatedCount(coarseLength int, step float64) int {
	if coarseLength < 1 || !(step > 0) {
		return 0
	}
	return int(math.Floor(float64(coarseLength-1)/step+countEpsilon)) + 1
}

// Upsample linearly interpolates base at positions 0, step, 2*step, ... and
// returns exactly target points.
//
// Positions inside [0, H-1] are interpolated; the remaining positions up to
// target continue the last segment's slope (linear extrapolation). For
// H=8760 and step=0.25 that is 35037 interpolated and 3 extrapolated points.
func Upsample(base []float64, step float64, target int) ([]float64, error) {
	h := len(base)
	if h < 2 {
		return nil, fmt.Errorf("%w: base has %d points, need at least 2", ErrLengthMismatch, h)
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("%w: step %v must be positive", ErrLengthMismatch, step)
	}
	if target <= 0 {
		return nil, fmt.Errorf("%w: target %d must be positive", ErrLengthMismatch, target)
	}

	inside := InterpolatedCount(h, step)
	if inside > target {
		return nil, fmt.Errorf("%w: %d interpolated points exceed target %d", ErrLengthMismatch, inside, target)
	}

	last := float64(h - 1)
	out := make([]float64, target)
	for i := range out {
		x := float64(i) * step
		if x == last {
			out[i] = base[h-1]
			continue
		}

		// Positions past the domain reuse the last segment, which extrapolates.
		j := int(x)
		if j > h-2 {
			j = h - 2
		}
		frac := x - float64(j)
		out[i] = base[j] + frac*(base[j+1]-base[j])
	}

	return out, nil
}
