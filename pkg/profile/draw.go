package profile

// DegenerateValue fills a profile whose draw has no spread to normalize.
const DegenerateValue = 0.5

// Draw perturbs an upsampled shape with gaussian noise and rescales it to [0, 1].
//
// Exactly len(upsampled) samples are taken from src on every call, so the
// position of later draws in a shared stream never depends on the outcome of
// this one. A draw is degenerate when the base shape is constant or the noisy
// series has no spread; it is then filled with DegenerateValue.
func Draw(upsampled []float64, sigma float64, src NormalSource) ([]float64, bool) {
	out := make([]float64, len(upsampled))
	if len(upsampled) == 0 {
		return out, false
	}

	for i, v := range upsampled {
		out[i] = v + src.NormFloat64()*sigma
	}

	lo, hi := out[0], out[0]
	for _, v := range out[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if hi == lo || isConstant(upsampled) {
		for i := range out {
			out[i] = DegenerateValue
		}
		return out, true
	}

	span := hi - lo
	for i, v := range out {
		out[i] = (v - lo) / span
	}
	return out, false
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
