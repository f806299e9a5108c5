package indicator

import "math"

// VolumeRelativeHigh flags bars whose volume strictly exceeds the maximum of the
// preceding window volumes. The first window bars are always false.
func VolumeRelativeHigh(volumes []float64, window int) []bool {
	if len(volumes) == 0 {
		return []bool{}
	}

	out := make([]bool, len(volumes))
	if window <= 0 {
		return out
	}

	for i := window; i < len(volumes); i++ {
		maxPrev := -math.MaxFloat64
		for _, v := range volumes[i-window : i] {
			if v > maxPrev {
				maxPrev = v
			}
		}
		out[i] = volumes[i] > maxPrev
	}

	return out
}
