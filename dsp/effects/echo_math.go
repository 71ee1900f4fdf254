//go:build !fastmath

package effects

import "math"

// tapGain returns decay^tap.
func tapGain(decay float64, tap int) float64 {
	return math.Pow(decay, float64(tap))
}
