//go:build fastmath

package effects

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// tapGain returns decay^tap, using exp(tap*ln(decay)) for positive decay.
func tapGain(decay float64, tap int) float64 {
	if decay <= 0 {
		return math.Pow(decay, float64(tap))
	}

	return approx.FastExp(float64(tap) * approx.FastLog(decay))
}
