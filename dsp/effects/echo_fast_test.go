//go:build fastmath

package effects

// Approximate exp/log may move a tap by one step.
const (
	tapTolerance     = 1
	tapGainTolerance = 1e-3
)
