package effectchain

import "math/bits"

// Kind identifies one effect stage. Kinds are single bits so that a set of
// kinds can be carried as a Mask.
type Kind uint8

// Effect kinds, in evaluation order.
const (
	LowPass Kind = 1 << iota
	HighPass
	Reverb
	Echo
	PitchShift
	Distortion
)

const numKinds = 6

// Order lists every kind in the order the chain applies them.
var Order = [numKinds]Kind{LowPass, HighPass, Reverb, Echo, PitchShift, Distortion}

var kindNames = [numKinds]string{"low_pass", "high_pass", "reverb", "echo", "pitch_shift", "distortion"}

// String returns the wire name used in job metadata, e.g. "low_pass".
func (k Kind) String() string {
	if i, ok := k.index(); ok {
		return kindNames[i]
	}

	return "unknown"
}

// Valid reports whether k is exactly one known kind.
func (k Kind) Valid() bool {
	_, ok := k.index()
	return ok
}

func (k Kind) index() (int, bool) {
	if bits.OnesCount8(uint8(k)) != 1 {
		return 0, false
	}

	i := bits.TrailingZeros8(uint8(k))
	if i >= numKinds {
		return 0, false
	}

	return i, true
}

// KindByName returns the kind with the given wire name.
func KindByName(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Order[i], true
		}
	}

	return 0, false
}

// Mask is a set of kinds.
type Mask uint8

// Has reports whether k is in the mask.
func (m Mask) Has(k Kind) bool {
	return m&Mask(k) != 0
}

// Kinds returns the kinds in m in evaluation order.
func (m Mask) Kinds() []Kind {
	var out []Kind

	for _, k := range Order {
		if m.Has(k) {
			out = append(out, k)
		}
	}

	return out
}
