package biquad

import (
	"math"
	"math/cmplx"
)

// Gain returns |H(e^jw)| at freqHz, with H evaluated in nested form
// on z^-1 = e^-jw.
func (c Coefficients) Gain(freqHz, sampleRate float64) float64 {
	z1 := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)

	num := complex(c.B0, 0) + z1*(complex(c.B1, 0)+z1*complex(c.B2, 0))
	den := 1 + z1*(complex(c.A1, 0)+z1*complex(c.A2, 0))

	return cmplx.Abs(num / den)
}

// MagnitudeDB returns the gain at freqHz in decibels. A zero of the
// transfer function yields -Inf.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(c.Gain(freqHz, sampleRate))
}
