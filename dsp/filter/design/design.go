package design

import (
	"math"

	"github.com/cwbudde/algo-fxworker/dsp/filter/biquad"
)

// ButterworthQ is the fixed quality factor of the low-pass and high-pass
// stages, giving a maximally flat passband.
const ButterworthQ = 0.707

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
//
//	w = 2*pi*freq/sampleRate, alpha = sin(w)/(2q), a0 = 1+alpha
//	b0 = b2 = (1-cos w)/(2 a0), b1 = (1-cos w)/a0
//	a1 = -2 cos w/a0, a2 = (1-alpha)/a0
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha := prewarp(freq, q, sampleRate)

	return normalizeBiquad(
		(1-cw)/2, 1-cw, (1-cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
// It shares the feedback section of [Lowpass]; the numerator becomes
// b0 = b2 = (1+cos w)/(2 a0), b1 = -(1+cos w)/a0.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha := prewarp(freq, q, sampleRate)

	return normalizeBiquad(
		(1+cw)/2, -(1 + cw), (1+cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

func prewarp(freq, q, sampleRate float64) (cw, alpha float64) {
	w0 := 2 * math.Pi * freq / sampleRate
	return math.Cos(w0), math.Sin(w0) / (2 * normalizedQ(q))
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return ButterworthQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
