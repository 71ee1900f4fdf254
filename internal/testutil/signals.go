// Package testutil holds deterministic PCM fixtures and comparison helpers
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

// Sine generates a deterministic int16 sine wave with the given peak.
func Sine(freqHz, sampleRate float64, peak int16, length int) []int16 {
	out := make([]int16, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = pcm.ClampSample(float64(peak) * math.Sin(step*float64(i)))
	}
	return out
}

// Noise generates white noise in [-peak, peak] with a fixed seed.
func Noise(seed int64, peak int16, length int) []int16 {
	out := make([]int16, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = pcm.ClampSample((rng.Float64()*2 - 1) * float64(peak))
	}
	return out
}

// Impulse returns silence with a single sample of the given value at pos.
func Impulse(length, pos int, value int16) []int16 {
	out := make([]int16, length)
	if pos >= 0 && pos < length {
		out[pos] = value
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value int16, length int) []int16 {
	out := make([]int16, length)
	for i := range out {
		out[i] = value
	}
	return out
}
