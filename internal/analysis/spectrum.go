package analysis

import (
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// magnitudeSpectrum returns the one-sided magnitude spectrum (bins 0 to
// Nyquist) of the Hann-windowed leading MaxFFTSize samples of signal,
// zero-padded to a power of two. It returns nil if the FFT cannot run.
func magnitudeSpectrum(signal []float64) []float64 {
	n := min(len(signal), MaxFFTSize)
	fftSize := max(nextPowerOf2(n), 2)

	frame := make([]float64, n)
	copy(frame, signal[:n])
	vecmath.MulBlockInPlace(frame, hann(n))

	in := make([]complex128, fftSize)
	for i, x := range frame {
		in[i] = complex(x, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag
}

// hann returns symmetric Hann coefficients of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}

	step := 2 * math.Pi / float64(n-1)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(step*float64(i))
	}

	return w
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

// binFreq returns the frequency in Hz of a given bin index.
// fftSize = 2 * (binCount - 1).
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// centroid returns sum(f_i * |X_i|) / sum(|X_i|).
func centroid(mag []float64, sampleRate float64) float64 {
	var sum, weighted float64

	for i, v := range mag {
		sum += v
		weighted += binFreq(i, sampleRate, len(mag)) * v
	}

	if sum == 0 {
		return 0
	}

	return weighted / sum
}

// rolloff returns the frequency below which fraction of the spectral
// energy (sum of squared magnitudes) lies.
func rolloff(mag []float64, sampleRate, fraction float64) float64 {
	var total float64
	for _, v := range mag {
		total += v * v
	}

	if total == 0 {
		return 0
	}

	threshold := fraction * total
	cum := 0.0

	for i, v := range mag {
		cum += v * v
		if cum >= threshold {
			return binFreq(i, sampleRate, len(mag))
		}
	}

	return binFreq(len(mag)-1, sampleRate, len(mag))
}

// dominant returns the frequency of the strongest non-DC bin.
func dominant(mag []float64, sampleRate float64) float64 {
	best := 1
	for i := 2; i < len(mag); i++ {
		if mag[i] > mag[best] {
			best = i
		}
	}

	return binFreq(best, sampleRate, len(mag))
}
