// Package analysis computes level and spectral statistics for a processed
// clip. The report is attached to job completion metadata, so every dB
// value is floored at FloorDB rather than reported as -Inf.
package analysis

import "math"

// FloorDB is the lowest level reported, used for silence.
const FloorDB = -120.0

// MaxFFTSize caps the number of leading samples that enter the spectrum.
const MaxFFTSize = 1 << 16

// rolloffFraction is the share of spectral energy below the rolloff point.
const rolloffFraction = 0.85

// Report summarizes one clip.
type Report struct {
	PeakDBFS           float64 `json:"peak_dbfs"`
	RMSDBFS            float64 `json:"rms_dbfs"`
	CrestFactorDB      float64 `json:"crest_factor_db"`
	ZeroCrossings      int     `json:"zero_crossings"`
	SpectralCentroidHz float64 `json:"spectral_centroid_hz"`
	SpectralRolloffHz  float64 `json:"spectral_rolloff_hz"`
	DominantHz         float64 `json:"dominant_hz"`
}

// Analyze computes the report for int16 samples at sampleRate. Levels are
// relative to full scale (32768). Spectral fields stay zero when the clip
// is silent or sampleRate is not positive.
func Analyze(samples []int16, sampleRate float64) Report {
	signal := make([]float64, len(samples))
	for i, s := range samples {
		signal[i] = float64(s) / 32768
	}

	lv := levelsOf(signal)

	r := Report{
		PeakDBFS:      floorDB(ampTodB(lv.peak)),
		RMSDBFS:       floorDB(ampTodB(lv.rms)),
		ZeroCrossings: lv.zeroCrossings,
	}

	if lv.rms > 0 {
		r.CrestFactorDB = ampTodB(lv.peak / lv.rms)
	}

	if sampleRate <= 0 || lv.peak == 0 {
		return r
	}

	mag := magnitudeSpectrum(signal)
	if len(mag) < 2 {
		return r
	}

	r.SpectralCentroidHz = centroid(mag, sampleRate)
	r.SpectralRolloffHz = rolloff(mag, sampleRate, rolloffFraction)
	r.DominantHz = dominant(mag, sampleRate)

	return r
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func floorDB(v float64) float64 {
	return math.Max(v, FloorDB)
}
