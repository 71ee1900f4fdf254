package effects

import (
	"math"

	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

// PitchShift resamples buf in place with linear interpolation, reading
// output sample i from source position i/2^(Semitones/12).
//
// The clip length is unchanged. Positive shifts stretch the start of the
// source across the whole clip and drop its end; negative shifts compress
// the source and leave silence at the tail. Zero semitones is an exact
// identity.
func PitchShift(buf *pcm.Buffer, p *PitchParams) error {
	const stage = "pitch shift"

	if err := checkBuffer(stage, buf); err != nil {
		return err
	}

	if err := checkParams(stage, p); err != nil {
		return err
	}

	if err := checkFinite(stage, p.Semitones); err != nil {
		return err
	}

	samples := buf.Samples()
	n := len(samples)

	out, err := pcm.MakeSamples(n)
	if err != nil {
		return err
	}

	ratio := math.Pow(2, p.Semitones/12)
	limit := float64(n)

	for i := range out {
		src := float64(i) / ratio
		if src >= limit {
			break
		}

		idx := int(src)
		frac := src - float64(idx)

		if idx+1 < n {
			out[i] = pcm.ClampSample(pcm.Lerp(float64(samples[idx]), float64(samples[idx+1]), frac))
		} else {
			out[i] = samples[idx]
		}
	}

	copy(samples, out)

	return nil
}
