package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

// Distortion soft-clips buf with a scaled tanh curve:
//
//	y = tanh(x*Gain*Threshold) / Threshold
//
// where x is the sample normalized by 1/32768. A threshold within 1e-6 of
// zero is rejected.
func Distortion(buf *pcm.Buffer, p *DistortionParams) error {
	const stage = "distortion"

	if err := checkBuffer(stage, buf); err != nil {
		return err
	}

	if err := checkParams(stage, p); err != nil {
		return err
	}

	if err := checkFinite(stage, p.Gain, p.Threshold); err != nil {
		return err
	}

	if math.Abs(p.Threshold) < minDriveThreshold {
		return fmt.Errorf("%s: threshold %g too close to zero: %w", stage, p.Threshold, pcm.ErrInvalidArgument)
	}

	samples := buf.Samples()
	for i, x := range samples {
		s := float64(x) / 32768 * p.Gain
		s = math.Tanh(s*p.Threshold) / p.Threshold
		samples[i] = pcm.ClampSample(s * 32767)
	}

	return nil
}
