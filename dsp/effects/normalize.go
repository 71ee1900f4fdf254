package effects

import (
	"fmt"

	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

// PeakTarget is the absolute peak Normalize scales loud clips down to.
const PeakTarget = 32767 * normalizeTargetRatio

// Normalize attenuates buf so its peak magnitude is at most PeakTarget.
// Quieter clips and silence are left untouched; gain is never raised.
// An empty buffer is treated as silence.
func Normalize(buf *pcm.Buffer) error {
	if buf == nil {
		return fmt.Errorf("normalize: nil buffer: %w", pcm.ErrInvalidArgument)
	}

	samples := buf.Samples()

	peak := Peak(samples)
	if peak == 0 {
		return nil
	}

	scale := PeakTarget / float64(peak)
	if scale >= 1 {
		return nil
	}

	for i, x := range samples {
		samples[i] = pcm.ClampSample(float64(x) * scale)
	}

	return nil
}

// Peak returns the largest absolute sample value, 32768 for a clip that
// reaches math.MinInt16.
func Peak(samples []int16) int32 {
	var peak int32

	for _, x := range samples {
		v := int32(x)
		if v < 0 {
			v = -v
		}

		peak = max(peak, v)
	}

	return peak
}
