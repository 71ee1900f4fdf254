package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

// Echo adds up to five decaying copies of buf at multiples of DelayMs.
//
// Tap k (1-based) is delayed k*DelayMs and scaled by Decay^k. Each tap
// contribution is saturated to int16 before it is accumulated, and the
// sum is mixed in at half level. Taps that would start past the end of
// the clip are dropped. A base delay that does not fit inside the clip
// at all is reported as pcm.ErrEffect.
func Echo(buf *pcm.Buffer, p *EchoParams) error {
	const stage = "echo"

	if err := checkBuffer(stage, buf); err != nil {
		return err
	}

	if err := checkParams(stage, p); err != nil {
		return err
	}

	if err := checkRate(stage, buf); err != nil {
		return err
	}

	if err := checkFinite(stage, p.DelayMs, p.Decay); err != nil {
		return err
	}

	if p.DelayMs < 0 {
		return fmt.Errorf("%s: negative delay %g ms: %w", stage, p.DelayMs, pcm.ErrInvalidArgument)
	}

	samples := buf.Samples()
	n := len(samples)

	base := math.Floor(p.DelayMs * float64(buf.SampleRate) / 1000)
	if base >= float64(n) {
		return fmt.Errorf("%s: delay of %.0f samples exceeds %d-sample clip: %w", stage, base, n, pcm.ErrEffect)
	}

	delaySamples := int(base)
	taps := min(max(p.RepeatCount, 0), maxEchoRepeats)

	acc := make([]int32, n)

	for tap := 1; tap <= taps; tap++ {
		offset := delaySamples * tap
		if offset >= n {
			break
		}

		gain := tapGain(p.Decay, tap)
		for i := offset; i < n; i++ {
			acc[i] += int32(pcm.ClampSample(float64(samples[i-offset]) * gain))
		}
	}

	for i, x := range samples {
		samples[i] = pcm.ClampSample(float64(x) + float64(acc[i])*echoMixLevel)
	}

	return nil
}
