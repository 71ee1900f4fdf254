package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

func checkBuffer(stage string, buf *pcm.Buffer) error {
	if buf == nil {
		return fmt.Errorf("%s: nil buffer: %w", stage, pcm.ErrInvalidArgument)
	}

	if buf.Len() == 0 {
		return fmt.Errorf("%s: empty buffer: %w", stage, pcm.ErrInvalidArgument)
	}

	return nil
}

func checkRate(stage string, buf *pcm.Buffer) error {
	if buf.SampleRate <= 0 {
		return fmt.Errorf("%s: sample rate %d: %w", stage, buf.SampleRate, pcm.ErrInvalidArgument)
	}

	return nil
}

func checkParams[T any](stage string, p *T) error {
	if p == nil {
		return fmt.Errorf("%s: missing parameters: %w", stage, pcm.ErrInvalidArgument)
	}

	return nil
}

func checkFinite(stage string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: non-finite parameter %v: %w", stage, v, pcm.ErrInvalidArgument)
		}
	}

	return nil
}
