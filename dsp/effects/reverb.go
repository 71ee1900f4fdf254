package effects

import (
	"fmt"

	"github.com/cwbudde/algo-fxworker/dsp/delay"
	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

// roomSeconds is the delay length, in seconds, at RoomSize 1.
const roomSeconds = 0.1

// Reverb mixes buf with a single feedback delay line.
//
// The line holds floor(RoomSize*SampleRate*0.1) samples, or a quarter of
// the clip when that would not fit. Each output is
// in*(1-WetLevel) + delayed*WetLevel, and in + delayed*Damping/2 is fed
// back into the line.
func Reverb(buf *pcm.Buffer, p *ReverbParams) error {
	const stage = "reverb"

	if err := checkBuffer(stage, buf); err != nil {
		return err
	}

	if err := checkParams(stage, p); err != nil {
		return err
	}

	if err := checkRate(stage, buf); err != nil {
		return err
	}

	if err := checkFinite(stage, p.RoomSize, p.Damping, p.WetLevel); err != nil {
		return err
	}

	n := buf.Len()

	size := reverbDelay(p.RoomSize, buf.SampleRate, n)
	if size <= 0 {
		return fmt.Errorf("%s: delay of %d samples for %d-sample clip: %w", stage, size, n, pcm.ErrEffect)
	}

	line, err := delay.New(size)
	if err != nil {
		return err
	}

	work, err := pcm.Floats(buf.Samples())
	if err != nil {
		return err
	}

	feedback := p.Damping * 0.5
	dry := 1 - p.WetLevel

	for i, x := range work {
		delayed := line.Oldest()
		line.Write(x + delayed*feedback)
		work[i] = x*dry + delayed*p.WetLevel
	}

	pcm.FromFloat(buf.Samples(), work)

	return nil
}

func reverbDelay(roomSize float64, sampleRate, n int) int {
	d := roomSize * float64(sampleRate) * roomSeconds
	if d >= float64(n) {
		return n / 4
	}

	if d < 1 {
		return 0
	}

	return int(d)
}
