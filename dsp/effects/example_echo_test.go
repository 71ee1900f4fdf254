//go:build !fastmath

package effects_test

import (
	"fmt"

	"github.com/cwbudde/algo-fxworker/dsp/effects"
	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

func ExampleEcho() {
	in := make([]int16, 12)
	in[0] = 16000

	buf, err := pcm.FromSamples(in, 1000, 1)
	if err != nil {
		panic(err)
	}

	// 3 ms at 1 kHz puts the taps three samples apart.
	p := effects.EchoParams{DelayMs: 3, Decay: 0.5, RepeatCount: 3}
	if err := effects.Echo(buf, &p); err != nil {
		panic(err)
	}

	fmt.Println(buf.Samples())
	// Output: [16000 0 0 4000 0 0 2000 0 0 1000 0 0]
}
