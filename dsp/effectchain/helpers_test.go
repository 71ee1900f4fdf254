package effectchain

import (
	"testing"

	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

const testRate = 44100

func newJob(t *testing.T, samples []int16, sel Selection) *Job {
	t.Helper()

	in, err := pcm.FromSamples(samples, testRate, 1)
	if err != nil {
		t.Fatalf("FromSamples() error = %v", err)
	}

	return &Job{ID: t.Name(), Input: in, Selection: sel}
}

// applyInOrder runs the given stages on a copy of samples the way a chain
// would, without going through Chain.
func applyInOrder(t *testing.T, samples []int16, fx ...Effect) []int16 {
	t.Helper()

	buf, err := pcm.FromSamples(samples, testRate, 1)
	if err != nil {
		t.Fatalf("FromSamples() error = %v", err)
	}

	for _, e := range fx {
		if err := e.apply(buf); err != nil {
			t.Fatalf("%s: %v", e.Kind(), err)
		}
	}

	return buf.Samples()
}
