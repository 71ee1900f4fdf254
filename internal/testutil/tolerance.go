package testutil

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

// Buffer wraps a copy of samples in a mono pcm.Buffer at sampleRate and
// fails t if that is not possible.
func Buffer(t testing.TB, samples []int16, sampleRate int) *pcm.Buffer {
	t.Helper()
	buf, err := pcm.FromSamples(samples, sampleRate, 1)
	if err != nil {
		t.Fatalf("FromSamples() error = %v", err)
	}
	return buf
}

// RequireSamplesWithin fails t if got and want differ in length or if any
// sample pair is more than steps apart.
func RequireSamplesWithin(t testing.TB, got, want []int16, steps int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := absDiff(got[i], want[i])
		if diff > steps {
			t.Fatalf("index %d: got %d, want %d (diff %d > %d)", i, got[i], want[i], diff, steps)
		}
	}
}

// RequireSilent fails t if any sample is non-zero.
func RequireSilent(t testing.TB, data []int16) {
	t.Helper()
	for i, v := range data {
		if v != 0 {
			t.Fatalf("index %d: got %d, want silence", i, v)
		}
	}
}

// MaxAbsDiff returns the largest sample distance between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []int16) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0
	for i := range a {
		maxDiff = max(maxDiff, absDiff(a[i], b[i]))
	}
	return maxDiff, nil
}

func absDiff(a, b int16) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
