package delay

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(0); !errors.Is(err, pcm.ErrInvalidArgument) {
		t.Fatalf("New(0) error = %v, want ErrInvalidArgument", err)
	}

	if _, err := New(-1); err == nil {
		t.Fatal("expected error for size=-1")
	}
}

func TestOldestTracksFullLength(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", d.Len())
	}

	// After a full cycle the oldest sample is the first one written.
	for i := 1; i <= 4; i++ {
		d.Write(float64(i))
	}

	if d.Oldest() != 1 {
		t.Fatalf("Oldest() = %v, want 1", d.Oldest())
	}

	d.Write(5)

	if d.Oldest() != 2 {
		t.Fatalf("Oldest() after wrap = %v, want 2", d.Oldest())
	}
}

func TestOldestIsNextOverwrite(t *testing.T) {
	d, _ := New(3)

	out := make([]float64, 0, 6)
	for i := 1; i <= 6; i++ {
		out = append(out, d.Oldest())
		d.Write(float64(i))
	}

	want := []float64{0, 0, 0, 1, 2, 3}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("step %d: got %v, want %v", i, out[i], want[i])
		}
	}
}
