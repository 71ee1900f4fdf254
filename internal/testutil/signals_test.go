package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(1000, 48000, 10000, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	// Phase 0 starts at zero.
	if s[0] != 0 {
		t.Fatalf("s[0] = %d, want 0", s[0])
	}
	for i, v := range s {
		if v < -10000 || v > 10000 {
			t.Fatalf("s[%d] = %d out of range", i, v)
		}
	}
	// Quarter period of 1 kHz at 48 kHz is 12 samples.
	if s[12] != 10000 {
		t.Fatalf("s[12] = %d, want 10000", s[12])
	}
}

func TestSineFullScale(t *testing.T) {
	s := Sine(440, 44100, math.MaxInt16, 200)
	for i, v := range s {
		if v == math.MinInt16 {
			t.Fatalf("s[%d] reached MinInt16", i)
		}
	}
}

func TestNoiseReproducible(t *testing.T) {
	a := Noise(42, 1000, 64)
	b := Noise(42, 1000, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		if a[i] < -1000 || a[i] > 1000 {
			t.Fatalf("a[%d] = %d out of range", i, a[i])
		}
	}
}

func TestNoiseDifferentSeeds(t *testing.T) {
	a := Noise(1, 1000, 64)
	b := Noise(2, 1000, 64)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	s := Impulse(8, 3, 500)
	for i, v := range s {
		want := int16(0)
		if i == 3 {
			want = 500
		}
		if v != want {
			t.Fatalf("s[%d] = %d, want %d", i, v, want)
		}
	}
	RequireSilent(t, Impulse(4, 9, 500))
}

func TestDC(t *testing.T) {
	for i, v := range DC(-7, 5) {
		if v != -7 {
			t.Fatalf("s[%d] = %d, want -7", i, v)
		}
	}
}
