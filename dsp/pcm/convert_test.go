package pcm

import (
	"math"
	"testing"
)

func TestClampSample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{0.5, 1},
		{-0.5, -1},
		{1.49, 1},
		{-2.5, -3},
		{32766.6, 32767},
		{32767.4, 32767},
		{40000, 32767},
		{-32768.4, -32768},
		{-1e9, -32768},
		{math.Inf(1), 32767},
		{math.Inf(-1), -32768},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := ClampSample(tt.in); got != tt.want {
			t.Errorf("ClampSample(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToFloatScale(t *testing.T) {
	t.Parallel()

	dst := make([]float64, 3)
	n := ToFloat(dst, []int16{-32768, 16384, 0})

	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}

	if dst[0] != -1 || dst[1] != 0.5 || dst[2] != 0 {
		t.Fatalf("unexpected conversion: %v", dst)
	}
}

func TestRoundTripWithinOneStep(t *testing.T) {
	t.Parallel()

	src := make([]int16, 0, 65536)
	for v := math.MinInt16; v <= math.MaxInt16; v++ {
		src = append(src, int16(v))
	}

	floats, err := Floats(src)
	if err != nil {
		t.Fatalf("Floats: %v", err)
	}

	back := make([]int16, len(src))
	FromFloat(back, floats)

	for i := range src {
		diff := int(back[i]) - int(src[i])
		if diff < -1 || diff > 1 {
			t.Fatalf("sample %d: round trip gave %d (diff %d)", src[i], back[i], diff)
		}
	}
}

func TestConvertShortDestination(t *testing.T) {
	t.Parallel()

	dst := make([]int16, 1)
	if n := FromFloat(dst, []float64{0.5, 0.5}); n != 1 {
		t.Fatalf("n = %d, want 1", n)
	}

	if dst[0] != 16384 {
		t.Fatalf("dst[0] = %d, want 16384", dst[0])
	}
}

func TestLerp(t *testing.T) {
	t.Parallel()

	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Fatalf("Lerp = %v, want 12.5", got)
	}
}
