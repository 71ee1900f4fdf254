package pcm

import "math"

const (
	toFloatScale   = 1.0 / 32768.0
	fromFloatScale = 32767.0
)

// ToFloat converts int16 samples to float64 in [-1, 1) by scaling with
// 1/32768. It converts min(len(dst), len(src)) samples and returns that
// count.
func ToFloat(dst []float64, src []int16) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float64(src[i]) * toFloatScale
	}

	return n
}

// FromFloat converts normalized float64 samples back to int16 by scaling
// with 32767 and saturating. It returns the number of converted samples.
//
// Because the two directions use different scales, a round trip through
// ToFloat and FromFloat reproduces each sample within one step.
func FromFloat(dst []int16, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = ClampSample(src[i] * fromFloatScale)
	}

	return n
}

// Floats allocates a scratch slice and fills it with the normalized form
// of src.
func Floats(src []int16) ([]float64, error) {
	out, err := MakeFloats(len(src))
	if err != nil {
		return nil, err
	}

	ToFloat(out, src)

	return out, nil
}

// ClampSample rounds x half away from zero and saturates it to the int16
// range. NaN maps to silence.
func ClampSample(x float64) int16 {
	switch {
	case math.IsNaN(x):
		return 0
	case x > math.MaxInt16:
		return math.MaxInt16
	case x < math.MinInt16:
		return math.MinInt16
	}

	return int16(math.Round(x))
}

// Lerp interpolates linearly between a and b at t.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
