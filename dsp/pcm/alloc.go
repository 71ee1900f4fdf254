package pcm

import "fmt"

// MaxSamples bounds a single sample allocation. It is the largest sample
// count a 16-bit RIFF data chunk can describe.
const MaxSamples = 1<<31 - 1

// MakeSamples allocates n zeroed int16 samples.
func MakeSamples(n int) ([]int16, error) {
	if err := checkAlloc(n); err != nil {
		return nil, err
	}

	return make([]int16, n), nil
}

// MakeFloats allocates n zeroed float64 scratch samples.
func MakeFloats(n int) ([]float64, error) {
	if err := checkAlloc(n); err != nil {
		return nil, err
	}

	return make([]float64, n), nil
}

func checkAlloc(n int) error {
	if n < 0 || n > MaxSamples {
		return fmt.Errorf("%w: %d samples", ErrAllocation, n)
	}

	return nil
}
