package analysis

import "math"

type levels struct {
	peak          float64
	rms           float64
	zeroCrossings int
}

// levelsOf gathers peak, RMS and sign changes in one pass.
func levelsOf(signal []float64) levels {
	if len(signal) == 0 {
		return levels{}
	}

	var (
		sumSq         float64
		maxVal        = signal[0]
		minVal        = signal[0]
		zeroCrossings int
	)

	for i, x := range signal {
		sumSq += x * x

		maxVal = math.Max(maxVal, x)
		minVal = math.Min(minVal, x)

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	return levels{
		peak:          math.Max(math.Abs(maxVal), math.Abs(minVal)),
		rms:           math.Sqrt(sumSq / float64(len(signal))),
		zeroCrossings: zeroCrossings,
	}
}
