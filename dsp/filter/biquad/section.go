package biquad

// Coefficients holds the transfer function coefficients for a single
// second-order section. The leading feedback coefficient a0 is normalized
// to 1 and not stored.
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Section is a Direct Form I biquad. Index 0 of each history holds the
// most recent sample.
type Section struct {
	Coefficients

	x [3]float64
	y [3]float64
}

// NewSection returns a Section with the given coefficients and zero history.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample shifts the histories, filters one input sample and returns
// the output.
func (s *Section) ProcessSample(in float64) float64 {
	s.x[2], s.x[1], s.x[0] = s.x[1], s.x[0], in
	s.y[2], s.y[1] = s.y[1], s.y[0]

	s.y[0] = s.B0*s.x[0] + s.B1*s.x[1] + s.B2*s.x[2] -
		s.A1*s.y[1] - s.A2*s.y[2]

	return s.y[0]
}

// ProcessBlock filters buf in place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// History returns copies of the input and output histories.
func (s *Section) History() (x, y [3]float64) {
	return s.x, s.y
}
