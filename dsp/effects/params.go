package effects

const (
	defaultLowPassCutoffHz  = 2000
	defaultHighPassCutoffHz = 300
	defaultFilterOrder      = 4

	defaultRoomSize = 0.7
	defaultDamping  = 0.5
	defaultWetLevel = 0.3

	defaultEchoDelayMs   = 300
	defaultEchoDecay     = 0.5
	defaultEchoRepeats   = 3
	maxEchoRepeats       = 5
	echoMixLevel         = 0.5
	defaultSemitones     = 3
	defaultDriveGain     = 2.5
	defaultDriveThresh   = 0.7
	minDriveThreshold    = 1e-6
	normalizeTargetRatio = 0.95
)

// FilterParams configures the low-pass and high-pass stages.
//
// Order is carried for callers that record it; the stage always runs a
// single second-order section.
type FilterParams struct {
	CutoffFreq float64
	Order      int
}

// ReverbParams configures the feedback reverb.
type ReverbParams struct {
	RoomSize float64 // scales the delay length; 1.0 is 100 ms
	Damping  float64 // feedback is Damping/2
	WetLevel float64 // 0 is dry, 1 is fully wet
}

// EchoParams configures the multi-tap echo.
type EchoParams struct {
	DelayMs     float64
	Decay       float64
	RepeatCount int // taps beyond five are ignored
}

// PitchParams configures the pitch shifter.
type PitchParams struct {
	Semitones float64
}

// DistortionParams configures the tanh waveshaper.
type DistortionParams struct {
	Gain      float64
	Threshold float64
}

// DefaultLowPass returns the low-pass defaults: 2 kHz, order 4.
func DefaultLowPass() FilterParams {
	return FilterParams{CutoffFreq: defaultLowPassCutoffHz, Order: defaultFilterOrder}
}

// DefaultHighPass returns the high-pass defaults: 300 Hz, order 4.
func DefaultHighPass() FilterParams {
	return FilterParams{CutoffFreq: defaultHighPassCutoffHz, Order: defaultFilterOrder}
}

// DefaultReverb returns the reverb defaults.
func DefaultReverb() ReverbParams {
	return ReverbParams{RoomSize: defaultRoomSize, Damping: defaultDamping, WetLevel: defaultWetLevel}
}

// DefaultEcho returns the echo defaults: 300 ms, decay 0.5, three repeats.
func DefaultEcho() EchoParams {
	return EchoParams{DelayMs: defaultEchoDelayMs, Decay: defaultEchoDecay, RepeatCount: defaultEchoRepeats}
}

// DefaultPitch returns a shift of three semitones up.
func DefaultPitch() PitchParams {
	return PitchParams{Semitones: defaultSemitones}
}

// DefaultDistortion returns gain 2.5 with threshold 0.7.
func DefaultDistortion() DistortionParams {
	return DistortionParams{Gain: defaultDriveGain, Threshold: defaultDriveThresh}
}
