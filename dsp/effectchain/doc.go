// Package effectchain applies a selection of effect stages to a PCM clip in
// a fixed order and then normalizes the result.
//
// The evaluation order is LowPass, HighPass, Reverb, Echo, PitchShift,
// Distortion. A Selection holds at most one Effect per Kind; each Effect
// variant carries its own parameter set from package effects. Named
// selections, as received in job metadata, are resolved through a
// Registry whose factories fill in documented defaults for any missing or
// unusable parameter.
//
// A Chain keeps no per-call state and may be shared between goroutines as
// long as every call works on its own Job.
package effectchain
