// Package effects implements the in-place PCM stages applied by an effect
// chain: low-pass and high-pass biquads, a single-tap feedback reverb, a
// multi-tap echo, a resampling pitch shifter, tanh distortion and a peak
// normalizer.
//
// Every stage takes a *pcm.Buffer and its parameter set, rewrites the
// active samples in place and reports failures wrapped around the pcm
// sentinels:
//
//   - pcm.ErrInvalidArgument for a nil or empty buffer, missing
//     parameters, or non-finite parameter values
//   - pcm.ErrAllocation when scratch memory cannot be obtained
//   - pcm.ErrEffect when the stage's own precondition does not hold
//
// Stages that convert to floating point scale with 1/32768 on the way in
// and 32767 on the way out, so a stage that computes the identity may
// still move each sample by one step.
package effects
