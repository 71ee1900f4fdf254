// Package design provides the RBJ-style biquad coefficient designers used
// by the filter stages.
//
// The designers evaluate the textbook formulas directly. They do not clamp
// the cutoff against Nyquist: a cutoff at or above sampleRate/2 yields
// whatever the trigonometry produces, so callers validate cutoffs first.
package design
