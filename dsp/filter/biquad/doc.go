// Package biquad provides the second-order IIR filter section used by the
// low-pass and high-pass stages.
//
// A [Section] implements Direct Form I processing with explicit three-sample
// input and output histories. Sections are meant to be short-lived values:
// build one per buffer pass, run it, drop it. Nothing carries over between
// passes, so filtering the same buffer twice starts from a cold state both
// times.
//
// Coefficient design lives in dsp/filter/design.
package biquad
