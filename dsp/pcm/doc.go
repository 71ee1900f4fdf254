// Package pcm provides the signed 16-bit sample buffer shared by every
// stage of the effect engine, plus the lossy conversions between int16
// samples and normalized float64 samples in [-1, 1].
//
// A [Buffer] separates capacity from the active length. Regions that are
// allocated or exposed by growth are always silence until written, and
// the length never exceeds the capacity. Channel interleaving is left to
// the caller: all processing treats the samples as a flat sequence.
package pcm
