// Package delay provides a circular float64 delay line.
package delay

import (
	"fmt"

	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

// Line is a circular delay line. Reading the full length returns the
// oldest sample, which is the slot the next Write overwrites.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a zeroed delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: delay size must be > 0: %d", pcm.ErrInvalidArgument, size)
	}

	buf, err := pcm.MakeFloats(size)
	if err != nil {
		return nil, err
	}

	return &Line{buffer: buf}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample and advances the write position.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Oldest returns the sample written Len() writes ago.
func (d *Line) Oldest() float64 {
	return d.buffer[d.writePos]
}
