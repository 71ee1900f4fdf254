package pcm

import "fmt"

// Buffer owns a sequence of signed 16-bit samples together with the
// sample rate and channel count they were recorded at.
//
// The backing slice always has len == capacity; only the first Len()
// samples are active.
type Buffer struct {
	data   []int16
	length int

	SampleRate int
	Channels   int
}

// New returns an empty Buffer with the given capacity, pre-filled with
// silence.
func New(capacity, sampleRate, channels int) (*Buffer, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: negative capacity %d", ErrInvalidArgument, capacity)
	}

	data, err := MakeSamples(capacity)
	if err != nil {
		return nil, err
	}

	return &Buffer{data: data, SampleRate: sampleRate, Channels: channels}, nil
}

// FromSamples returns a Buffer holding a copy of samples. Length and
// capacity both equal len(samples).
func FromSamples(samples []int16, sampleRate, channels int) (*Buffer, error) {
	b, err := New(len(samples), sampleRate, channels)
	if err != nil {
		return nil, err
	}

	copy(b.data, samples)
	b.length = len(samples)

	return b, nil
}

// Len returns the number of active samples.
func (b *Buffer) Len() int {
	return b.length
}

// Cap returns the number of allocated samples.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Samples returns the active region. The slice aliases the buffer, so
// writes through it are visible to the buffer.
func (b *Buffer) Samples() []int16 {
	return b.data[:b.length]
}

// Resize reallocates the buffer to newCapacity samples. Growth zero-fills
// the new tail; shrinking below the current length truncates the length.
// On failure the buffer is left unmodified.
func (b *Buffer) Resize(newCapacity int) error {
	if newCapacity < 0 {
		return fmt.Errorf("%w: negative capacity %d", ErrInvalidArgument, newCapacity)
	}

	if newCapacity == len(b.data) {
		return nil
	}

	data, err := MakeSamples(newCapacity)
	if err != nil {
		return err
	}

	copy(data, b.data)
	b.data = data

	if b.length > newCapacity {
		b.length = newCapacity
	}

	return nil
}

// SetLen changes the active length without reallocating. Samples exposed
// by a longer length are zeroed, even when the backing array held older
// data.
func (b *Buffer) SetLen(n int) error {
	if n < 0 || n > len(b.data) {
		return fmt.Errorf("%w: length %d outside capacity %d", ErrInvalidArgument, n, len(b.data))
	}

	for i := b.length; i < n; i++ {
		b.data[i] = 0
	}

	b.length = n

	return nil
}

// Copy copies the active region of src into dst, growing dst when its
// capacity is smaller than src's length. Sample rate and channel count
// are propagated.
func Copy(dst, src *Buffer) error {
	if dst == nil || src == nil {
		return fmt.Errorf("%w: copy needs both buffers", ErrInvalidArgument)
	}

	if dst.Cap() < src.length {
		if err := dst.Resize(src.length); err != nil {
			return err
		}
	}

	copy(dst.data, src.data[:src.length])
	dst.length = src.length
	dst.SampleRate = src.SampleRate
	dst.Channels = src.Channels

	return nil
}
