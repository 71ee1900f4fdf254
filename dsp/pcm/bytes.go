package pcm

import "encoding/binary"

// FromBytes decodes little-endian signed 16-bit PCM. A trailing odd byte
// is ignored.
func FromBytes(data []byte, sampleRate, channels int) (*Buffer, error) {
	n := len(data) / 2

	b, err := New(n, sampleRate, channels)
	if err != nil {
		return nil, err
	}

	for i := range n {
		b.data[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}

	b.length = n

	return b, nil
}

// Bytes encodes the active region as little-endian signed 16-bit PCM.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 2*b.length)
	for i, s := range b.data[:b.length] {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}

	return out
}
