// Package wavfile frames 16-bit PCM buffers as canonical RIFF/WAVE files
// and reads them back.
package wavfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-fxworker/dsp/pcm"
)

const (
	bitDepth     = 16
	formatPCM    = 1
	headerLength = 44
)

// ErrFormat is returned by Decode for input that is not 16-bit PCM WAVE.
var ErrFormat = errors.New("wavfile: unsupported format")

// Encode returns buf as a WAVE file: a 44-byte header followed by the
// little-endian samples. The buffer's sample rate and channel count go
// into the fmt chunk.
func Encode(buf *pcm.Buffer) ([]byte, error) {
	if buf == nil || buf.Len() == 0 {
		return nil, fmt.Errorf("wavfile: no samples to encode: %w", pcm.ErrInvalidArgument)
	}

	if buf.SampleRate <= 0 || buf.Channels <= 0 {
		return nil, fmt.Errorf("wavfile: format %d Hz x %d: %w", buf.SampleRate, buf.Channels, pcm.ErrInvalidArgument)
	}

	samples := buf.Samples()
	data := make([]int, len(samples))

	for i, s := range samples {
		data[i] = int(s)
	}

	ws := &writeSeeker{buf: make([]byte, 0, headerLength+2*len(samples))}
	enc := wav.NewEncoder(ws, buf.SampleRate, bitDepth, buf.Channels, formatPCM)

	err := enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: buf.Channels, SampleRate: buf.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("wavfile: write samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("wavfile: finalize header: %w", err)
	}

	return ws.buf, nil
}

// Decode reads a 16-bit PCM WAVE stream into a buffer carrying the file's
// sample rate and channel count.
func Decode(r io.ReadSeeker) (*pcm.Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a PCM WAVE file", ErrFormat)
	}

	if dec.BitDepth != bitDepth {
		return nil, fmt.Errorf("%w: %d-bit samples", ErrFormat, dec.BitDepth)
	}

	ib, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavfile: read samples: %w", err)
	}

	out, err := pcm.New(len(ib.Data), int(dec.SampleRate), int(dec.NumChans))
	if err != nil {
		return nil, err
	}

	if err := out.SetLen(len(ib.Data)); err != nil {
		return nil, err
	}

	s := out.Samples()
	for i, v := range ib.Data {
		s[i] = int16(v)
	}

	return out, nil
}

// DecodeBytes is Decode over an in-memory file.
func DecodeBytes(data []byte) (*pcm.Buffer, error) {
	return Decode(bytes.NewReader(data))
}
