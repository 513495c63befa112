// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audxfade/utils"
)

// Encoder writes interleaved float32 samples as a 16 bit PCM WAV file. The
// header sizes are patched on Close, so the destination must seek.
type Encoder struct {
	enc    *wav.Encoder
	buf    *goaudio.IntBuffer
	closed bool
}

func NewEncoder(w io.WriteSeeker, sampleRate, channels int) (*Encoder, error) {
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}

	return &Encoder{
		enc: wav.NewEncoder(w, sampleRate, 16, channels, pcmFormat),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}, nil
}

// Write appends samples. A trailing partial frame is dropped.
func (e *Encoder) Write(samples []float32) error {
	if e.closed {
		return ErrClosed
	}

	ch := e.buf.Format.NumChannels
	n := len(samples) - len(samples)%ch
	if n == 0 {
		return nil
	}

	if cap(e.buf.Data) < n {
		e.buf.Data = make([]int, n)
	}
	e.buf.Data = e.buf.Data[:n]

	for i, v := range samples[:n] {
		e.buf.Data[i] = int(utils.Float32ToInt16(v))
	}

	if err := e.enc.Write(e.buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}

	return nil
}

// Close finalizes the header. It does not close the underlying writer.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	// an empty file still needs a data chunk
	if e.enc.WrittenBytes == 0 {
		e.buf.Data = e.buf.Data[:0]
		if err := e.enc.Write(e.buf); err != nil {
			return fmt.Errorf("wav: %w", err)
		}
	}

	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}

	return nil
}
