// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audxfade/audio"
	"github.com/ik5/audxfade/utils"
)

// pcmFormat is the WAVE format tag for linear PCM.
const pcmFormat = 1

// pcmReader is the part of wav.Decoder a source needs.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	buf        *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) BufSize() int {
	if s.buf == nil {
		return 4096
	}
	return cap(s.buf.Data)
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{Data: make([]int, len(dst))}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("wav: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	// 8 bit WAV samples are unsigned
	var bias int
	if s.bitDepth == 8 {
		bias = 128
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.IntToFloat32(v-bias, s.bitDepth)
	}

	return n, nil
}

// Decoder reads linear PCM WAV files of 8, 16, 24 or 32 bits.
type Decoder struct{}

// Decode parses the header and leaves r positioned at the sample data.
// Readers that cannot seek locally are read into memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   int(dec.BitDepth),
	}, nil
}

// Register adds the decoder to r under "wav".
func Register(r *audio.Registry) {
	r.Register("wav", Decoder{})
}

// seekable returns r itself when it is a local io.ReadSeeker. Network
// transports may refuse to seek, so they are buffered like plain readers.
func seekable(r io.Reader) (io.ReadSeeker, error) {
	if _, remote := r.(audio.Transport); !remote {
		if rs, ok := r.(io.ReadSeeker); ok {
			return rs, nil
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	return bytes.NewReader(data), nil
}
