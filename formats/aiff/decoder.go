// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audxfade/audio"
	"github.com/ik5/audxfade/utils"
)

// pcmReader is the part of aiff.Decoder a source needs.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	buf        *goaudio.IntBuffer
	err        error
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
	if s.err != nil {
		return 0, s.err
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < len(dst) {
		s.buf = &goaudio.IntBuffer{Data: make([]int, len(dst))}
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	switch {
	case err == nil:
		if n == 0 {
			s.err = io.EOF
		}
	case err == io.EOF:
		s.err = io.EOF
	default:
		s.err = fmt.Errorf("aiff: %w", err)
	}

	// AIFF samples are signed at every depth
	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.IntToFloat32(v, s.bitDepth)
	}

	if n == 0 {
		return 0, s.err
	}

	return n, nil
}

// Decoder reads uncompressed AIFF files of 8, 16, 24 or 32 bits.
type Decoder struct{}

// Decode parses the header. Readers that cannot seek locally are read into
// memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if _, remote := r.(audio.Transport); !ok || remote {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, ErrUnsupportedLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}

// Register adds the decoder to r under "aiff" and "aif".
func Register(r *audio.Registry) {
	r.Register("aiff", Decoder{})
	r.Register("aif", Decoder{})
}
