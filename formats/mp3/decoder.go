// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audxfade/audio"
	"github.com/ik5/audxfade/utils"
)

// go-mp3 always produces 16 bit little endian stereo.
const (
	channels   = 2
	frameBytes = channels * 2
)

// pcmReader is the part of gomp3.Decoder a source needs.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        pcmReader
	sampleRate int
	buf        []byte
	err        error // held back until the samples read with it are consumed
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) / channels * frameBytes
	if need == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf)
	// complete the last frame so that channels stay aligned
	if rem := n % frameBytes; rem != 0 && err == nil {
		var m int
		m, err = io.ReadFull(s.dec, s.buf[n:n+frameBytes-rem])
		n += m
	}

	samples := n / 2
	for i := range samples {
		dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}

	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.err = io.EOF
	default:
		s.err = fmt.Errorf("mp3: %w", err)
	}

	if samples == 0 {
		return 0, s.err
	}

	return samples, nil
}

// Decoder decodes MPEG-1/2 layer III into stereo float32 samples. Mono files
// come out with both channels equal.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(audio.Sequential(r))
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}

// Register adds the decoder to r under "mp3".
func Register(r *audio.Registry) {
	r.Register("mp3", Decoder{})
}
