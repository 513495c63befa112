// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audxfade/audio"
)

// oggReader is the part of oggvorbis.Reader a source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec      oggReader
	channels int
	err      error
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// ReadSamples decodes straight into dst. oggvorbis counts values, not frames,
// and never splits a frame.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if len(dst) == 0 {
		return 0, nil
	}

	dst = dst[:len(dst)/s.channels*s.channels]
	if len(dst) == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	for {
		n, err := s.dec.Read(dst)

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			s.err = io.EOF
		default:
			s.err = fmt.Errorf("vorbis: %w", err)
		}

		if n > 0 || s.err != nil {
			if n == 0 {
				return 0, s.err
			}
			return n, nil
		}
	}
}

// Decoder decodes Ogg Vorbis.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(audio.Sequential(r))
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}

	if dec.Channels() <= 0 {
		return nil, audio.ErrInvalidChannels
	}

	return &source{dec: dec, channels: dec.Channels()}, nil
}

// Register adds the decoder to r under "ogg" and "vorbis".
func Register(r *audio.Registry) {
	r.Register("ogg", Decoder{})
	r.Register("vorbis", Decoder{})
}
