// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources for tests.
//
// The sources satisfy audio.Source without importing it, so tests inside the
// audio package can use them too.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// Synth generates frames from a waveform function.
type Synth struct {
	rate     int
	channels int
	frames   int // total frames
	pos      int // frames generated so far
	wave     func(frame, ch int) float32
	closed   bool
	fail     error // returned instead of io.EOF
}

// New creates a source of frames frames. wave returns the value of channel ch
// at frame index frame.
func New(rate, channels, frames int, wave func(frame, ch int) float32) *Synth {
	return &Synth{
		rate:     rate,
		channels: channels,
		frames:   frames,
		wave:     wave,
	}
}

func Silence(rate, channels, frames int) *Synth {
	return Constant(rate, channels, frames, 0)
}

func Constant(rate, channels, frames int, v float32) *Synth {
	return New(rate, channels, frames, func(int, int) float32 { return v })
}

func Sine(rate, channels, frames int, freq float64) *Synth {
	return New(rate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(rate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	})
}

// Channels returns a source where every channel holds its own constant value
// (0.1, 0.2, ...), handy for checking channel routing.
func Channels(rate, channels, frames int) *Synth {
	return New(rate, channels, frames, func(_, ch int) float32 {
		return float32(ch+1) / 10
	})
}

// FromSamples serves the given interleaved samples once.
func FromSamples(rate, channels int, samples []float32) *Synth {
	return New(rate, channels, len(samples)/channels, func(frame, ch int) float32 {
		return samples[frame*channels+ch]
	})
}

func (s *Synth) SampleRate() int { return s.rate }
func (s *Synth) Channels() int   { return s.channels }
func (s *Synth) BufSize() int    { return 4096 }

func (s *Synth) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *Synth) Closed() bool { return s.closed }

// Reset rewinds to the first frame.
func (s *Synth) Reset() { s.pos = 0 }

func (s *Synth) ReadSamples(dst []float32) (int, error) {
	end := io.EOF
	if s.fail != nil {
		end = s.fail
	}

	if s.pos >= s.frames {
		return 0, end
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)

	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.pos+f, ch)
		}
	}

	s.pos += n

	if s.pos >= s.frames && s.fail == nil {
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}

// ErrBroken is returned by a Broken source.
var ErrBroken = errors.New("audiotest: broken source")

// Broken returns a source that serves frames good frames and then fails.
func Broken(rate, channels, frames int) *Synth {
	s := Constant(rate, channels, frames, 0.25)
	s.fail = ErrBroken
	return s
}

// Reader is the read half of audio.Source.
type Reader interface {
	ReadSamples(dst []float32) (int, error)
}

// ReadAll drains r in chunks of chunk samples.
func ReadAll(r Reader, chunk int) ([]float32, error) {
	buf := make([]float32, chunk)

	var out []float32

	for {
		n, err := r.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
