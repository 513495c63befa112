// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audxfade/utils"
)

// Resampler streams from src at a different sample rate using cubic
// interpolation. Works on interleaved samples; preserves channel count.
// Equal rates pass samples through untouched. Downsampling runs the input
// through a one-pole low-pass first.
type Resampler struct {
	src      Source
	rate     int
	channels int
	step     float64 // source frames per output frame

	// win holds frames t-1, t0, t+1, t+2 around the read position.
	win  [4][]float32
	real [4]bool
	pos  float64 // fractional position between win[1] and win[2]

	primed bool

	block    []float32
	blockPos int
	blockLen int
	srcEOF   bool

	lowpass []float32
	alpha   float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	ch := src.Channels()

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		channels: ch,
		step:     float64(src.SampleRate()) / float64(dstRate),
		block:    make([]float32, max(ch, 4096-4096%max(ch, 1))),
	}

	for i := range r.win {
		r.win[i] = make([]float32, ch)
	}

	if r.step > 1 {
		r.lowpass = make([]float32, ch)
		r.alpha = 0.5
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame copies one source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	for r.blockPos >= r.blockLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.block)
		r.blockPos = 0
		r.blockLen = n - n%r.channels

		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.block[r.blockPos:r.blockPos+r.channels])
	r.blockPos += r.channels

	if r.lowpass != nil {
		if !r.primed {
			copy(r.lowpass, dst)
		}
		for c, v := range dst {
			y := r.alpha*v + (1-r.alpha)*r.lowpass[c]
			r.lowpass[c] = y
			dst[c] = y
		}
	}

	return true, nil
}

// load fills window slot i, duplicating slot i-1 when the source has ended.
func (r *Resampler) load(i int) error {
	ok, err := r.nextFrame(r.win[i])
	if err != nil {
		return err
	}

	r.real[i] = ok
	if !ok {
		copy(r.win[i], r.win[i-1])
	}

	return nil
}

func (r *Resampler) prime() error {
	ok, err := r.nextFrame(r.win[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}

	r.primed = true
	r.real[1] = true
	copy(r.win[0], r.win[1])

	if err := r.load(2); err != nil {
		return err
	}

	return r.load(3)
}

func (r *Resampler) advance() error {
	r.win[0], r.win[1], r.win[2], r.win[3] = r.win[1], r.win[2], r.win[3], r.win[0]
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]

	return r.load(3)
}

// ReadSamples produces samples at the destination rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.step == 1 {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	want := len(dst) / r.channels
	frames := 0

	for frames < want {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return frames * r.channels, err
			}
		}

		if !r.real[2] {
			return frames * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[frames*r.channels : (frames+1)*r.channels]

		for c := range out {
			out[c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], x)
		}

		frames++
		r.pos += r.step
	}

	return frames * r.channels, nil
}
