// SPDX-License-Identifier: EPL-2.0

package crossfade

import (
	"github.com/sirupsen/logrus"

	"github.com/ik5/audxfade/audio"
	"github.com/ik5/audxfade/utils"
)

// Notifier is told when a faded tail has to be dropped because the next track
// has a different format.
type Notifier func(prev, next Format)

// Engine crossfades consecutive tracks of interleaved float32 PCM.
//
// Calls must be serialized by the caller; the engine takes no locks.
type Engine struct {
	cfg     Config
	pending *Config

	state  State
	format Format

	buf       []float32 // len(buf) == cap(buf); filled marks the used part
	filled    int
	prefilled int // samples of the new track mixed into buf so far
	full      int // overlap window in samples

	out []float32

	notify Notifier
	hook   func(from, to State)
	log    logrus.FieldLogger
}

var _ audio.Effect = (*Engine)(nil)

type Option func(*Engine)

// WithNotifier replaces the default mismatch warning.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notify = n }
}

// WithStateHook calls fn on every state change.
func WithStateHook(fn func(from, to State)) Option {
	return func(e *Engine) { e.hook = fn }
}

// WithLogger sets the logger of the default notifier.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithPreallocate reserves room for samples samples up front.
func WithPreallocate(samples int) Option {
	return func(e *Engine) {
		if samples > 0 {
			e.buf = make([]float32, samples)
			e.out = make([]float32, 0, samples)
		}
	}
}

func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		log: logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.notify == nil {
		e.notify = func(prev, next Format) {
			e.log.WithFields(logrus.Fields{
				"previous": prev.String(),
				"next":     next.String(),
			}).Warn("crossfade: format changed between tracks, dropping the faded tail")
		}
	}

	return e
}

func (e *Engine) State() State { return e.state }

// Buffered returns the number of samples held back.
func (e *Engine) Buffered() int { return e.filled }

func (e *Engine) Config() Config { return e.cfg }

// SetConfig takes effect at the next Start.
func (e *Engine) SetConfig(cfg Config) {
	e.pending = &cfg
}

func (e *Engine) setState(to State) {
	from := e.state
	e.state = to

	if from != to && e.hook != nil {
		e.hook(from, to)
	}
}

// Start begins a track. A faded tail from the previous track is kept when the
// format matches, otherwise it is dropped.
func (e *Engine) Start(channels, rate int) {
	next := Format{Channels: channels, Rate: rate}

	if e.state != Between || next != e.format {
		if e.state == Between {
			e.notify(e.format, next)
		}
		e.filled = 0
	}

	if e.pending != nil {
		e.cfg = *e.pending
		e.pending = nil
	}

	e.format = next
	e.full = e.cfg.window(channels, rate)
	e.prefilled = 0
	e.setState(Prebuffer)
}

// Process feeds in and returns whatever is ready to be played. The result is
// owned by the engine and valid until the next call. in is not modified.
func (e *Engine) Process(in []float32) []float32 {
	e.add(in)
	return e.ready()
}

// Flush drops buffered audio, for seeks and skips within a track.
func (e *Engine) Flush() {
	if e.state == Prebuffer || e.state == Running {
		e.filled = 0
		e.setState(Running)
	}
}

// Finish ends the current track, or the whole session when called again.
func (e *Engine) Finish(in []float32) ([]float32, audio.FinishStatus) {
	switch e.state {
	case Prebuffer, Running:
		return e.FinishTrack(in), audio.FinishPending
	case Between:
		return e.drain(in), audio.FinishDone
	}

	return e.out[:0], audio.FinishDone
}

// FinishTrack releases what is ready, fades everything still buffered out and
// waits for the next Start.
func (e *Engine) FinishTrack(in []float32) []float32 {
	if e.state != Prebuffer && e.state != Running {
		return e.out[:0]
	}

	e.add(in)
	out := e.ready()

	utils.Ramp(e.buf[:e.filled], 1, e.cfg.FadeOutEnd)
	e.setState(Between)

	return out
}

// Drain hands out the faded tail at the end of playback.
func (e *Engine) Drain() []float32 {
	if e.state != Between {
		return e.out[:0]
	}

	return e.drain(nil)
}

func (e *Engine) drain(in []float32) []float32 {
	e.setState(Stopping)

	n := e.filled + len(in)
	e.growOut(n)
	out := e.out[:n]
	copy(out, e.buf[:e.filled])
	copy(out[e.filled:], in)

	e.filled = 0
	e.setState(Off)

	return out
}

// Cleanup releases the buffers.
func (e *Engine) Cleanup() {
	e.buf = nil
	e.out = nil
	e.filled = 0
	e.prefilled = 0
	e.setState(Off)
}

func (e *Engine) add(in []float32) {
	if e.state == Prebuffer {
		in = e.prebuffer(in)
	}

	if e.state == Running && len(in) > 0 {
		e.grow(e.filled + len(in))
		copy(e.buf[e.filled:], in)
		e.filled += len(in)
	}
}

// prebuffer ramps the head of the new track in and mixes it over the tail.
// It returns the part of in left for the running state.
func (e *Engine) prebuffer(in []float32) []float32 {
	if e.prefilled < e.full && len(in) > 0 {
		n := min(len(in), e.full-e.prefilled)
		a := e.fadeIn(e.prefilled)
		b := e.fadeIn(e.prefilled + n)

		if end := e.prefilled + n; e.filled < end {
			e.grow(end)
			clear(e.buf[e.filled:end])
			e.filled = end
		}

		dst := e.buf[e.prefilled : e.prefilled+n]
		for i, v := range in[:n] {
			dst[i] += v * utils.RampGain(a, b, i, n)
		}

		e.prefilled += n
		in = in[n:]
	}

	// tail longer than the window: mix the rest at full volume
	if e.prefilled >= e.full && e.prefilled < e.filled && len(in) > 0 {
		n := min(len(in), e.filled-e.prefilled)
		dst := e.buf[e.prefilled : e.prefilled+n]
		for i, v := range in[:n] {
			dst[i] += v
		}

		e.prefilled += n
		in = in[n:]
	}

	if e.prefilled >= e.full && e.prefilled >= e.filled {
		e.setState(Running)
	}

	return in
}

// fadeIn is the gain of the incoming track after pos samples of the window.
func (e *Engine) fadeIn(pos int) float32 {
	s := e.cfg.FadeInStart
	return s + (1-s)*float32(pos)/float32(e.full)
}

// ready releases everything beyond the overlap window once at least half a
// second has piled up.
func (e *Engine) ready() []float32 {
	if e.state != Running {
		return e.out[:0]
	}

	n := e.filled - e.full
	if n < e.format.Channels*(e.format.Rate/2) || n <= 0 {
		return e.out[:0]
	}

	e.growOut(n)
	out := e.out[:n]
	copy(out, e.buf[:n])

	copy(e.buf, e.buf[n:e.filled])
	e.filled -= n

	return out
}

func (e *Engine) grow(n int) {
	if n <= len(e.buf) {
		return
	}

	nb := make([]float32, max(n, 2*len(e.buf), 4096))
	copy(nb, e.buf[:e.filled])
	e.buf = nb
}

func (e *Engine) growOut(n int) {
	if n <= cap(e.out) {
		return
	}

	e.out = make([]float32, 0, max(n, 2*cap(e.out)))
}
