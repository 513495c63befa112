// SPDX-License-Identifier: EPL-2.0

package audxfade

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audxfade/audio"
)

// DefaultBufSize is the number of samples read from a track at a time.
const DefaultBufSize = 4096

// RenderOptions configures Render.
type RenderOptions struct {
	// Rate and Channels of the output when Conform is set. Zero takes the
	// value of the first track.
	Rate     int
	Channels int
	Conform  bool

	BufSize int

	// BeforeTrack runs before track i is started on the effect. It is the
	// place to reconfigure the effect between tracks.
	BeforeTrack func(i int)

	Logger logrus.FieldLogger
}

// Render pushes tracks through fx in order and hands every non-empty output
// block to sink. Each track is closed once it has been read. fx is cleaned up
// before Render returns.
//
// Blocks passed to sink are only valid during the call.
func Render(ctx context.Context, tracks []audio.Source, fx audio.Effect, opts RenderOptions, sink func([]float32) error) error {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	bufSize := opts.BufSize
	if bufSize <= 0 {
		bufSize = DefaultBufSize
	}

	defer fx.Cleanup()

	emit := func(pcm []float32) error {
		if len(pcm) == 0 {
			return nil
		}
		return sink(pcm)
	}

	rate, channels := opts.Rate, opts.Channels
	status := audio.FinishDone

	for i, src := range tracks {
		if i == 0 {
			if rate <= 0 {
				rate = src.SampleRate()
			}
			if channels <= 0 {
				channels = src.Channels()
			}
		}

		track := src
		if opts.Conform {
			var err error
			if track, err = Conform(src, rate, channels); err != nil {
				closeAll(tracks[i:])
				return fmt.Errorf("track %d: %w", i, err)
			}
		}

		tlog := log.WithFields(logrus.Fields{
			"track":    i,
			"rate":     track.SampleRate(),
			"channels": track.Channels(),
		})

		if opts.BeforeTrack != nil {
			opts.BeforeTrack(i)
		}

		fx.Start(track.Channels(), track.SampleRate())
		tlog.Debug("track started")

		err := play(ctx, track, fx, bufSize, emit)
		if cerr := track.Close(); cerr != nil {
			tlog.WithError(cerr).Warn("closing track")
		}
		if err != nil {
			closeAll(tracks[i+1:])
			return fmt.Errorf("track %d: %w", i, err)
		}

		var out []float32
		out, status = fx.Finish(nil)
		if err := emit(out); err != nil {
			closeAll(tracks[i+1:])
			return err
		}

		tlog.WithField("finish", status.String()).Debug("track finished")
	}

	if status == audio.FinishPending {
		out, _ := fx.Finish(nil)
		if err := emit(out); err != nil {
			return err
		}
	}

	return nil
}

func play(ctx context.Context, src audio.Source, fx audio.Effect, bufSize int, emit func([]float32) error) error {
	ch := max(src.Channels(), 1)
	buf := make([]float32, max(bufSize-bufSize%ch, ch))

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w", context.Cause(ctx))
		}

		n, err := src.ReadSamples(buf)
		if n > 0 {
			if eerr := emit(fx.Process(buf[:n])); eerr != nil {
				return eerr
			}
		}

		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("%w", err)
		}
	}
}

func closeAll(srcs []audio.Source) {
	for _, s := range srcs {
		_ = s.Close()
	}
}

// Conform returns src converted to rate and channels. A source already in
// that format is returned as is.
func Conform(src audio.Source, rate, channels int) (audio.Source, error) {
	out := src

	if src.SampleRate() != rate {
		out = audio.NewResampler(out, rate)
	}

	if out.Channels() != channels {
		m, err := audio.NewChannelMixer(out, channels)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		out = m
	}

	return out, nil
}
