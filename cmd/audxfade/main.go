// SPDX-License-Identifier: EPL-2.0

// Command audxfade renders a list of tracks into one WAV file, crossfading
// from each track into the next.
//
//	audxfade [--config file] [--watch] [--length s] -o out.wav input...
//
// Inputs are local files (wav, mp3, ogg, aiff, picked by extension) or http
// and https URLs, which are decoded as mp3 unless the server says ogg.
// "-o -" writes the WAV to stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/ik5/audxfade"
	"github.com/ik5/audxfade/audio"
	"github.com/ik5/audxfade/crossfade"
	"github.com/ik5/audxfade/formats/aiff"
	"github.com/ik5/audxfade/formats/mp3"
	"github.com/ik5/audxfade/formats/vorbis"
	"github.com/ik5/audxfade/formats/wav"
	"github.com/ik5/audxfade/internal/config"
	"github.com/ik5/audxfade/stream"
)

var (
	errUsage       = errors.New("usage")
	errFormatSplit = errors.New("inputs differ in format, enable render.conform")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := logrus.New()

	err := run(ctx, os.Args[1:], os.Stdout, log)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	default:
		log.WithError(err).Error("audxfade failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, log *logrus.Logger) error {
	fs := flag.NewFlagSet("audxfade", flag.ContinueOnError)

	var (
		cfgPath string
		watch   bool
		length  int
		outPath string
	)

	fs.StringVar(&cfgPath, "config", "", "path to the YAML config file")
	fs.BoolVar(&watch, "watch", false, "reload the config file while rendering")
	fs.IntVar(&length, "length", 0, "crossfade length in seconds (1-10)")
	fs.StringVarP(&outPath, "output", "o", "", "output WAV file, - for stdout")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w", err)
	}

	if outPath == "" || fs.NArg() == 0 {
		return fmt.Errorf("%w: audxfade [--config file] [--watch] [--length s] -o out.wav input...", errUsage)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if fs.Changed("length") {
		cfg.SetLength(length)
	}
	cfg.Logger(log)

	reg := audio.NewRegistry()
	wav.Register(reg)
	mp3.Register(reg)
	vorbis.Register(reg)
	aiff.Register(reg)
	stream.Register(reg, cfg.StreamOptions(log))

	tracks, err := openAll(ctx, reg, fs.Args(), log)
	if err != nil {
		return err
	}

	rate, channels := cfg.Render.Rate, cfg.Render.Channels
	if rate <= 0 {
		rate = tracks[0].SampleRate()
	}
	if channels <= 0 {
		channels = tracks[0].Channels()
	}

	if !cfg.Render.Conform {
		for _, t := range tracks {
			if t.SampleRate() != rate || t.Channels() != channels {
				closeTracks(tracks)
				return errFormatSplit
			}
		}
	}

	fx := crossfade.New(cfg.Engine(),
		crossfade.WithLogger(log),
		crossfade.WithPreallocate(cfg.Preallocate(rate, channels)))

	var reloaded atomic.Pointer[config.Config]
	if watch && cfgPath != "" {
		wctx, cancel := context.WithCancel(ctx)
		defer cancel()

		go func() {
			err := config.Watch(wctx, cfgPath, func(c *config.Config) {
				if fs.Changed("length") {
					c.SetLength(length)
				}
				reloaded.Store(c)
			})
			if err != nil {
				log.WithError(err).Warn("config watch stopped")
			}
		}()
	}

	out, err := newOutput(outPath, stdout, rate, channels)
	if err != nil {
		closeTracks(tracks)
		return err
	}

	opts := audxfade.RenderOptions{
		Rate:     rate,
		Channels: channels,
		Conform:  cfg.Render.Conform,
		Logger:   log,
		BeforeTrack: func(i int) {
			if c := reloaded.Swap(nil); c != nil {
				fx.SetConfig(c.Engine())
				log.WithField("track", i).Info("crossfade settings updated")
			}
		},
	}

	log.WithFields(logrus.Fields{
		"tracks":   len(tracks),
		"rate":     rate,
		"channels": channels,
		"length":   cfg.Crossfade.Length,
	}).Info("rendering")

	if err := audxfade.Render(ctx, tracks, fx, opts, out.write); err != nil {
		_ = out.close()
		return err
	}

	if err := out.close(); err != nil {
		return err
	}

	log.WithField("output", outPath).Info("done")

	return nil
}

// openAll opens every input, closing the ones already open on failure.
func openAll(ctx context.Context, reg *audio.Registry, inputs []string, log logrus.FieldLogger) ([]audio.Source, error) {
	tracks := make([]audio.Source, 0, len(inputs))

	for _, in := range inputs {
		src, err := openInput(ctx, reg, in)
		if err != nil {
			closeTracks(tracks)
			return nil, fmt.Errorf("%s: %w", in, err)
		}

		log.WithFields(logrus.Fields{
			"input":    in,
			"rate":     src.SampleRate(),
			"channels": src.Channels(),
		}).Debug("input opened")

		tracks = append(tracks, src)
	}

	return tracks, nil
}

func openInput(ctx context.Context, reg *audio.Registry, in string) (audio.Source, error) {
	if isURL(in) {
		t, err := reg.OpenURL(ctx, in)
		if err != nil {
			return nil, err
		}

		ct, _ := t.Metadata("content-type")

		src, err := reg.Decode(streamFormat(ct), t)
		if err != nil {
			_ = t.Close()
			return nil, err
		}

		return &ownedSource{Source: src, owned: t}, nil
	}

	f, err := os.Open(in)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := reg.Decode(fileFormat(in), f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &ownedSource{Source: src, owned: f}, nil
}

func isURL(in string) bool {
	u, err := url.Parse(in)
	if err != nil {
		return false
	}

	s := strings.ToLower(u.Scheme)
	return s == "http" || s == "https"
}

func fileFormat(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func streamFormat(contentType string) string {
	if strings.Contains(strings.ToLower(contentType), "ogg") {
		return "ogg"
	}

	return "mp3"
}

// ownedSource closes the underlying file or stream together with the decoder.
type ownedSource struct {
	audio.Source
	owned io.Closer
}

func (s *ownedSource) Close() error {
	return errors.Join(s.Source.Close(), s.owned.Close())
}

func closeTracks(tracks []audio.Source) {
	for _, t := range tracks {
		_ = t.Close()
	}
}
