// SPDX-License-Identifier: EPL-2.0

// Package audxfade plays a list of tracks through an audio effect, the way a
// media player drives its effect plugins, and crossfades from each track into
// the next.
//
// # Packages
//
// The building blocks live in subpackages:
//   - audio: Source, Effect and Transport interfaces, resampling, channel
//     mapping and the decoder and transport registry
//   - crossfade: the crossfade effect
//   - fadecfg: per-event fade records and their resolution
//   - stream: HTTP/HTTPS transport with a background reader and ICY metadata
//   - ringbuf: byte ring buffer sharing its lock with the owner
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders, and
//     the WAV writers
//
// # Quick Start
//
// Decode the tracks, build an effect and Render into a sink:
//
//	reg := audio.NewRegistry()
//	wav.Register(reg)
//	mp3.Register(reg)
//
//	var tracks []audio.Source
//	for _, name := range []string{"a.wav", "b.mp3"} {
//	    f, _ := os.Open(name)
//	    src, err := reg.Decode(strings.TrimPrefix(filepath.Ext(name), "."), f)
//	    if err != nil {
//	        // Handle error
//	    }
//	    tracks = append(tracks, src)
//	}
//
//	out, _ := os.Create("mix.wav")
//	enc, _ := wav.NewEncoder(out, 44100, 2)
//
//	fx := crossfade.New(crossfade.DefaultConfig())
//	err := audxfade.Render(ctx, tracks, fx, audxfade.RenderOptions{
//	    Rate:     44100,
//	    Channels: 2,
//	    Conform:  true,
//	}, enc.Write)
//
// # Rendering
//
// Render reads every track in blocks of BufSize samples, feeds them to the
// effect and hands whatever the effect releases to the sink. Between tracks
// it calls Finish once, so the effect keeps a faded tail to mix into the next
// track; after the last track a second Finish drains that tail. Each track is
// closed once read. On error the remaining tracks are closed and the error
// names the track it came from.
//
// BeforeTrack runs before each track is started. It is the place to apply
// new effect settings, which the crossfade engine takes at the next Start:
//
//	opts.BeforeTrack = func(i int) {
//	    fx.SetConfig(crossfade.Config{Length: 3 * time.Second})
//	}
//
// # Formats
//
// The crossfade engine only carries a tail over when the next track has the
// same rate and channel count. With Conform set, every track is resampled
// and channel mapped to Rate and Channels (the first track's format when
// zero), so every transition can crossfade. Conform is also usable on its
// own:
//
//	src, err := audxfade.Conform(mp3Src, 8000, 1)
//
// # Output
//
// Blocks handed to the sink are float32 in [-1.0, 1.0] and only valid during
// the call. AppendPCM16 converts them to 16 bit samples for writers that
// need integers:
//
//	pcm = audxfade.AppendPCM16(pcm, block)
//
// # Overlap
//
// The overlap between two tracks is the configured window plus whatever the
// engine had not yet released when the first track ended. The engine releases
// audio in steps of at least half a second, so the overlap is up to half a
// second longer than the window.
package audxfade
