// SPDX-License-Identifier: EPL-2.0

// Package audio provides the interfaces and low-level building blocks shared
// by the rest of the module.
//
//   - Source: float32 interleaved PCM input
//   - Decoder: builds a Source from a byte stream
//   - Transport and Opener: byte streams addressed by URL
//   - Effect: a track-boundary aware PCM transform such as a crossfade
//   - Resampler and ChannelMixer: conform a Source to an output format
//   - Registry: decoders by format, transports by URL scheme
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns the number of float32 values written, not frames.
//
// # Effects
//
// An Effect is driven by the host once per track:
//
//	fx.Start(channels, rate)
//	for more audio {
//	    emit(fx.Process(chunk))
//	}
//	out, status := fx.Finish(last)
//	emit(out)
//
// Finish returning FinishPending means the effect kept a faded tail. Starting
// the next track mixes that tail in. At the end of the playlist the host calls
// Finish once more to collect it.
//
// # Conforming Formats
//
//	r := audio.NewResampler(src, 44100)
//	m, _ := audio.NewChannelMixer(r, 2)
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0]. Mixing may briefly exceed that range;
// conversion to integer PCM clamps.
package audio
