// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MPEG-1 Audio
// Layer III into float32 samples. It reads from a plain io.Reader, so it
// decodes network streams as well as files.
//
// # Decoding MP3 Files
//
// Use the Decoder to read MP3 files:
//
//	f, _ := os.Open("audio.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// ReadSamples always returns whole frames. A short read from the underlying
// decoder is completed before the samples are converted, so a frame is never
// split across calls.
//
// # Output Format
//
// MP3 decoder output:
//   - Sample format: float32 in [-1.0, 1.0)
//   - Channels: always 2; mono files come out with both channels equal
//   - Sample rate: that of the file (typically 44.1 kHz or 48 kHz)
//
// To change the channel count or the rate, use the audio package or
// audxfade.Conform:
//
//	src, _ := mp3.Decoder{}.Decode(f)
//	mono, _ := audxfade.Conform(src, 8000, 1)
//
// # Network Streams
//
// go-mp3 scans the whole input for its length when the reader can seek.
// Transports from the stream package are passed through audio.Sequential so
// that a live stream is decoded as it arrives:
//
//	h, err := stream.Open(ctx, "http://radio.example.com/live", stream.Options{})
//	if err != nil {
//	    // Handle error
//	}
//	src, err := mp3.Decoder{}.Decode(stream.Blocking(ctx, h))
//
// Register binds the decoder to "mp3" in an audio.Registry, which is how the
// audxfade command decodes http inputs by default.
//
// # Error Handling
//
// A truncated last frame ends the stream with io.EOF. Any other decoder
// error is wrapped with an "mp3:" prefix, returned after the samples read
// before it and then on every later call.
//
// # Limitations
//
// Note:
//   - Decoding only, there is no MP3 encoder
//   - Output is always stereo
//   - Seeking within the decoded stream is not supported
package mp3
