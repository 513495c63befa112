// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis
// into float32 samples. Like the mp3 package it reads from a plain
// io.Reader and works on network streams.
//
// # Decoding Ogg Vorbis Files
//
// Use the Decoder to read .ogg files:
//
//	f, _ := os.Open("audio.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// The decoder writes straight into the caller's buffer without conversion.
//
// # Output Format
//
// Vorbis decoder output:
//   - Sample format: float32, nominally in [-1.0, 1.0]
//   - Channels: as encoded, interleaved in the channel order of the stream
//   - Sample rate: as encoded
//
// ReadSamples trims dst to a whole number of frames. A dst shorter than one
// frame returns audio.ErrInvalidDstSize.
//
// # Network Streams
//
// oggvorbis seeks its input when it can, to find the stream length.
// Transports are wrapped with audio.Sequential, so a live Ogg stream is
// decoded as it arrives. The audxfade command picks this decoder for http
// inputs whose content type mentions ogg.
//
// # Registry
//
// Register binds the decoder to both "ogg" and "vorbis":
//
//	reg := audio.NewRegistry()
//	vorbis.Register(reg)
//	src, err := reg.Decode("ogg", f)
//
// # Error Handling
//
// A stream with no channels fails in Decode. Errors from the Ogg or Vorbis
// layer are returned after the samples decoded before them, and then on
// every later call.
package vorbis
