// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF audio file decoding.
//
// This package uses github.com/go-audio/aiff and github.com/go-audio/audio
// to read uncompressed AIFF files as float32 samples.
//
// # Supported Formats
//
// The decoder accepts:
//   - Uncompressed AIFF
//   - 8, 16, 24 and 32 bit signed samples
//   - Any channel count and sample rate
//
// # Decoding AIFF Files
//
// Use the Decoder to read AIFF files:
//
//	f, _ := os.Open("audio.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// Samples are normalized by the full scale of their bit depth, so every
// depth comes out in [-1.0, 1.0).
//
// # Input Handling
//
// The go-audio decoder seeks while it reads the chunk list. An *os.File is
// used directly; other readers and network transports are read into memory
// before decoding.
//
// # Registry
//
// Register binds the decoder to "aiff" and "aif", the two usual file
// extensions:
//
//	reg := audio.NewRegistry()
//	aiff.Register(reg)
//	src, err := reg.Decode("aif", f)
//
// # Error Handling
//
// The package defines:
//   - ErrNotAiffFile: the input has no FORM/AIFF header
//   - ErrUnsupportedBitDepth: the bit depth is not 8, 16, 24 or 32
//   - ErrUnsupportedLayout: the file carries no usable sample layout
//
// Example:
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    fmt.Println("not an AIFF file")
//	}
//
// A read error after decoding has started is returned once the samples read
// before it have been handed out, and then on every later call.
//
// # Performance
//
// The decoder reuses one go-audio IntBuffer, grown to the largest request,
// so steady state reads do not allocate.
package aiff
