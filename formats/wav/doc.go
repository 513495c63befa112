// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding is done by github.com/go-audio/wav and github.com/go-audio/audio.
// The package adds normalization to float32, bit depth handling and two
// writers on top of it.
//
// # Supported Formats
//
// Decoding accepts:
//   - Linear PCM (format tag 1) only
//   - 8, 16, 24 and 32 bit samples (8 bit is unsigned on disk)
//   - Any channel count and sample rate
//
// Encoding writes 16 bit linear PCM at any channel count and sample rate.
//
// # Decoding WAV Files
//
// Use the Decoder to read WAV files:
//
//	f, _ := os.Open("audio.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// Samples come out interleaved as float32 in [-1.0, 1.0). A read error is
// held back until the samples decoded with it have been handed out, and
// io.EOF follows the last sample.
//
// The go-audio decoder seeks. An *os.File is used as it is; any other reader,
// network transports from the stream package included, is read into memory
// first.
//
// Register adds the decoder to an audio.Registry under "wav":
//
//	reg := audio.NewRegistry()
//	wav.Register(reg)
//	src, err := reg.Decode("wav", f)
//
// # Writing WAV Files
//
// Encoder takes float32 samples as they are produced and writes the sizes
// into the header on Close, so it needs an io.WriteSeeker such as *os.File:
//
//	out, _ := os.Create("mix.wav")
//	enc, err := wav.NewEncoder(out, 44100, 2)
//	if err != nil {
//	    // Handle error
//	}
//	_ = enc.Write(block) // interleaved stereo
//	_ = enc.Close()
//	_ = out.Close()
//
// A partial frame at the end of a block is dropped. Write after Close
// returns ErrClosed; Close is safe to call twice.
//
// WriteWAV16 writes a complete file from a slice of 16 bit samples in one
// pass. It knows the sizes up front and works on any io.Writer, stdout
// included:
//
//	pcm := audxfade.AppendPCM16(nil, samples)
//	err := wav.WriteWAV16(os.Stdout, 44100, 2, pcm)
//
// # Error Handling
//
// The package defines:
//   - ErrNotWavFile: the input has no RIFF/WAVE header
//   - ErrUnsupportedEncoding: the format tag is not linear PCM
//   - ErrUnsupportedBitDepth: the bit depth is not 8, 16, 24 or 32
//   - ErrInvalidChannels: a writer was given a channel count below 1
//   - ErrClosed: the Encoder was written to after Close
//
// Errors are wrapped, test them with errors.Is:
//
//	if errors.Is(err, wav.ErrUnsupportedEncoding) {
//	    fmt.Println("compressed WAV")
//	}
//
// # File Format
//
// The files written consist of:
//   - RIFF header (12 bytes)
//   - fmt chunk (24 bytes): format tag, channels, sample rate, byte rate,
//     block align and bit depth
//   - data chunk: interleaved little endian samples
//
// WriteWAV16 writes the 44 byte header and then the samples in chunks of
// 8192, so large files do not need a second copy of the PCM.
package wav
