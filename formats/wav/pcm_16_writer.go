// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const headerSize = 44

// WriteWAV16 writes samples as a 16 bit PCM WAV file with the given channel
// count. Unlike Encoder it needs no seeking, so w may be a pipe.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 {
		return ErrInvalidChannels
	}

	blockAlign := channels * 2
	dataSize := uint32(len(samples)-len(samples)%channels) * 2

	var h [headerSize]byte
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36+dataSize)
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(h[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(h[34:36], 16)
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)

	if _, err := w.Write(h[:]); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunk = 8192

	samples = samples[:dataSize/2]
	buf := make([]byte, 2*min(len(samples), chunk))

	for len(samples) > 0 {
		n := min(len(samples), chunk)
		for i, s := range samples[:n] {
			binary.LittleEndian.PutUint16(buf[2*i:], uint16(s))
		}

		if _, err := w.Write(buf[:2*n]); err != nil {
			return fmt.Errorf("%w", err)
		}
		samples = samples[n:]
	}

	return nil
}
