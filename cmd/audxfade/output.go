// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audxfade"
	"github.com/ik5/audxfade/formats/wav"
)

// output receives rendered blocks. A file is encoded as it goes; stdout
// cannot seek back to patch the header, so the PCM is kept until close.
type output struct {
	write func([]float32) error
	close func() error
}

func newOutput(path string, stdout io.Writer, rate, channels int) (*output, error) {
	if path == "-" {
		var pcm []int16

		return &output{
			write: func(block []float32) error {
				pcm = audxfade.AppendPCM16(pcm, block)
				return nil
			},
			close: func() error {
				return wav.WriteWAV16(stdout, rate, channels, pcm)
			},
		}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	enc, err := wav.NewEncoder(f, rate, channels)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &output{
		write: enc.Write,
		close: func() error {
			return errors.Join(enc.Close(), f.Close())
		},
	}, nil
}
