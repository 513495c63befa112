// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrUnsupportedEncoding = errors.New("only linear PCM WAV is supported")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
	ErrInvalidChannels     = errors.New("channel count must be positive")
	ErrClosed              = errors.New("encoder is closed")
)
