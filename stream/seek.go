// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Seek repositions the stream with a new range request. It needs a known
// length and a server that honours ranges. If the new request fails the
// handle is left without one and every later Read returns ErrNoRequest.
func (h *Handle) Seek(offset int64, whence int) (int64, error) {
	if h.closed {
		return 0, ErrClosed
	}

	if !h.Seekable() {
		return 0, ErrNotSeekable
	}

	end := h.contentStart + h.contentLength

	var target int64

	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = h.pos + offset
	case io.SeekEnd:
		if offset == 0 {
			h.pos = end
			h.eof = true
			return end, nil
		}
		target = end + offset
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}

	if target < 0 || target >= end {
		return 0, fmt.Errorf("%w: %d not in [0,%d)", ErrSeekOutOfRange, target, end)
	}

	log := h.log.WithFields(logrus.Fields{"from": h.pos, "to": target})
	log.Debug("seeking")

	h.stopReader()
	h.dropRequest()
	h.rb.Reset()
	h.eof = false
	h.failed = nil

	if err := h.openRequest(context.Background(), target); err != nil {
		log.WithError(err).Error("reopen after seek failed")
		return 0, err
	}

	return h.pos, nil
}
