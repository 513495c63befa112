// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"bytes"
	"strings"

	"github.com/sirupsen/logrus"
)

// readMetadata consumes the metadata block at the current position. A block
// that is not completely buffered in time is left in place and delivered as
// audio.
func (h *Handle) readMetadata() {
	h.mu.Lock()
	var lb [1]byte
	if _, err := h.rb.PeekLocked(lb[:]); err != nil {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	size := 1 + int(lb[0])*16

	if size > 1 {
		h.waitData(size)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rb.UsedLocked() < size {
		h.log.WithFields(logrus.Fields{
			"block":    size,
			"buffered": h.rb.UsedLocked(),
		}).Warn("metadata block not buffered, passing it through as audio")
		h.metaLeft = h.metaInt
		return
	}

	block := make([]byte, size)
	_, _ = h.rb.ReadLocked(block)
	h.sig.Broadcast()

	h.metaLeft = h.metaInt

	if size == 1 {
		return
	}

	title, url, hasTitle, hasURL := parseICY(block[1:])
	if hasTitle {
		h.meta.Title = title
		h.log.WithField("title", title).Debug("stream title")
	}
	if hasURL {
		h.meta.URL = url
	}
}

// parseICY extracts StreamTitle and StreamUrl from a block of
// key='value'; pairs. Values may contain quotes and semicolons; a value ends
// at the first "';".
func parseICY(block []byte) (title, url string, hasTitle, hasURL bool) {
	s := string(bytes.TrimRight(block, "\x00"))

	for s != "" {
		eq := strings.Index(s, "='")
		if eq < 0 {
			break
		}

		key := strings.TrimSpace(s[:eq])
		rest := s[eq+2:]

		var val string
		if end := strings.Index(rest, "';"); end >= 0 {
			val, s = rest[:end], rest[end+2:]
		} else {
			val, s = strings.TrimSuffix(rest, "'"), ""
		}

		switch key {
		case "StreamTitle":
			title, hasTitle = val, true
		case "StreamUrl":
			url, hasURL = val, true
		}
	}

	return title, url, hasTitle, hasURL
}
