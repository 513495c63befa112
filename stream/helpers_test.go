// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func testOptions() (Options, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	return Options{
		Logger:      logger,
		RetryWait:   50 * time.Millisecond,
		ReadTimeout: 5 * time.Second,
	}, hook
}

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i * 7)
	}
	return b
}

// serveBytes serves data with range support.
func serveBytes(data []byte, extra func(w http.ResponseWriter)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if extra != nil {
			extra(w)
		}
		http.ServeContent(w, r, "track.mp3", time.Time{}, bytes.NewReader(data))
	}))
}

// readAll reads until a terminal error, retrying while the stream loads.
func readAll(t *testing.T, h *Handle, chunk int) ([]byte, error) {
	t.Helper()

	var out []byte
	buf := make([]byte, chunk)

	for range 100000 {
		n, err := h.Read(buf)
		out = append(out, buf[:n]...)

		switch {
		case errors.Is(err, ErrNotReady):
			continue
		case err != nil:
			return out, err
		}
	}

	t.Fatal("stream never ended")
	return nil, nil
}

// icyBlock encodes text as a metadata block: a length byte counting 16 byte
// units, then the padded text.
func icyBlock(text string) []byte {
	units := (len(text) + 15) / 16
	b := make([]byte, 1+units*16)
	b[0] = byte(units)
	copy(b[1:], text)
	return b
}
