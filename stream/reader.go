// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

type fillResult int

const (
	fillSuccess fillResult = iota
	fillEOF
	fillError
)

// fillOnce moves at most one network block into the ring buffer. Only one
// goroutine fills at a time, so free space can only grow between the check
// and the write.
func (h *Handle) fillOnce() (fillResult, error) {
	var block [NetBlockSize]byte

	n := min(h.rb.Free(), len(block))
	if n == 0 {
		return fillSuccess, nil
	}

	got, err := h.body.Read(block[:n])
	if got > 0 {
		if _, werr := h.rb.Write(block[:got]); werr != nil {
			return fillError, fmt.Errorf("%w", werr)
		}
	}

	switch {
	case errors.Is(err, io.EOF):
		return fillEOF, nil
	case err != nil:
		return fillError, err
	}

	return fillSuccess, nil
}

// prefill is the synchronous first fill: one network read, so the first
// Read waits for the network at most once. The reader goroutine does the rest.
func (h *Handle) prefill() (fillResult, error) {
	return h.fillOnce()
}

func (h *Handle) readerLoop(done chan<- struct{}) {
	defer close(done)

	h.mu.Lock()
	defer h.mu.Unlock()

	for h.status == StatusRunning {
		if h.rb.FreeLocked() == 0 {
			// woken by the consumer after it drained, or by stopReader
			h.sig.Wait(0)
			continue
		}

		h.mu.Unlock()
		res, err := h.fillOnce()
		h.mu.Lock()

		if h.status == StatusRunning {
			switch res {
			case fillEOF:
				h.status = StatusEOF
				h.log.Debug("end of stream")
			case fillError:
				h.status = StatusError
				h.readErr = err
				h.log.WithError(err).Error("stream read failed")
			}
		}

		h.sig.Broadcast()
	}

	h.sig.Broadcast()
}

// start does the synchronous first fill and launches the reader unless the
// whole resource already arrived.
func (h *Handle) start() {
	res, err := h.prefill()

	h.mu.Lock()
	defer h.mu.Unlock()

	switch res {
	case fillEOF:
		h.status = StatusEOF
	case fillError:
		h.status = StatusError
		h.readErr = err
		h.log.WithError(err).Error("initial fill failed")
	default:
		h.status = StatusRunning
		h.done = make(chan struct{})
		go h.readerLoop(h.done)
	}

	h.log.WithFields(logrus.Fields{
		"status":   h.status.String(),
		"buffered": h.rb.UsedLocked(),
	}).Debug("initial fill done")
}

type waitResult int

const (
	waitReady     waitResult = iota // data is buffered
	waitTerminal                    // reader finished and nothing is buffered
	waitExhausted                   // still loading after every retry
)

// waitData waits, bounded by MaxRetries*RetryWait, until the buffer holds at
// least want bytes or the reader has finished.
func (h *Handle) waitData(want int) waitResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	for range h.opts.MaxRetries {
		if r, ok := h.checkLocked(want); ok {
			return r
		}
		h.sig.Wait(h.opts.RetryWait)
	}

	if r, ok := h.checkLocked(want); ok {
		return r
	}
	if h.rb.UsedLocked() > 0 {
		return waitReady
	}

	return waitExhausted
}

func (h *Handle) checkLocked(want int) (waitResult, bool) {
	used := h.rb.UsedLocked()
	if used >= want {
		return waitReady, true
	}

	if h.status != StatusInit && h.status != StatusRunning {
		if used > 0 {
			return waitReady, true
		}
		return waitTerminal, true
	}

	return 0, false
}

// Read delivers audio bytes with ICY metadata removed.
//
// It waits a bounded time for data: ErrNotReady means the stream is still
// loading and Read may be called again. The end of the resource is io.EOF.
// A network failure is reported, wrapping ErrStream, once the bytes received
// before it have been delivered.
func (h *Handle) Read(p []byte) (int, error) {
	switch {
	case h.closed:
		return 0, ErrClosed
	case len(p) == 0:
		return 0, nil
	case h.eof:
		return 0, io.EOF
	case h.failed != nil:
		return 0, h.failed
	case h.body == nil:
		return 0, ErrNoRequest
	}

	if h.done == nil && h.Status() == StatusInit {
		h.start()
	}

	for range h.opts.MaxRetries {
		switch h.waitData(1) {
		case waitTerminal:
			return 0, h.finish()
		case waitExhausted:
			return 0, ErrNotReady
		}

		if n := h.deliver(p); n > 0 {
			return n, nil
		}
	}

	return 0, ErrNotReady
}

// deliver copies buffered audio into p, stopping at the next metadata block.
func (h *Handle) deliver(p []byte) int {
	if h.metaInt > 0 && h.metaLeft == 0 {
		h.readMetadata()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	n := min(len(p), h.rb.UsedLocked())
	if h.metaInt > 0 {
		n = min(n, h.metaLeft)
	}
	if n == 0 {
		return 0
	}

	_, _ = h.rb.ReadLocked(p[:n])
	h.sig.Broadcast()

	if h.metaInt > 0 {
		h.metaLeft -= n
	}
	h.pos += int64(n)

	return n
}

// finish joins the reader once everything it produced has been delivered.
func (h *Handle) finish() error {
	if h.done != nil {
		<-h.done
		h.done = nil
	}

	h.mu.Lock()
	status, err := h.status, h.readErr
	h.status = StatusTerminated
	h.mu.Unlock()

	if status == StatusError {
		h.failed = fmt.Errorf("%w: %w", ErrStream, err)
		return h.failed
	}

	h.eof = true

	return io.EOF
}
