// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audxfade/audio"
	"github.com/ik5/audxfade/ringbuf"
)

// Status is the state of the background reader.
type Status int

const (
	StatusInit Status = iota
	StatusRunning
	StatusError
	StatusEOF
	StatusTerminated
)

func (s Status) String() string {
	switch s {
	case StatusInit:
		return "init"
	case StatusRunning:
		return "running"
	case StatusError:
		return "error"
	case StatusEOF:
		return "eof"
	case StatusTerminated:
		return "terminated"
	}

	return fmt.Sprintf("Status(%d)", int(s))
}

// Metadata holds what the server told about the stream.
type Metadata struct {
	Title       string // StreamTitle from in-band ICY metadata
	URL         string // StreamUrl from in-band ICY metadata
	Name        string // icy-name
	ContentType string
	Bitrate     int // bits per second
}

// Handle is a read-only HTTP(S) byte stream. A goroutine keeps a ring buffer
// filled while the consumer reads from it.
//
// Read, Seek and Close must be called from one goroutine at a time.
type Handle struct {
	id     uuid.UUID
	url    *url.URL
	user   string
	pass   string
	opts   Options
	client *http.Client
	log    *logrus.Entry

	mu  sync.Mutex // guards status, readErr, meta and the ring buffer
	sig *signal
	rb  *ringbuf.Buffer

	status  Status
	readErr error
	meta    Metadata

	body   io.ReadCloser
	cancel context.CancelFunc
	done   chan struct{} // non-nil while the reader goroutine exists

	pos           int64
	contentStart  int64
	contentLength int64
	canRanges     bool
	eof           bool
	failed        error
	closed        bool

	metaInt  int
	metaLeft int
}

var _ audio.Transport = (*Handle)(nil)

// Open connects to rawURL and parses the response headers. No audio is read
// until the first Read. ctx bounds the connection phase only.
func Open(ctx context.Context, rawURL string, opts Options) (*Handle, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	opts = opts.withDefaults()

	h := &Handle{
		id:            uuid.New(),
		opts:          opts,
		contentLength: -1,
	}

	h.user, h.pass = opts.Username, opts.Password
	if u.User != nil {
		h.user = u.User.Username()
		h.pass, _ = u.User.Password()
		u.User = nil
	}
	h.url = u

	h.log = opts.Logger.WithFields(logrus.Fields{
		"handle": h.id.String(),
		"url":    u.Redacted(),
	})

	h.rb, err = ringbuf.New(opts.BufferSize, &h.mu)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	h.sig = newSignal(&h.mu)
	h.client = newClient(opts, h.log)

	if err := h.openRequest(ctx, 0); err != nil {
		h.log.WithError(err).Error("open failed")
		return nil, err
	}

	return h, nil
}

// openRequest issues the GET starting at byte start and takes over the
// response.
func (h *Handle) openRequest(ctx context.Context, start int64) error {
	reqCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(ctx, cancel)

	resp, err := h.do(reqCtx, start)
	if !stop() && err == nil {
		// ctx ended while the response was arriving
		resp.Body.Close()
		err = fmt.Errorf("%w", context.Cause(ctx))
	}
	if err != nil {
		cancel()
		return err
	}

	if start > 0 && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		cancel()
		return fmt.Errorf("%w: server ignored range request", ErrNotSeekable)
	}

	h.body = resp.Body
	h.cancel = cancel
	h.pos = start
	h.contentStart = start
	h.parseHeaders(resp)

	h.mu.Lock()
	h.status = StatusInit
	h.readErr = nil
	h.mu.Unlock()

	h.log.WithFields(logrus.Fields{
		"status": resp.Status,
		"pos":    start,
		"length": h.contentLength,
		"ranges": h.canRanges,
	}).Debug("request open")

	return nil
}

// do sends the request, answering one 401 and one 407 challenge.
func (h *Handle) do(ctx context.Context, start int64) (*http.Response, error) {
	var auth, proxyAuth bool

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("Icy-MetaData", "1")
		req.Header.Set("User-Agent", h.opts.UserAgent)
		if start > 0 {
			req.Header.Set("Range", fmt.Sprintf("bytes=%d-", start))
		}
		if auth {
			req.SetBasicAuth(h.user, h.pass)
		}
		if proxyAuth {
			req.Header.Set("Proxy-Authorization", basicAuth(h.opts.Proxy.User, h.opts.Proxy.Pass))
		}

		resp, err := h.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("http request: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized && !auth && h.user != "":
			h.log.Debug("server requested authentication")
			discard(resp)
			auth = true
			continue
		case resp.StatusCode == http.StatusProxyAuthRequired && !proxyAuth && h.opts.Proxy.AuthEnabled:
			h.log.Debug("proxy requested authentication")
			discard(resp)
			proxyAuth = true
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			discard(resp)
			return nil, &HTTPStatusError{Code: resp.StatusCode, Status: resp.Status}
		}

		return resp, nil
	}
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}

func (h *Handle) parseHeaders(resp *http.Response) {
	hdr := resp.Header

	h.canRanges = strings.Contains(hdr.Get("Accept-Ranges"), "bytes")
	// Twisted advertises ranges it does not honour
	if strings.Contains(hdr.Get("Server"), "Twisted/") {
		h.canRanges = false
	}

	h.contentLength = -1
	if v := hdr.Get("Content-Length"); v != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || n < 0 {
			h.log.WithField("content-length", v).Warn("ignoring invalid content length")
		} else {
			h.contentLength = n
		}
	} else if resp.ContentLength >= 0 {
		h.contentLength = resp.ContentLength
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if v := hdr.Get("Content-Type"); v != "" {
		h.meta.ContentType = v
	}

	h.metaInt = 0
	if v := hdr.Get("Icy-Metaint"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			h.log.WithField("icy-metaint", v).Warn("ignoring invalid metadata interval")
		} else {
			h.metaInt = n
		}
	}
	h.metaLeft = h.metaInt

	if v := hdr.Get("Icy-Name"); v != "" {
		h.meta.Name = v
	}

	if v := hdr.Get("Icy-Br"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			h.log.WithField("icy-br", v).Warn("ignoring invalid bitrate")
		} else {
			h.meta.Bitrate = n * 1000
		}
	}
}

// ID identifies the handle in logs.
func (h *Handle) ID() uuid.UUID { return h.id }

// Tell returns the byte position of the next Read.
func (h *Handle) Tell() int64 { return h.pos }

// EOF reports whether the end of the stream has been delivered.
func (h *Handle) EOF() bool { return h.eof }

// Size returns the total size of the resource, or -1 when unknown.
func (h *Handle) Size() int64 {
	if h.contentLength < 0 {
		return -1
	}

	return h.contentStart + h.contentLength
}

// Seekable reports whether Seek can work.
func (h *Handle) Seekable() bool {
	return h.contentLength >= 0 && h.canRanges
}

func (h *Handle) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.status
}

// Info returns a copy of the stream metadata.
func (h *Handle) Info() Metadata {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.meta
}

// Metadata returns one of "track-name", "stream-name", "content-type",
// "content-bitrate" or "stream-url".
func (h *Handle) Metadata(field string) (string, bool) {
	m := h.Info()

	var v string

	switch field {
	case "track-name":
		v = m.Title
	case "stream-name":
		v = m.Name
	case "content-type":
		v = m.ContentType
	case "content-bitrate":
		if m.Bitrate > 0 {
			v = strconv.Itoa(m.Bitrate)
		}
	case "stream-url":
		v = m.URL
	}

	return v, v != ""
}

func (h *Handle) Write([]byte) (int, error) { return 0, ErrReadOnly }

func (h *Handle) Truncate(int64) error { return ErrReadOnly }

// Close stops the reader and releases the connection. It may block for up to
// one network timeout.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}

	h.closed = true
	h.stopReader()
	h.dropRequest()
	h.rb.Reset()

	h.log.Debug("closed")

	return nil
}

// stopReader asks the reader goroutine to stop and waits for it.
func (h *Handle) stopReader() {
	if h.done == nil {
		return
	}

	h.mu.Lock()
	h.status = StatusTerminated
	h.sig.Broadcast()
	h.mu.Unlock()

	// unblocks a read in flight
	if h.cancel != nil {
		h.cancel()
	}

	<-h.done
	h.done = nil
}

func (h *Handle) dropRequest() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}

	if h.body != nil {
		if err := h.body.Close(); err != nil && !errors.Is(err, context.Canceled) {
			h.log.WithError(err).Debug("closing response body")
		}
		h.body = nil
	}
}

// Opener opens http and https URLs for an audio.Registry. The transports it
// returns block in Read until data arrives or the context given to Open
// ends.
type Opener struct {
	Options Options
}

func (o Opener) Open(ctx context.Context, rawURL string) (audio.Transport, error) {
	h, err := Open(ctx, rawURL, o.Options)
	if err != nil {
		return nil, err
	}

	return Blocking(ctx, h), nil
}

// Register binds http and https in r to an Opener with opts.
func Register(r *audio.Registry, opts Options) {
	o := Opener{Options: opts}
	r.RegisterTransport("http", o)
	r.RegisterTransport("https", o)
}
