// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Transport is a read-only byte stream with random access where the remote
// side allows it.
type Transport interface {
	io.ReadSeekCloser

	// Tell returns the current byte position.
	Tell() int64
	// EOF reports whether the end of the resource has been reached.
	EOF() bool
	// Size returns the total size in bytes, or -1 when unknown.
	Size() int64
	// Metadata returns a named string attribute such as "track-name".
	Metadata(field string) (string, bool)
}

// Sequential returns r without its Seek method when r is a Transport.
// Decoders that find a Seeker scan the whole input up front, which a network
// stream cannot afford.
func Sequential(r io.Reader) io.Reader {
	if _, ok := r.(Transport); ok {
		return struct{ io.Reader }{r}
	}

	return r
}

// Opener creates a Transport for a URL.
type Opener interface {
	Open(ctx context.Context, rawURL string) (Transport, error)
}

// FinishStatus tells the caller of Effect.Finish whether another call is
// expected.
type FinishStatus int

const (
	// FinishDone means nothing is left buffered in the effect.
	FinishDone FinishStatus = iota
	// FinishPending means the effect holds a faded tail. It is either mixed
	// into the next track after Start, or handed out by another Finish call.
	FinishPending
)

func (s FinishStatus) String() string {
	switch s {
	case FinishDone:
		return "done"
	case FinishPending:
		return "pending"
	}

	return fmt.Sprintf("FinishStatus(%d)", int(s))
}

// Effect transforms interleaved float32 PCM between track boundaries.
//
// The slices returned by Process and Finish belong to the effect and are
// valid until the next call.
type Effect interface {
	Start(channels, rate int)
	Process(in []float32) []float32
	Flush()
	Finish(in []float32) ([]float32, FinishStatus)
	Cleanup()
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg vorbis") and
// transports by URL scheme (e.g., "http").
type Registry struct {
	codecs     map[string]Decoder
	transports map[string]Opener

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:     make(map[string]Decoder),
		transports: make(map[string]Opener),
		mtx:        &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// RegisterTransport binds an Opener to a URL scheme. Schemes are case
// insensitive.
func (r *Registry) RegisterTransport(scheme string, o Opener) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.transports[strings.ToLower(scheme)] = o
}

func (r *Registry) GetTransport(scheme string) (Opener, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	o, ok := r.transports[strings.ToLower(scheme)]
	return o, ok
}

// Decode looks up the decoder for format and runs it on rd.
func (r *Registry) Decode(format string, rd io.Reader) (Source, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	src, err := d.Decode(rd)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return src, nil
}

// OpenURL opens rawURL with the transport registered for its scheme.
func (r *Registry) OpenURL(ctx context.Context, rawURL string) (Transport, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	o, ok := r.GetTransport(u.Scheme)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, u.Scheme)
	}

	t, err := o.Open(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return t, nil
}
