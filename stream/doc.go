// SPDX-License-Identifier: EPL-2.0

// Package stream reads audio over HTTP and HTTPS.
//
// Open connects and parses the response headers. The first Read does one
// network read synchronously and then starts a goroutine that keeps a ring
// buffer filled, so that decoding never waits on the network while data is
// buffered:
//
//	h, err := stream.Open(ctx, "http://radio.example.com/live", stream.Options{})
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	src, err := mp3.Decoder{}.Decode(stream.Blocking(ctx, h))
//
// Redirects are followed up to MaxRedirects. One 401 and one 407 challenge
// are answered with basic credentials from the URL, Options or the proxy
// settings. SHOUTcast servers answering "ICY 200 OK" are accepted.
//
// When the server sends icy-metaint, the interleaved metadata blocks are
// removed from the byte stream and exposed through Metadata("track-name")
// and Metadata("stream-url").
//
// Seek issues a new range request. It is available only when the server sent
// a content length and Accept-Ranges: bytes.
//
// Read distinguishes three outcomes besides data: ErrNotReady (still loading,
// try again), io.EOF, and an error wrapping ErrStream. Blocking hides
// ErrNotReady from consumers that cannot retry.
package stream
