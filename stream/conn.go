// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"
)

var (
	icyStatus  = []byte("ICY ")
	httpStatus = []byte("HTTP/1.0 ")
)

// icyConn sets a read deadline before every read and rewrites a SHOUTcast
// "ICY 200 OK" status line into "HTTP/1.0 200 OK".
type icyConn struct {
	net.Conn

	timeout time.Duration
	checked bool
	pending []byte
}

func (c *icyConn) Read(p []byte) (int, error) {
	if !c.checked {
		if err := c.sniff(); err != nil && len(c.pending) == 0 {
			return 0, err
		}
	}

	if len(c.pending) > 0 {
		n := copy(p, c.pending)
		c.pending = c.pending[n:]
		return n, nil
	}

	return c.read(p)
}

func (c *icyConn) read(p []byte) (int, error) {
	if c.timeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}

	return c.Conn.Read(p)
}

// sniff reads the first bytes of the response.
func (c *icyConn) sniff() error {
	c.checked = true

	buf := make([]byte, 512)
	got := 0

	var err error
	for got < len(icyStatus) && err == nil {
		var n int
		n, err = c.read(buf[got:])
		got += n
	}

	head := buf[:got]
	if bytes.HasPrefix(head, icyStatus) {
		c.pending = append(append([]byte{}, httpStatus...), head[len(icyStatus):]...)
	} else {
		c.pending = head
	}

	return err
}

type dialer struct {
	net     net.Dialer
	timeout time.Duration
	tls     *tls.Config
}

func newDialer(opts Options) *dialer {
	return &dialer{
		net:     net.Dialer{Timeout: opts.ConnectTimeout},
		timeout: opts.ReadTimeout,
		tls:     opts.TLSConfig,
	}
}

func (d *dialer) Dial(ctx context.Context, network, addr string) (net.Conn, error) {
	conn, err := d.net.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	return &icyConn{Conn: conn, timeout: d.timeout}, nil
}

// DialTLS performs the handshake itself so that the status line rewrite sees
// plaintext.
func (d *dialer) DialTLS(ctx context.Context, network, addr string) (net.Conn, error) {
	conn, err := d.net.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	cfg := &tls.Config{}
	if d.tls != nil {
		cfg = d.tls.Clone()
	}
	if cfg.ServerName == "" {
		cfg.ServerName = host
	}
	cfg.NextProtos = []string{"http/1.1"}

	tc := tls.Client(conn, cfg)
	if err := tc.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake with %s: %w", addr, err)
	}

	return &icyConn{Conn: tc, timeout: d.timeout}, nil
}
