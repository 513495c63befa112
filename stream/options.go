// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"crypto/tls"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultBufferSize = 128 * 1024
	// NetBlockSize is the largest single network read.
	NetBlockSize = 4096
	// MaxRedirects is the number of redirects followed before giving up.
	MaxRedirects = 10

	DefaultRetries   = 6
	DefaultRetryWait = 500 * time.Millisecond
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "audxfade/1.0"
)

// ProxyConfig describes an HTTP proxy.
type ProxyConfig struct {
	Enabled     bool
	Host        string
	Port        int
	AuthEnabled bool
	User        string
	Pass        string
}

// Options configures a Handle. Zero values select the defaults.
type Options struct {
	BufferSize int
	UserAgent  string

	// Username and Password answer a 401 challenge when the URL carries no
	// credentials of its own.
	Username string
	Password string

	Proxy     ProxyConfig
	TLSConfig *tls.Config

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// The consumer waits at most MaxRetries*RetryWait for data before Read
	// gives up with ErrNotReady.
	MaxRetries int
	RetryWait  time.Duration

	Logger logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = DefaultTimeout
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = DefaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultRetries
	}
	if o.RetryWait <= 0 {
		o.RetryWait = DefaultRetryWait
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}

	return o
}
