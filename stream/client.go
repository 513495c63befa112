// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
)

func newClient(opts Options, log logrus.FieldLogger) *http.Client {
	d := newDialer(opts)

	tr := &http.Transport{
		DialContext:           d.Dial,
		DialTLSContext:        d.DialTLS,
		TLSClientConfig:       opts.TLSConfig,
		DisableCompression:    true,
		ResponseHeaderTimeout: opts.ReadTimeout,
		TLSHandshakeTimeout:   opts.ConnectTimeout,
	}

	if p := opts.Proxy; p.Enabled && p.Host != "" {
		tr.Proxy = http.ProxyURL(&url.URL{
			Scheme: "http",
			Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		})

		// CONNECT tunnels never see the 407 retry, authenticate up front
		if p.AuthEnabled {
			tr.ProxyConnectHeader = http.Header{
				"Proxy-Authorization": {basicAuth(p.User, p.Pass)},
			}
		}
	}

	return &http.Client{
		Transport: tr,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return fmt.Errorf("%w: stopped after %d", ErrRedirectLimit, len(via))
			}
			log.WithField("location", req.URL.Redacted()).Debug("following redirect")
			return nil
		},
	}
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}
