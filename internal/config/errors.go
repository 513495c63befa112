// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	ErrRead      = errors.New("read config")
	ErrParse     = errors.New("parse config")
	ErrLogLevel  = errors.New("invalid log level")
	ErrProxyPort = errors.New("invalid proxy port")
)
