// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
	ErrRedirectLimit     = errors.New("too many redirects")
	ErrNotSeekable       = errors.New("stream is not seekable")
	ErrSeekOutOfRange    = errors.New("seek target out of range")
	ErrInvalidWhence     = errors.New("invalid whence")
	ErrNoRequest         = errors.New("stream has no open request")
	ErrNotReady          = errors.New("no data buffered yet")
	ErrStream            = errors.New("stream read failed")
	ErrReadOnly          = errors.New("stream is read-only")
	ErrClosed            = errors.New("stream is closed")
)

// HTTPStatusError is returned when the server answers with a non-2xx status.
type HTTPStatusError struct {
	Code   int
	Status string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected http status: %s", e.Status)
}
