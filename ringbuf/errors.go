// SPDX-License-Identifier: EPL-2.0

package ringbuf

import "errors"

var (
	ErrAllocation     = errors.New("ring buffer capacity must be positive")
	ErrBufferFull     = errors.New("not enough free space in ring buffer")
	ErrBufferUnderrun = errors.New("not enough data in ring buffer")
)
