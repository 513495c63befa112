// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"errors"
	"fmt"
)

// BlockingReader is a Handle whose Read keeps waiting while the stream is
// still loading. Decoders treat every error as fatal, so they read through
// one of these instead of the bare Handle.
type BlockingReader struct {
	*Handle

	ctx context.Context
}

// Blocking wraps h. Read gives up waiting when ctx ends.
func Blocking(ctx context.Context, h *Handle) *BlockingReader {
	return &BlockingReader{Handle: h, ctx: ctx}
}

func (b *BlockingReader) Read(p []byte) (int, error) {
	for {
		n, err := b.Handle.Read(p)
		if !errors.Is(err, ErrNotReady) {
			return n, err
		}

		if b.ctx.Err() != nil {
			return 0, fmt.Errorf("%w: %w", ErrNotReady, context.Cause(b.ctx))
		}

		b.log.Debug("stream stalled, still waiting")
	}
}
