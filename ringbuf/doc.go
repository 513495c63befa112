// SPDX-License-Identifier: EPL-2.0

// Package ringbuf provides a fixed-capacity byte ring buffer whose lock is
// supplied by the caller.
//
// The buffer never blocks and never partially succeeds: a Write either stores
// every byte or stores nothing and returns ErrBufferFull, and a Read either
// fills the destination completely or returns ErrBufferUnderrun.
//
// Sharing the lock lets a producer and consumer coordinate the buffer together
// with their own state (status flags, condition variables) under a single
// mutex:
//
//	var mu sync.Mutex
//	rb, _ := ringbuf.New(128*1024, &mu)
//
//	mu.Lock()
//	if rb.FreeLocked() >= len(chunk) {
//	    rb.WriteLocked(chunk)
//	}
//	mu.Unlock()
//
// The plain methods (Write, Read, Free, Used, Reset) take the lock themselves.
// The Locked variants assume the caller already holds it.
package ringbuf
