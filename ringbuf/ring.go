// SPDX-License-Identifier: EPL-2.0

package ringbuf

import (
	"fmt"
	"sync"
)

// Buffer is a byte ring buffer. Free()+Used() == Cap() at all times.
type Buffer struct {
	data []byte
	rd   int
	wr   int
	used int
	lock sync.Locker
}

// New allocates a buffer of capacity bytes guarded by lock. A nil lock gets a
// private mutex.
func New(capacity int, lock sync.Locker) (*Buffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrAllocation, capacity)
	}

	if lock == nil {
		lock = &sync.Mutex{}
	}

	return &Buffer{
		data: make([]byte, capacity),
		lock: lock,
	}, nil
}

// Cap returns the capacity in bytes. It never changes and needs no lock.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Write stores all of p or nothing.
func (b *Buffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	return b.WriteLocked(p)
}

// WriteLocked is Write for callers already holding the lock.
func (b *Buffer) WriteLocked(p []byte) (int, error) {
	n := len(p)
	if n > len(b.data)-b.used {
		return 0, ErrBufferFull
	}

	// copy up to the physical end, then wrap
	first := copy(b.data[b.wr:], p)
	if first < n {
		copy(b.data, p[first:])
	}

	b.wr = (b.wr + n) % len(b.data)
	b.used += n

	return n, nil
}

// Read fills all of p or fails without consuming anything.
func (b *Buffer) Read(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	return b.ReadLocked(p)
}

// ReadLocked is Read for callers already holding the lock.
func (b *Buffer) ReadLocked(p []byte) (int, error) {
	n := len(p)
	if n > b.used {
		return 0, ErrBufferUnderrun
	}

	_, _ = b.PeekLocked(p)

	b.rd = (b.rd + n) % len(b.data)
	b.used -= n

	return n, nil
}

// Peek copies the next len(p) bytes into p without consuming them.
func (b *Buffer) Peek(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	return b.PeekLocked(p)
}

func (b *Buffer) PeekLocked(p []byte) (int, error) {
	n := len(p)
	if n > b.used {
		return 0, ErrBufferUnderrun
	}

	first := copy(p, b.data[b.rd:min(b.rd+n, len(b.data))])
	if first < n {
		copy(p[first:], b.data[:n-first])
	}

	return n, nil
}

// Free returns the number of bytes that can be written.
func (b *Buffer) Free() int {
	b.lock.Lock()
	defer b.lock.Unlock()

	return b.FreeLocked()
}

func (b *Buffer) FreeLocked() int {
	return len(b.data) - b.used
}

// Used returns the number of bytes waiting to be read.
func (b *Buffer) Used() int {
	b.lock.Lock()
	defer b.lock.Unlock()

	return b.UsedLocked()
}

func (b *Buffer) UsedLocked() int {
	return b.used
}

// Reset empties the buffer. Capacity is unchanged.
func (b *Buffer) Reset() {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.ResetLocked()
}

func (b *Buffer) ResetLocked() {
	b.rd = 0
	b.wr = 0
	b.used = 0
}
