// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"sync"
	"time"
)

// signal is a condition variable whose Wait can time out.
type signal struct {
	l  sync.Locker
	ch chan struct{}
}

func newSignal(l sync.Locker) *signal {
	return &signal{l: l, ch: make(chan struct{})}
}

// Broadcast wakes every waiter. The caller must hold the lock.
func (s *signal) Broadcast() {
	close(s.ch)
	s.ch = make(chan struct{})
}

// Wait releases the lock until Broadcast or until timeout passes, then
// reacquires it. A timeout <= 0 waits forever. The caller must hold the lock.
func (s *signal) Wait(timeout time.Duration) bool {
	ch := s.ch

	s.l.Unlock()
	defer s.l.Lock()

	if timeout <= 0 {
		<-ch
		return true
	}

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-ch:
		return true
	case <-t.C:
		return false
	}
}
