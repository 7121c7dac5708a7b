// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdosw

import (
	"time"

	"code.hybscloud.com/atomix"

	"code.hybscloud.com/osw"
	"code.hybscloud.com/osw/internal/goid"
)

type stdMutexFactory struct{}

func (f *stdMutexFactory) Create() osw.Mutex {
	return &stdMutex{ch: make(chan struct{}, 1)}
}

func (f *stdMutexFactory) CreateCeiling(priorityCeiling int) osw.Mutex {
	return &stdMutex{
		ch:         make(chan struct{}, 1),
		ceiling:    clampPriority(priorityCeiling),
		hasCeiling: true,
	}
}

func (f *stdMutexFactory) Destroy(m osw.Mutex) {}

// stdMutex is a recursive timed mutex. The single-slot channel is the
// lock; ownership is tracked by goroutine id so the owner can re-lock
// recursively and non-owners are refused at unlock.
//
// A ceiling mutex boosts the locking thread's recorded priority to the
// ceiling until the final unlock.
type stdMutex struct {
	ch         chan struct{}
	owner      atomix.Int64
	count      int // owner-only
	ceiling    int
	hasCeiling bool

	boosted  *stdThread // owner-only
	previous int        // owner-only
}

func (m *stdMutex) Lock() error {
	return m.TimedLock(osw.Forever)
}

func (m *stdMutex) TryLock() error {
	return m.TimedLock(osw.Polling)
}

func (m *stdMutex) TimedLock(tmout osw.Timeout) error {
	id := goid.ID()
	if m.owner.Load() == id {
		m.count++
		return nil
	}
	if !tmout.IsPolling() && contexts.inNonBlocking() {
		return osw.ErrCalledByNonThread
	}
	switch {
	case tmout.IsForever():
		m.ch <- struct{}{}
	case tmout.IsPolling():
		select {
		case m.ch <- struct{}{}:
		default:
			return osw.ErrTimedOut
		}
	default:
		timer := time.NewTimer(tmout.Duration())
		defer timer.Stop()
		select {
		case m.ch <- struct{}{}:
		case <-timer.C:
			return osw.ErrTimedOut
		}
	}
	m.owner.Store(id)
	m.count = 1
	if m.hasCeiling {
		if t := contexts.current(); t != nil {
			m.boosted = t
			m.previous = t.Priority()
			if m.ceiling > m.previous {
				t.SetPriority(m.ceiling)
			}
		}
	}
	return nil
}

func (m *stdMutex) Unlock() error {
	if m.owner.Load() != goid.ID() {
		return osw.ErrNotLocked
	}
	m.count--
	if m.count > 0 {
		return nil
	}
	if m.boosted != nil {
		m.boosted.SetPriority(m.previous)
		m.boosted = nil
	}
	m.owner.Store(0)
	<-m.ch
	return nil
}
