// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdosw

import (
	"sync"
	"time"

	"code.hybscloud.com/osw"
)

type stdEventFlagFactory struct{}

func (f *stdEventFlagFactory) Create(autoReset bool) osw.EventFlag {
	return &stdEventFlag{autoReset: autoReset}
}

func (f *stdEventFlagFactory) Destroy(e osw.EventFlag) {}

// stdEventFlag broadcasts pattern changes through a gate channel. Waiters
// arm the gate and park on it; every set closes the armed gate, waking all
// parked waiters to re-check their condition. The gate is allocated only
// when a waiter arms it, so setting an uncontended flag never allocates.
//
// Any number of waiters is supported; ErrOtherThreadWaiting is never
// returned by this backend.
type stdEventFlag struct {
	mu        sync.Mutex
	pattern   osw.Pattern
	autoReset bool
	gate      chan struct{}
}

func (e *stdEventFlag) WaitAny() error {
	return e.TimedWait(osw.PatternAll, osw.ModeOR, nil, osw.Forever)
}

func (e *stdEventFlag) WaitOne(pos uint) error {
	if pos >= osw.PatternBits {
		return osw.ErrInvalidParameter
	}
	return e.TimedWait(osw.Bit(pos), osw.ModeOR, nil, osw.Forever)
}

func (e *stdEventFlag) Wait(bitPattern osw.Pattern, mode osw.Mode, released *osw.Pattern) error {
	return e.TimedWait(bitPattern, mode, released, osw.Forever)
}

func (e *stdEventFlag) TryWaitAny() error {
	return e.TimedWait(osw.PatternAll, osw.ModeOR, nil, osw.Polling)
}

func (e *stdEventFlag) TryWaitOne(pos uint) error {
	if pos >= osw.PatternBits {
		return osw.ErrInvalidParameter
	}
	return e.TimedWait(osw.Bit(pos), osw.ModeOR, nil, osw.Polling)
}

func (e *stdEventFlag) TryWait(bitPattern osw.Pattern, mode osw.Mode, released *osw.Pattern) error {
	return e.TimedWait(bitPattern, mode, released, osw.Polling)
}

func (e *stdEventFlag) TimedWaitAny(tmout osw.Timeout) error {
	return e.TimedWait(osw.PatternAll, osw.ModeOR, nil, tmout)
}

func (e *stdEventFlag) TimedWaitOne(pos uint, tmout osw.Timeout) error {
	if pos >= osw.PatternBits {
		return osw.ErrInvalidParameter
	}
	return e.TimedWait(osw.Bit(pos), osw.ModeOR, nil, tmout)
}

func (e *stdEventFlag) TimedWait(bitPattern osw.Pattern, mode osw.Mode, released *osw.Pattern, tmout osw.Timeout) error {
	if bitPattern == 0 {
		return osw.ErrInvalidParameter
	}
	if mode != osw.ModeOR && mode != osw.ModeAND {
		return osw.ErrInvalidParameter
	}
	if !tmout.IsPolling() && contexts.inNonBlocking() {
		return osw.ErrCalledByNonThread
	}

	var deadline time.Time
	if !tmout.IsForever() && !tmout.IsPolling() {
		deadline = time.Now().Add(tmout.Duration())
	}

	e.mu.Lock()
	for {
		if matched, ok := e.match(bitPattern, mode); ok {
			if released != nil {
				*released = matched
			}
			if e.autoReset {
				e.pattern &^= matched
			}
			e.mu.Unlock()
			return nil
		}
		if tmout.IsPolling() {
			e.mu.Unlock()
			return osw.ErrTimedOut
		}
		if e.gate == nil {
			e.gate = make(chan struct{})
		}
		gate := e.gate
		e.mu.Unlock()

		if tmout.IsForever() {
			<-gate
		} else {
			remain := time.Until(deadline)
			if remain <= 0 {
				return osw.ErrTimedOut
			}
			timer := time.NewTimer(remain)
			select {
			case <-gate:
				timer.Stop()
			case <-timer.C:
				return osw.ErrTimedOut
			}
		}
		e.mu.Lock()
	}
}

// match reports whether bitPattern currently matches under mode and
// returns the matched bits.
func (e *stdEventFlag) match(bitPattern osw.Pattern, mode osw.Mode) (osw.Pattern, bool) {
	got := e.pattern & bitPattern
	if mode == osw.ModeAND {
		return bitPattern, got == bitPattern
	}
	return got, got != 0
}

func (e *stdEventFlag) SetAll() error {
	return e.Set(osw.PatternAll)
}

func (e *stdEventFlag) SetOne(pos uint) error {
	if pos >= osw.PatternBits {
		return osw.ErrInvalidParameter
	}
	return e.Set(osw.Bit(pos))
}

func (e *stdEventFlag) Set(bitPattern osw.Pattern) error {
	e.mu.Lock()
	e.pattern |= bitPattern
	if e.gate != nil {
		close(e.gate)
		e.gate = nil
	}
	e.mu.Unlock()
	return nil
}

func (e *stdEventFlag) ResetAll() error {
	return e.Reset(osw.PatternAll)
}

func (e *stdEventFlag) ResetOne(pos uint) error {
	if pos >= osw.PatternBits {
		return osw.ErrInvalidParameter
	}
	return e.Reset(osw.Bit(pos))
}

func (e *stdEventFlag) Reset(bitPattern osw.Pattern) error {
	e.mu.Lock()
	e.pattern &^= bitPattern
	e.mu.Unlock()
	return nil
}

func (e *stdEventFlag) CurrentPattern() osw.Pattern {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pattern
}
