// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdosw

import (
	"sync"
	"time"

	"code.hybscloud.com/atomix"

	"code.hybscloud.com/osw"
)

type stdPeriodicTimerFactory struct{}

func (f *stdPeriodicTimerFactory) Create(r osw.Runnable, periodInMillis int64, name string) osw.PeriodicTimer {
	return &stdPeriodicTimer{
		runnable: r,
		periodMs: periodInMillis,
		name:     name,
	}
}

func (f *stdPeriodicTimerFactory) Destroy(t osw.PeriodicTimer) {
	t.Stop()
}

// stdPeriodicTimer drives its runnable from a ticker goroutine. fireMu
// serializes fires across stop/start cycles, so the runnable is never
// re-entered even when a stale goroutine delivers its last tick while a
// new one starts.
type stdPeriodicTimer struct {
	runnable osw.Runnable
	periodMs int64
	started  atomix.Bool
	fireMu   sync.Mutex

	mu      sync.Mutex
	name    string
	handler osw.PeriodicTimerPanicHandler
	stop    chan struct{}
}

func (t *stdPeriodicTimer) Start() {
	if !t.started.CompareAndSwap(false, true) {
		return
	}
	stop := make(chan struct{})
	t.mu.Lock()
	t.stop = stop
	t.mu.Unlock()
	go t.loop(stop)
}

func (t *stdPeriodicTimer) loop(stop chan struct{}) {
	ticker := time.NewTicker(time.Duration(t.periodMs) * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.fire()
		}
	}
}

func (t *stdPeriodicTimer) fire() {
	t.fireMu.Lock()
	defer t.fireMu.Unlock()
	if !t.started.Load() {
		return
	}
	contexts.enterNonBlocking()
	defer contexts.leaveNonBlocking()
	defer func() {
		if v := recover(); v != nil {
			osw.HandlePeriodicTimerPanic(t, v)
		}
	}()
	t.runnable.Run()
}

func (t *stdPeriodicTimer) Stop() {
	if !t.started.CompareAndSwap(true, false) {
		return
	}
	t.mu.Lock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.mu.Unlock()
}

func (t *stdPeriodicTimer) IsStarted() bool {
	return t.started.Load()
}

func (t *stdPeriodicTimer) PeriodInMillis() int64 {
	return t.periodMs
}

func (t *stdPeriodicTimer) SetName(name string) {
	t.mu.Lock()
	t.name = name
	t.mu.Unlock()
}

func (t *stdPeriodicTimer) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name
}

func (t *stdPeriodicTimer) SetPanicHandler(h osw.PeriodicTimerPanicHandler) {
	t.mu.Lock()
	t.handler = h
	t.mu.Unlock()
}

func (t *stdPeriodicTimer) PanicHandler() osw.PeriodicTimerPanicHandler {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handler
}

type stdOneShotTimerFactory struct{}

func (f *stdOneShotTimerFactory) Create(r osw.Runnable, name string) osw.OneShotTimer {
	return &stdOneShotTimer{runnable: r, name: name}
}

func (f *stdOneShotTimerFactory) Destroy(t osw.OneShotTimer) {
	t.Stop()
}

// stdOneShotTimer arms a time.Timer per Start. A Start while a fire is
// pending is ignored; the started flag flips off as the fire claims it,
// so the handler and IsStarted observe a stopped timer during the
// callback.
type stdOneShotTimer struct {
	runnable osw.Runnable
	started  atomix.Bool
	fireMu   sync.Mutex

	mu      sync.Mutex
	name    string
	handler osw.OneShotTimerPanicHandler
	timer   *time.Timer
}

func (t *stdOneShotTimer) Start(timeInMillis int64) {
	if timeInMillis < 0 {
		timeInMillis = 0
	}
	if !t.started.CompareAndSwap(false, true) {
		return // a fire is pending
	}
	t.mu.Lock()
	t.timer = time.AfterFunc(time.Duration(timeInMillis)*time.Millisecond, t.fire)
	t.mu.Unlock()
}

func (t *stdOneShotTimer) fire() {
	t.fireMu.Lock()
	defer t.fireMu.Unlock()
	// Claim the pending state; a concurrent Stop may have won.
	if !t.started.CompareAndSwap(true, false) {
		return
	}
	contexts.enterNonBlocking()
	defer contexts.leaveNonBlocking()
	defer func() {
		if v := recover(); v != nil {
			osw.HandleOneShotTimerPanic(t, v)
		}
	}()
	t.runnable.Run()
}

func (t *stdOneShotTimer) Stop() {
	if !t.started.CompareAndSwap(true, false) {
		return
	}
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}

func (t *stdOneShotTimer) IsStarted() bool {
	return t.started.Load()
}

func (t *stdOneShotTimer) SetName(name string) {
	t.mu.Lock()
	t.name = name
	t.mu.Unlock()
}

func (t *stdOneShotTimer) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name
}

func (t *stdOneShotTimer) SetPanicHandler(h osw.OneShotTimerPanicHandler) {
	t.mu.Lock()
	t.handler = h
	t.mu.Unlock()
}

func (t *stdOneShotTimer) PanicHandler() osw.OneShotTimerPanicHandler {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handler
}
