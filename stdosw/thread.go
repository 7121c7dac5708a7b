// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdosw

import (
	"runtime"
	"sync"
	"time"

	"code.hybscloud.com/atomix"

	"code.hybscloud.com/osw"
	"code.hybscloud.com/osw/internal/goid"
)

const (
	minPriority    = 1
	maxPriority    = 9
	normalPriority = (minPriority + maxPriority) / 2
)

// contextRegistry maps goroutine ids to the managed thread running on
// them, and flags goroutines that must not block (timer callbacks).
type contextRegistry struct {
	mu       sync.Mutex
	byGoid   map[int64]*stdThread
	nonBlock map[int64]int
}

var contexts = contextRegistry{
	byGoid:   make(map[int64]*stdThread),
	nonBlock: make(map[int64]int),
}

func (c *contextRegistry) enterThread(id int64, t *stdThread) {
	c.mu.Lock()
	c.byGoid[id] = t
	c.mu.Unlock()
}

func (c *contextRegistry) leaveThread(id int64) {
	c.mu.Lock()
	delete(c.byGoid, id)
	c.mu.Unlock()
}

func (c *contextRegistry) current() *stdThread {
	c.mu.Lock()
	t := c.byGoid[goid.ID()]
	c.mu.Unlock()
	return t
}

// enterNonBlocking flags the calling goroutine as a non-thread context.
// Nests, so a timer firing inside another flagged region stays flagged.
func (c *contextRegistry) enterNonBlocking() {
	id := goid.ID()
	c.mu.Lock()
	c.nonBlock[id]++
	c.mu.Unlock()
}

func (c *contextRegistry) leaveNonBlocking() {
	id := goid.ID()
	c.mu.Lock()
	if c.nonBlock[id] <= 1 {
		delete(c.nonBlock, id)
	} else {
		c.nonBlock[id]--
	}
	c.mu.Unlock()
}

func (c *contextRegistry) inNonBlocking() bool {
	c.mu.Lock()
	_, ok := c.nonBlock[goid.ID()]
	c.mu.Unlock()
	return ok
}

type stdThreadFactory struct{}

func (f *stdThreadFactory) Create(r osw.Runnable, priority int, stackSize uintptr, name string) osw.Thread {
	if priority == osw.InheritPriority {
		if cur := contexts.current(); cur != nil {
			priority = int(cur.priority.Load())
		} else {
			priority = normalPriority
		}
	}
	t := &stdThread{
		runnable:  r,
		stackSize: stackSize,
		name:      name,
		done:      closedChan(),
	}
	priority = clampPriority(priority)
	t.priority.Store(int32(priority))
	t.initialPriority = priority
	return t
}

func (f *stdThreadFactory) Destroy(t osw.Thread) {
	st := t.(*stdThread)
	_ = st.Wait()
}

func (f *stdThreadFactory) Sleep(tmout osw.Timeout) {
	if tmout.IsPolling() {
		runtime.Gosched()
		return
	}
	time.Sleep(tmout.Duration())
}

func (f *stdThreadFactory) Yield() {
	runtime.Gosched()
}

func (f *stdThreadFactory) CurrentThread() osw.Thread {
	if t := contexts.current(); t != nil {
		return t
	}
	return nil
}

func (f *stdThreadFactory) MaxPriority() int     { return maxPriority }
func (f *stdThreadFactory) MinPriority() int     { return minPriority }
func (f *stdThreadFactory) HighestPriority() int { return maxPriority }
func (f *stdThreadFactory) LowestPriority() int  { return minPriority }

func clampPriority(p int) int {
	if p < minPriority {
		return minPriority
	}
	if p > maxPriority {
		return maxPriority
	}
	return p
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// stdThread runs its runnable on a fresh goroutine per Start. The done
// channel of the most recent run backs Wait; a never-started thread holds
// a closed channel so Wait returns immediately.
type stdThread struct {
	runnable        osw.Runnable
	stackSize       uintptr
	initialPriority int
	priority        atomix.Int32

	mu      sync.Mutex
	name    string
	handler osw.ThreadPanicHandler
	running bool
	done    chan struct{}
}

func (t *stdThread) Start() {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.done = make(chan struct{})
	done := t.done
	t.mu.Unlock()

	go t.main(done)
}

func (t *stdThread) main(done chan struct{}) {
	id := goid.ID()
	contexts.enterThread(id, t)
	defer func() {
		contexts.leaveThread(id)
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
		close(done)
	}()
	defer func() {
		if v := recover(); v != nil {
			osw.HandleThreadPanic(t, v)
		}
	}()
	t.runnable.Run()
}

func (t *stdThread) Wait() error {
	return t.TimedWait(osw.Forever)
}

func (t *stdThread) TryWait() error {
	return t.TimedWait(osw.Polling)
}

func (t *stdThread) TimedWait(tmout osw.Timeout) error {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	switch {
	case tmout.IsForever():
		<-done
		return nil
	case tmout.IsPolling():
		select {
		case <-done:
			return nil
		default:
			return osw.ErrTimedOut
		}
	default:
		timer := time.NewTimer(tmout.Duration())
		defer timer.Stop()
		select {
		case <-done:
			return nil
		case <-timer.C:
			return osw.ErrTimedOut
		}
	}
}

func (t *stdThread) IsFinished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.running
}

func (t *stdThread) SetName(name string) {
	t.mu.Lock()
	t.name = name
	t.mu.Unlock()
}

func (t *stdThread) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name
}

func (t *stdThread) SetPriority(priority int) {
	if priority == osw.InheritPriority {
		if cur := contexts.current(); cur != nil {
			priority = int(cur.priority.Load())
		} else {
			priority = normalPriority
		}
	}
	t.priority.Store(int32(clampPriority(priority)))
}

func (t *stdThread) Priority() int {
	return int(t.priority.Load())
}

func (t *stdThread) InitialPriority() int {
	return t.initialPriority
}

func (t *stdThread) SetPanicHandler(h osw.ThreadPanicHandler) {
	t.mu.Lock()
	t.handler = h
	t.mu.Unlock()
}

func (t *stdThread) PanicHandler() osw.ThreadPanicHandler {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handler
}
