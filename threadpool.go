// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osw

import "code.hybscloud.com/osw/container"

// ThreadPool runs tasks on a fixed set of reusable threads.
//
// Free workers circulate through an internal message queue; dispatching a
// task claims a worker, runs the task on its thread at the requested
// priority, and returns the worker to the queue. Each worker owns a
// manual-reset event flag a WaitGuard can join on.
//
// DestroyThreadPool requires every dispatched task to have completed and
// every WaitGuard to have been released.
type ThreadPool struct {
	freeRunners     *MessageQueue[*taskRunner]
	threads         *container.Vector[Thread]
	defaultPriority int
	threadName      string
	handler         ThreadPanicHandler
}

// WaitGuard joins a dispatched task. Obtained from the dispatch calls;
// Release must be called (directly or via Wait) before the pool is
// destroyed.
type WaitGuard struct {
	runner *taskRunner
}

// Wait blocks until the guarded task completes, then releases the worker.
func (w *WaitGuard) Wait() error {
	return w.TimedWait(Forever)
}

// TryWait is Wait bounded by Polling.
func (w *WaitGuard) TryWait() error {
	return w.TimedWait(Polling)
}

// TimedWait is Wait bounded by tmout. The worker is released only after a
// successful wait.
func (w *WaitGuard) TimedWait(tmout Timeout) error {
	if w.runner == nil {
		return nil
	}
	if err := w.runner.ev.TimedWaitAny(tmout); err != nil {
		return err
	}
	w.Release()
	return nil
}

// Release returns the worker to the pool without joining the task.
// Idempotent.
func (w *WaitGuard) Release() {
	if w.runner == nil {
		return
	}
	r := w.runner
	w.runner = nil
	r.release()
}

// taskRunner is the per-worker runnable: it executes the currently
// assigned task, restores the default priority, and either signals the
// waiter or returns itself to the free queue.
type taskRunner struct {
	task         Runnable
	thread       Thread
	ev           EventFlag
	needsWaiting bool
	tp           *ThreadPool
}

func (r *taskRunner) Run() {
	defer r.afterInvoke()
	if r.task != nil {
		r.task.Run()
	}
}

func (r *taskRunner) afterInvoke() {
	r.thread.SetPriority(r.tp.defaultPriority)
	if r.needsWaiting {
		_ = r.ev.SetAll()
	} else {
		r.release()
	}
}

func (r *taskRunner) release() {
	_ = r.ev.ResetAll()
	_ = r.tp.freeRunners.Send(r)
}

func (r *taskRunner) startThread(task Runnable, priority int, needsWaiting bool) {
	r.task = task
	r.needsWaiting = needsWaiting
	r.thread.SetPriority(priority)
	r.thread.Start()
}

// NewThreadPool creates a pool of maxThreads workers. opts carries the
// workers' default priority, stack size hint, and name. On failure every
// partially-created resource is released.
func NewThreadPool(maxThreads int, opts ThreadOptions) (*ThreadPool, error) {
	if maxThreads < 1 {
		return nil, ErrInvalidParameter
	}
	defaultPriority := NormalPriority()
	if opts.prioritySet {
		defaultPriority = opts.priority
	}
	tp := &ThreadPool{
		threads:         container.NewVector[Thread](maxThreads),
		defaultPriority: defaultPriority,
		threadName:      opts.name,
	}
	var err error
	tp.freeRunners, err = NewMessageQueue[*taskRunner](maxThreads)
	if err != nil {
		return nil, err
	}
	for i := 0; i < maxThreads; i++ {
		if err := tp.addRunner(opts.stackSize); err != nil {
			tp.destroyMembers()
			return nil, err
		}
	}
	return tp, nil
}

func (tp *ThreadPool) addRunner(stackSize uintptr) error {
	ev := NewEventFlag(false)
	if ev == nil {
		return ErrOther
	}
	runner := &taskRunner{ev: ev, tp: tp}
	t := NewThread(runner, ThreadOpts().
		Priority(tp.defaultPriority).
		StackSize(stackSize).
		Name(tp.threadName))
	if t == nil {
		DestroyEventFlag(ev)
		return ErrOther
	}
	runner.thread = t
	_ = tp.threads.PushBack(t)
	return tp.freeRunners.Send(runner)
}

// DestroyThreadPool waits for the workers and releases every resource.
// Destroying nil is a no-op.
func DestroyThreadPool(tp *ThreadPool) {
	if tp == nil {
		return
	}
	tp.waitThreads()
	tp.destroyMembers()
}

func (tp *ThreadPool) waitThreads() {
	for t := range tp.threads.Values() {
		_ = t.Wait()
	}
}

func (tp *ThreadPool) destroyMembers() {
	if tp.freeRunners != nil {
		for {
			var runner *taskRunner
			if err := tp.freeRunners.TryReceive(&runner); err != nil {
				break // empty
			}
			DestroyEventFlag(runner.ev)
			DestroyThread(runner.thread)
		}
		DestroyMessageQueue(tp.freeRunners)
		tp.freeRunners = nil
	}
	tp.threads.Clear()
}

// Start dispatches task on a free worker, waiting without bound for one.
// A non-nil waiter is armed to join the task; priority InheritPriority
// runs the task at the pool default.
func (tp *ThreadPool) Start(task Runnable, waiter *WaitGuard, priority int) error {
	return tp.TimedStart(task, Forever, waiter, priority)
}

// TryStart is Start bounded by Polling.
func (tp *ThreadPool) TryStart(task Runnable, waiter *WaitGuard, priority int) error {
	return tp.TimedStart(task, Polling, waiter, priority)
}

// TimedStart is Start bounded by tmout.
func (tp *ThreadPool) TimedStart(task Runnable, tmout Timeout, waiter *WaitGuard, priority int) error {
	if task == nil {
		return ErrInvalidParameter
	}
	if priority == InheritPriority {
		priority = tp.defaultPriority
	}
	var runner *taskRunner
	if err := tp.freeRunners.TimedReceive(&runner, tmout); err != nil {
		return err
	}
	// The previous run signalled completion before the runner re-entered
	// the free queue; join the thread so Start reliably re-arms it.
	if err := runner.thread.TimedWait(tmout); err != nil {
		runner.release()
		return err
	}
	runner.startThread(task, priority, waiter != nil)
	if waiter != nil {
		waiter.runner = runner
	}
	return nil
}

// SetPanicHandler installs h as the uncaught-panic handler of every worker
// thread.
func (tp *ThreadPool) SetPanicHandler(h ThreadPanicHandler) {
	tp.handler = h
	for t := range tp.threads.Values() {
		t.SetPanicHandler(h)
	}
}

// PanicHandler returns the pool-wide uncaught-panic handler.
func (tp *ThreadPool) PanicHandler() ThreadPanicHandler {
	return tp.handler
}

// ThreadName returns the name the workers were created with.
func (tp *ThreadPool) ThreadName() string {
	return tp.threadName
}
