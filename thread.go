// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osw

import "math"

// InheritPriority makes a new thread inherit the creating thread's
// priority.
const InheritPriority = math.MinInt32

// ThreadPanicHandler receives a panic that escaped a thread's runnable.
type ThreadPanicHandler interface {
	HandlePanic(t Thread, recovered any)
}

// ThreadPanicHandlerFunc adapts a function to ThreadPanicHandler.
type ThreadPanicHandlerFunc func(t Thread, recovered any)

// HandlePanic calls f.
func (f ThreadPanicHandlerFunc) HandlePanic(t Thread, recovered any) { f(t, recovered) }

// Thread runs a Runnable on a preemptively scheduled parallel thread.
//
// A thread is created stopped. Start runs the runnable once; after it
// returns, Start may run it again. Wait joins the most recent run.
// DestroyThread must be preceded by Wait.
type Thread interface {
	// Start runs the runnable if the thread is not currently running;
	// while it runs, Start is a no-op.
	Start()
	// Wait blocks until the most recent run has returned.
	Wait() error
	// TryWait is Wait bounded by Polling.
	TryWait() error
	// TimedWait is Wait bounded by tmout.
	TimedWait(tmout Timeout) error
	// IsFinished reports whether the thread is not running.
	IsFinished() bool

	SetName(name string)
	Name() string

	// SetPriority reschedules the thread. Values outside the platform
	// range are clamped or rejected by the backend; InheritPriority means
	// the calling thread's priority.
	SetPriority(priority int)
	Priority() int
	// InitialPriority returns the priority the thread was created with.
	InitialPriority() int

	// SetPanicHandler installs the per-thread uncaught-panic handler; nil
	// falls back to the process default.
	SetPanicHandler(h ThreadPanicHandler)
	PanicHandler() ThreadPanicHandler
}

// ThreadOptions configures thread creation. The zero value means: inherit
// the creator's priority, platform-default stack, empty name.
type ThreadOptions struct {
	priority    int
	prioritySet bool
	stackSize   uintptr
	name        string
}

// ThreadOpts returns empty options for fluent configuration:
//
//	osw.NewThread(r, osw.ThreadOpts().Priority(6).Name("rx"))
func ThreadOpts() ThreadOptions { return ThreadOptions{} }

// Priority sets the initial priority.
func (o ThreadOptions) Priority(p int) ThreadOptions {
	o.priority, o.prioritySet = p, true
	return o
}

// StackSize sets the stack size hint in bytes. Platforms that size stacks
// themselves record it without effect.
func (o ThreadOptions) StackSize(n uintptr) ThreadOptions {
	o.stackSize = n
	return o
}

// Name sets the thread name.
func (o ThreadOptions) Name(s string) ThreadOptions {
	o.name = s
	return o
}

// NewThread creates a stopped thread from the registered factory. Returns
// nil when r is nil or the backend cannot create the thread.
func NewThread(r Runnable, opts ThreadOptions) Thread {
	if threadFactory == nil {
		panic("osw: ThreadFactory is not registered")
	}
	if r == nil {
		return nil
	}
	priority := InheritPriority
	if opts.prioritySet {
		priority = opts.priority
	}
	return threadFactory.Create(r, priority, opts.stackSize, opts.name)
}

// DestroyThread returns a thread to its factory. The caller must Wait
// first. Destroying nil is a no-op.
func DestroyThread(t Thread) {
	if threadFactory == nil || t == nil {
		return
	}
	threadFactory.Destroy(t)
}

// Sleep yields the current thread for at least tmout. Polling yields once;
// Forever is rejected by panic.
func Sleep(tmout Timeout) {
	if threadFactory == nil {
		panic("osw: ThreadFactory is not registered")
	}
	if tmout.IsForever() {
		panic("osw: Sleep(Forever)")
	}
	threadFactory.Sleep(tmout)
}

// Yield hints the scheduler to run another thread.
func Yield() {
	if threadFactory == nil {
		panic("osw: ThreadFactory is not registered")
	}
	threadFactory.Yield()
}

// CurrentThread returns the running thread's descriptor when called from a
// managed thread, else nil.
func CurrentThread() Thread {
	if threadFactory == nil {
		panic("osw: ThreadFactory is not registered")
	}
	return threadFactory.CurrentThread()
}

// MaxPriority returns the platform's numeric maximum priority.
func MaxPriority() int { return mustThreadFactory().MaxPriority() }

// MinPriority returns the platform's numeric minimum priority.
func MinPriority() int { return mustThreadFactory().MinPriority() }

// NormalPriority returns the platform's default thread priority, always a
// valid value.
func NormalPriority() int {
	f := mustThreadFactory()
	return (f.MaxPriority() + f.MinPriority()) / 2
}

// HighestPriority returns the most urgent schedulable priority.
func HighestPriority() int { return mustThreadFactory().HighestPriority() }

// LowestPriority returns the least urgent schedulable priority.
func LowestPriority() int { return mustThreadFactory().LowestPriority() }

func mustThreadFactory() ThreadFactory {
	if threadFactory == nil {
		panic("osw: ThreadFactory is not registered")
	}
	return threadFactory
}

var defaultThreadPanicHandler ThreadPanicHandler

// SetDefaultThreadPanicHandler installs the process-wide fallback handler
// for panics escaping thread runnables.
func SetDefaultThreadPanicHandler(h ThreadPanicHandler) {
	defaultThreadPanicHandler = h
}

// DefaultThreadPanicHandler returns the process-wide fallback handler.
func DefaultThreadPanicHandler() ThreadPanicHandler {
	return defaultThreadPanicHandler
}

// HandleThreadPanic dispatches a panic recovered from a thread's runnable:
// the per-thread handler first, else the process default. A panic from the
// handler itself is swallowed. Platform backends call this from their
// thread entry.
func HandleThreadPanic(t Thread, recovered any) {
	defer func() { _ = recover() }()
	if t != nil {
		if h := t.PanicHandler(); h != nil {
			h.HandlePanic(t, recovered)
			return
		}
	}
	if h := defaultThreadPanicHandler; h != nil {
		h.HandlePanic(t, recovered)
	}
}
