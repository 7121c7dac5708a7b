// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osw

// OneShotTimerPanicHandler receives a panic that escaped a one-shot
// timer's runnable.
type OneShotTimerPanicHandler interface {
	HandlePanic(t OneShotTimer, recovered any)
}

// OneShotTimerPanicHandlerFunc adapts a function to
// OneShotTimerPanicHandler.
type OneShotTimerPanicHandlerFunc func(t OneShotTimer, recovered any)

// HandlePanic calls f.
func (f OneShotTimerPanicHandlerFunc) HandlePanic(t OneShotTimer, recovered any) {
	f(t, recovered)
}

// OneShotTimer fires its runnable once, timeInMillis after Start, on a
// platform-chosen context.
//
// A timer is created stopped. Start while a fire is pending is ignored;
// the pending fire (or a Stop) must complete before the timer can be
// armed again.
type OneShotTimer interface {
	// Start arms the timer to fire after timeInMillis. Ignored while a
	// fire is already pending.
	Start(timeInMillis int64)
	// Stop cancels a pending fire. A fire already in progress completes.
	Stop()
	// IsStarted reports whether a fire is pending.
	IsStarted() bool

	SetName(name string)
	Name() string

	// SetPanicHandler installs the per-timer uncaught-panic handler; nil
	// falls back to the process default.
	SetPanicHandler(h OneShotTimerPanicHandler)
	PanicHandler() OneShotTimerPanicHandler
}

// NewOneShotTimer creates a stopped one-shot timer from the registered
// factory. Returns nil when r is nil or the backend cannot create the
// timer.
func NewOneShotTimer(r Runnable, name string) OneShotTimer {
	if oneShotFactory == nil {
		panic("osw: OneShotTimerFactory is not registered")
	}
	if r == nil {
		return nil
	}
	return oneShotFactory.Create(r, name)
}

// DestroyOneShotTimer stops a timer and returns it to its factory.
// Destroying nil is a no-op.
func DestroyOneShotTimer(t OneShotTimer) {
	if oneShotFactory == nil || t == nil {
		return
	}
	oneShotFactory.Destroy(t)
}

var defaultOneShotTimerPanicHandler OneShotTimerPanicHandler

// SetDefaultOneShotTimerPanicHandler installs the process-wide fallback
// handler for panics escaping one-shot timer runnables.
func SetDefaultOneShotTimerPanicHandler(h OneShotTimerPanicHandler) {
	defaultOneShotTimerPanicHandler = h
}

// DefaultOneShotTimerPanicHandler returns the process-wide fallback
// handler.
func DefaultOneShotTimerPanicHandler() OneShotTimerPanicHandler {
	return defaultOneShotTimerPanicHandler
}

// HandleOneShotTimerPanic dispatches a panic recovered from a one-shot
// timer's runnable. The timer is stopped before the handler runs; a panic
// from the handler itself is swallowed. Platform backends call this from
// their fire context.
func HandleOneShotTimerPanic(t OneShotTimer, recovered any) {
	defer func() { _ = recover() }()
	if t != nil {
		t.Stop()
		if h := t.PanicHandler(); h != nil {
			h.HandlePanic(t, recovered)
			return
		}
	}
	if h := defaultOneShotTimerPanicHandler; h != nil {
		h.HandlePanic(t, recovered)
	}
}
