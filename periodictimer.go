// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osw

// PeriodicTimerPanicHandler receives a panic that escaped a periodic
// timer's runnable.
type PeriodicTimerPanicHandler interface {
	HandlePanic(t PeriodicTimer, recovered any)
}

// PeriodicTimerPanicHandlerFunc adapts a function to
// PeriodicTimerPanicHandler.
type PeriodicTimerPanicHandlerFunc func(t PeriodicTimer, recovered any)

// HandlePanic calls f.
func (f PeriodicTimerPanicHandlerFunc) HandlePanic(t PeriodicTimer, recovered any) {
	f(t, recovered)
}

// PeriodicTimer fires its runnable every period on a platform-chosen
// context. The runnable is never re-entered: a fire that overruns the
// period delays the next one.
//
// A timer is created stopped.
type PeriodicTimer interface {
	// Start arms the timer; while armed, Start is a no-op.
	Start()
	// Stop cancels the timer. A fire already in progress completes.
	Stop()
	// IsStarted reports whether the timer is armed.
	IsStarted() bool
	// PeriodInMillis returns the configured period.
	PeriodInMillis() int64

	SetName(name string)
	Name() string

	// SetPanicHandler installs the per-timer uncaught-panic handler; nil
	// falls back to the process default.
	SetPanicHandler(h PeriodicTimerPanicHandler)
	PanicHandler() PeriodicTimerPanicHandler
}

// NewPeriodicTimer creates a stopped periodic timer from the registered
// factory. Returns nil when r is nil, periodInMillis is not positive, or
// the backend cannot create the timer.
func NewPeriodicTimer(r Runnable, periodInMillis int64, name string) PeriodicTimer {
	if periodicFactory == nil {
		panic("osw: PeriodicTimerFactory is not registered")
	}
	if r == nil || periodInMillis <= 0 {
		return nil
	}
	return periodicFactory.Create(r, periodInMillis, name)
}

// DestroyPeriodicTimer stops a timer and returns it to its factory.
// Destroying nil is a no-op.
func DestroyPeriodicTimer(t PeriodicTimer) {
	if periodicFactory == nil || t == nil {
		return
	}
	periodicFactory.Destroy(t)
}

var defaultPeriodicTimerPanicHandler PeriodicTimerPanicHandler

// SetDefaultPeriodicTimerPanicHandler installs the process-wide fallback
// handler for panics escaping periodic timer runnables.
func SetDefaultPeriodicTimerPanicHandler(h PeriodicTimerPanicHandler) {
	defaultPeriodicTimerPanicHandler = h
}

// DefaultPeriodicTimerPanicHandler returns the process-wide fallback
// handler.
func DefaultPeriodicTimerPanicHandler() PeriodicTimerPanicHandler {
	return defaultPeriodicTimerPanicHandler
}

// HandlePeriodicTimerPanic dispatches a panic recovered from a periodic
// timer's runnable. The timer is stopped before the handler runs, so the
// handler observes a stopped timer; a panic from the handler itself is
// swallowed. Platform backends call this from their fire context.
func HandlePeriodicTimerPanic(t PeriodicTimer, recovered any) {
	defer func() { _ = recover() }()
	if t != nil {
		t.Stop()
		if h := t.PanicHandler(); h != nil {
			h.HandlePanic(t, recovered)
			return
		}
	}
	if h := defaultPeriodicTimerPanicHandler; h != nil {
		h.HandlePanic(t, recovered)
	}
}
