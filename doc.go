// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package osw provides a platform-abstract operating-system wrapper for
// embedded and real-time software: threads, recursive/priority-ceiling
// mutexes, event flags, fixed-block and variable-size memory pools,
// periodic and one-shot timers, a typed message queue composed from the
// preceding primitives, and a thread pool.
//
// The same client code runs over any platform that registers a factory set;
// see the stdosw package for the goroutine-backed platform and the factory
// interfaces here for the contracts a platform implements.
//
// # Factories
//
// Every primitive kind has one process-wide factory slot, registered once
// during platform initialization:
//
//	stdosw.Init()                       // registers the full factory set
//	m := osw.NewMutex()
//	e := osw.NewEventFlag(true)
//
// Creating a primitive before its factory is registered panics. Factories
// own the concrete instances and are the sole destroyers: every primitive
// is returned with its matching Destroy function, and destroying nil is a
// no-op.
//
// # Blocking and Timeouts
//
// Blocking operations accept a [Timeout]: [Polling] never sleeps, [Forever]
// never expires, and Millis(n) bounds the wait. Expiry returns
// [ErrTimedOut] with no side effects on the guarded state. There is no
// asynchronous cancellation; threads cannot be forcibly terminated.
//
// # Ordering
//
// A mutex release happens-before any later acquisition of the same mutex.
// An event-flag set happens-before any wait that observes the set bits. A
// message-queue send happens-before the matching receive returning that
// message.
//
// # Panics From Runnables
//
// A panic escaping a thread, timer, or pool task runnable is caught and
// dispatched to the entity's panic handler, falling back to the per-kind
// process default. Timers stop themselves before the handler runs. A panic
// from the handler itself is swallowed.
package osw
