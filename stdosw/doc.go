// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stdosw is the goroutine-backed platform for the osw package.
//
// Init registers a complete factory set: threads are managed goroutines,
// mutexes are recursive and timed, event flags broadcast through
// generation channels, and pools carve caller or heap arenas. A default
// message-queue memory pool is installed as well, so message queues and
// thread pools work out of the box:
//
//	stdosw.Init()
//	t := osw.NewThread(task, osw.ThreadOpts().Name("rx"))
//	t.Start()
//
// # Platform Notes
//
// Thread priorities are recorded and clamped to [MinPriority, MaxPriority]
// but do not reschedule goroutines; priority-ceiling mutexes boost the
// recorded priority for the lock's duration. Stack-size hints are recorded
// without effect, goroutine stacks grow on demand.
//
// Timer callbacks run on timer goroutines flagged as non-thread contexts:
// blocking OS wrapper calls made from a callback return
// osw.ErrCalledByNonThread.
//
// Panics escaping runnables are logged by a zerolog-backed default handler
// installed by Init; override it with the osw.SetDefault*PanicHandler
// functions or SetLogger.
package stdosw
