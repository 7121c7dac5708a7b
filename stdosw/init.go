// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdosw

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"code.hybscloud.com/osw"
)

// defaultMessageQueuePoolSize backs message queues and thread pools when
// the application does not register its own pool.
const defaultMessageQueuePoolSize = 1 << 20

var (
	loggerMu sync.Mutex
	logger   = zerolog.New(os.Stderr).With().Timestamp().Str("pkg", "stdosw").Logger()

	initOnce sync.Once
)

// SetLogger replaces the logger behind the default uncaught-panic
// handlers.
func SetLogger(l zerolog.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func log() zerolog.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	return logger
}

// Init registers the goroutine-backed factory set, a default
// message-queue memory pool, and zerolog-backed default uncaught-panic
// handlers. Safe to call more than once; only the first call takes
// effect. Call before creating any primitive.
func Init() {
	initOnce.Do(func() {
		osw.RegisterMutexFactory(&stdMutexFactory{})
		osw.RegisterEventFlagFactory(&stdEventFlagFactory{})
		osw.RegisterFixedMemoryPoolFactory(&stdFixedMemoryPoolFactory{})
		osw.RegisterVariableMemoryPoolFactory(&stdVariableMemoryPoolFactory{})
		osw.RegisterThreadFactory(&stdThreadFactory{})
		osw.RegisterPeriodicTimerFactory(&stdPeriodicTimerFactory{})
		osw.RegisterOneShotTimerFactory(&stdOneShotTimerFactory{})
		osw.RegisterMessageQueueMemoryPool(
			osw.NewVariableMemoryPool(defaultMessageQueuePoolSize, nil))

		osw.SetDefaultThreadPanicHandler(osw.ThreadPanicHandlerFunc(
			func(t osw.Thread, recovered any) {
				name := ""
				if t != nil {
					name = t.Name()
				}
				l := log()
				l.Error().
					Str("thread", name).
					Any("panic", recovered).
					Msg("uncaught panic in thread runnable")
			}))
		osw.SetDefaultPeriodicTimerPanicHandler(osw.PeriodicTimerPanicHandlerFunc(
			func(t osw.PeriodicTimer, recovered any) {
				name := ""
				if t != nil {
					name = t.Name()
				}
				l := log()
				l.Error().
					Str("timer", name).
					Any("panic", recovered).
					Msg("uncaught panic in periodic timer runnable")
			}))
		osw.SetDefaultOneShotTimerPanicHandler(osw.OneShotTimerPanicHandlerFunc(
			func(t osw.OneShotTimer, recovered any) {
				name := ""
				if t != nil {
					name = t.Name()
				}
				l := log()
				l.Error().
					Str("timer", name).
					Any("panic", recovered).
					Msg("uncaught panic in one-shot timer runnable")
			}))
	})
}
