// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osw

// LockGuard scopes a mutex acquisition to a function body:
//
//	g := osw.Lock(m)
//	defer g.Unlock()
//
// Unlock runs on every exit path, panicking ones included, and is
// idempotent. The Adopt variant wraps a lock the caller already holds
// without re-acquiring it.
type LockGuard struct {
	m        Mutex
	unlocked bool
}

// Lock acquires m and returns its guard. A nil mutex yields an inert guard.
func Lock(m Mutex) LockGuard {
	if m != nil {
		_ = m.Lock()
	}
	return LockGuard{m: m}
}

// Adopt wraps an already-held m without acquiring it. The guard's Unlock
// releases the caller's ownership.
func Adopt(m Mutex) LockGuard {
	return LockGuard{m: m}
}

// Unlock releases the guarded mutex once; further calls do nothing.
func (g *LockGuard) Unlock() {
	if g.unlocked || g.m == nil {
		return
	}
	g.unlocked = true
	_ = g.m.Unlock()
}
