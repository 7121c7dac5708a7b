// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osw

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// The OS wrapper reports runtime failures as sentinel errors; nil means OK.
// Programmer errors (unregistered factory, nil registration) panic instead.
// Destroying a primitive twice is not detected.
var (
	// ErrTimedOut indicates a bounded wait expired, or a polling call found
	// the guarded state unavailable. The guarded state is unchanged.
	//
	// ErrTimedOut is a control flow signal, not a failure: the caller should
	// retry, back off, or give up cleanly. It matches [iox.ErrWouldBlock] so
	// ecosystem predicates ([iox.IsWouldBlock], [iox.IsSemantic]) recognize
	// polling outcomes.
	ErrTimedOut = fmt.Errorf("osw: timed out (%w)", iox.ErrWouldBlock)

	// ErrCalledByNonThread indicates a blocking call from a context that
	// must not block (a timer callback or other non-thread context).
	ErrCalledByNonThread = errors.New("osw: blocking call from non-thread context")

	// ErrInvalidParameter indicates an out-of-range bit position, an
	// unknown wait mode, an empty pattern, or a nil required argument.
	ErrInvalidParameter = errors.New("osw: invalid parameter")

	// ErrNotLocked indicates an unlock by a non-owner, or of an unlocked
	// mutex. The mutex is unchanged.
	ErrNotLocked = errors.New("osw: mutex not locked by caller")

	// ErrOtherThreadWaiting indicates a backend that supports only one
	// concurrent waiter refused a second one. Recoverable.
	ErrOtherThreadWaiting = errors.New("osw: another thread is already waiting")

	// ErrOther indicates a backend failure not covered by the taxonomy.
	ErrOther = errors.New("osw: backend error")
)

// IsTimedOut reports whether err indicates an expired or polled-out wait.
func IsTimedOut(err error) bool {
	return errors.Is(err, ErrTimedOut)
}
