// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrOutOfRange indicates a checked positional access past the live range.
//
// Returned by At and friends. Unchecked accessors (MustAt, Front, Back)
// panic instead.
var ErrOutOfRange = errors.New("container: out of range")

// ErrCapacityExceeded indicates an addition that does not fit the fixed
// capacity. The container is unchanged.
//
// ErrCapacityExceeded is a control flow signal, not a failure: fixed-capacity
// containers report it on every full-condition the way a bounded queue
// reports backpressure. It matches [iox.ErrWouldBlock] so ecosystem
// predicates ([iox.IsWouldBlock], [iox.IsSemantic]) recognize it.
var ErrCapacityExceeded = fmt.Errorf("container: capacity exceeded (%w)", iox.ErrWouldBlock)

// IsCapacityExceeded reports whether err indicates a full container.
func IsCapacityExceeded(err error) bool {
	return errors.Is(err, ErrCapacityExceeded)
}
