// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osw

import "time"

// Timeout bounds a blocking operation. It has three states: Polling (never
// sleep), Forever (no bound), or a non-negative millisecond count.
type Timeout int64

const (
	// Polling makes a blocking call return immediately.
	Polling Timeout = 0
	// Forever removes the bound from a blocking call.
	Forever Timeout = -1
)

// Millis returns a Timeout of n milliseconds. Negative n is Forever.
func Millis(n int64) Timeout {
	if n < 0 {
		return Forever
	}
	return Timeout(n)
}

// IsPolling reports whether the timeout forbids sleeping.
func (t Timeout) IsPolling() bool { return t == Polling }

// IsForever reports whether the timeout is unbounded.
func (t Timeout) IsForever() bool { return t < 0 }

// Duration converts a bounded timeout to a time.Duration.
// It must not be called on Forever.
func (t Timeout) Duration() time.Duration {
	if t.IsForever() {
		panic("osw: Duration of Forever")
	}
	return time.Duration(t) * time.Millisecond
}
