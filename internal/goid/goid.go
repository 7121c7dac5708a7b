// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package goid resolves the id of the calling goroutine.
//
// The runtime does not expose goroutine ids; the id is parsed from the
// first line of the goroutine's stack header ("goroutine N [running]:").
// The parse costs on the order of a microsecond, so callers on hot paths
// should resolve once per goroutine and carry the id.
package goid

import (
	"runtime"
)

// ID returns the calling goroutine's id.
func ID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// Header shape: "goroutine 123 [running]:"
	const prefix = len("goroutine ")
	id := int64(0)
	for i := prefix; i < n; i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	if id == 0 {
		panic("goid: malformed stack header")
	}
	return id
}
