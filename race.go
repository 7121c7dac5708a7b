// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package osw

// RaceEnabled is true when the race detector is active.
// Used by tests to size down stress runs that would otherwise time out
// under instrumentation.
const RaceEnabled = true
