// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !amd64 && !arm64

package internal

// CacheLineSize is the default L1 cache line size for other architectures.
// 64 bytes is the most common cache line size on modern CPUs.
const CacheLineSize = 64
