// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

import "unsafe"

// Slots outside the live range hold the zero value so released elements do
// not pin referenced objects. place and unset are the construct/destroy pair
// for one slot; unsetRange destroys a linear run of slots.

func place[T any](p *T, val T) {
	*p = val
}

func unset[T any](p *T) {
	var zero T
	*p = zero
}

func unsetRange[T any](s []T) {
	var zero T
	for i := range s {
		s[i] = zero
	}
}

// viewAs reinterprets a caller-owned byte buffer as a []T of maximal length.
// The buffer start must be aligned for T. The caller retains ownership.
func viewAs[T any](buf []byte) []T {
	size := unsafe.Sizeof(*new(T))
	if size == 0 {
		panic("container: zero-sized element type")
	}
	n := uintptr(len(buf)) / size
	if n == 0 {
		panic("container: buffer too small for one element")
	}
	p := unsafe.SliceData(buf)
	if uintptr(unsafe.Pointer(p))%unsafe.Alignof(*new(T)) != 0 {
		panic("container: buffer is not aligned for element type")
	}
	return unsafe.Slice((*T)(unsafe.Pointer(p)), n)
}
