// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package container provides fixed-capacity, non-allocating sequence
// containers for embedded and real-time software.
//
// All containers allocate their storage at most once, at construction, or
// operate over a caller-supplied buffer. No operation allocates on the hot
// path, and capacity never grows.
//
//   - Deque: circular-buffer double-ended sequence with random-access
//     positional iterators (RingBuffer is an alias)
//   - Vector: linear sequence with index-based access
//   - List: intrusive doubly-linked list whose elements carry their own links
//
// # Storage Models
//
// Owned storage performs one allocation at construction:
//
//	d := container.NewDeque[int](64)
//
// Preallocated storage views a caller-owned byte buffer; the container never
// takes ownership and the caller must keep the buffer alive:
//
//	var arena [1024]byte
//	d := container.NewDequeBuffer[int](arena[:])
//
// # Error Model
//
// Runtime failures (capacity exhaustion, checked out-of-range access) are
// reported as sentinel errors: [ErrCapacityExceeded], [ErrOutOfRange].
// Programmer errors (popping an empty container, ordering iterators of
// different containers) panic.
//
// # Iteration
//
// Deque positions are value-type iterators carrying the owning container and
// a buffer index; arithmetic wraps through the circular storage:
//
//	it := d.Begin()
//	for !it.Equal(d.End()) {
//	    _ = it.Value()
//	    it = it.Next()
//	}
//
// Go-native range iteration is available on every container:
//
//	for i, v := range d.All() { ... }
//
// Iterators are invalidated by any mutating operation except a back insert
// observed through an end iterator, which moves with the container.
package container
