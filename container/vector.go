// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

import "iter"

// Vector is a fixed-capacity linear sequence.
//
// Slots [0, Len) hold live elements; slots [Len, Cap) hold the zero value.
// Positions are plain indices. Insert shifts the tail rightward, erase
// shifts it leftward; there is no wraparound.
//
// A Vector either owns its storage (NewVector) or views a caller-owned
// buffer (NewVectorBuffer). No operation allocates.
//
// Vector is not safe for concurrent use.
type Vector[T any] struct {
	buf  []T
	size int
}

// NewVector creates a Vector with owned storage for capacity elements.
func NewVector[T any](capacity int) *Vector[T] {
	if capacity < 1 {
		panic("container: capacity must be >= 1")
	}
	return &Vector[T]{buf: make([]T, capacity)}
}

// NewVectorBuffer creates a Vector over a caller-owned byte buffer.
// Capacity is len(buf)/sizeof(T); the buffer must be aligned for T. The
// caller keeps ownership of buf and must keep it alive for the lifetime of
// the Vector.
func NewVectorBuffer[T any](buf []byte) *Vector[T] {
	slots := viewAs[T](buf)
	unsetRange(slots)
	return &Vector[T]{buf: slots}
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int { return v.size }

// Cap returns the fixed capacity.
func (v *Vector[T]) Cap() int { return len(v.buf) }

// AvailableSize returns Cap() - Len().
func (v *Vector[T]) AvailableSize() int { return v.Cap() - v.size }

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool { return v.size == 0 }

// Full reports whether no more elements fit.
func (v *Vector[T]) Full() bool { return v.size == v.Cap() }

// Clear destroys all elements. Capacity is unchanged.
func (v *Vector[T]) Clear() {
	unsetRange(v.buf[:v.size])
	v.size = 0
}

// At returns the idx-th element, or ErrOutOfRange.
func (v *Vector[T]) At(idx int) (T, error) {
	if idx < 0 || idx >= v.size {
		var zero T
		return zero, ErrOutOfRange
	}
	return v.buf[idx], nil
}

// MustAt returns the idx-th element. The index must be in range.
func (v *Vector[T]) MustAt(idx int) T {
	if idx < 0 || idx >= v.size {
		panic("container: vector index out of range")
	}
	return v.buf[idx]
}

// RefAt returns a pointer to the idx-th element. The index must be in range.
// The pointer is invalidated by any mutating operation.
func (v *Vector[T]) RefAt(idx int) *T {
	if idx < 0 || idx >= v.size {
		panic("container: vector index out of range")
	}
	return &v.buf[idx]
}

// SetAt replaces the idx-th element, or returns ErrOutOfRange.
func (v *Vector[T]) SetAt(idx int, data T) error {
	if idx < 0 || idx >= v.size {
		return ErrOutOfRange
	}
	v.buf[idx] = data
	return nil
}

// Front returns the first element. The vector must not be empty.
func (v *Vector[T]) Front() T {
	if v.Empty() {
		panic("container: front of empty vector")
	}
	return v.buf[0]
}

// Back returns the last element. The vector must not be empty.
func (v *Vector[T]) Back() T {
	if v.Empty() {
		panic("container: back of empty vector")
	}
	return v.buf[v.size-1]
}

// Slice returns the live elements as a view into the vector's storage.
// The view is invalidated by any mutating operation.
func (v *Vector[T]) Slice() []T { return v.buf[:v.size] }

// All returns an index/value sequence over the live elements.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}

// Values returns a value sequence over the live elements.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(v.buf[i]) {
				return
			}
		}
	}
}

// PushBack appends data, or returns ErrCapacityExceeded when full.
func (v *Vector[T]) PushBack(data T) error {
	if v.Full() {
		return ErrCapacityExceeded
	}
	place(&v.buf[v.size], data)
	v.size++
	return nil
}

// PopBack destroys the last element. The vector must not be empty.
func (v *Vector[T]) PopBack() {
	if v.Empty() {
		panic("container: pop from empty vector")
	}
	v.size--
	unset(&v.buf[v.size])
}

// Resize shrinks or grows the vector to n elements. Shrinking destroys the
// tail; growing appends copies of data.
func (v *Vector[T]) Resize(n int, data T) error {
	if n < 0 {
		return ErrOutOfRange
	}
	if v.size >= n {
		unsetRange(v.buf[n:v.size])
		v.size = n
		return nil
	}
	if v.Cap() < n {
		return ErrCapacityExceeded
	}
	for i := v.size; i < n; i++ {
		place(&v.buf[i], data)
	}
	v.size = n
	return nil
}

// AssignN replaces the contents with n copies of data.
func (v *Vector[T]) AssignN(n int, data T) error {
	if v.Cap() < n {
		return ErrCapacityExceeded
	}
	v.Clear()
	return v.Resize(n, data)
}

// AssignSlice replaces the contents with a copy of vals.
func (v *Vector[T]) AssignSlice(vals []T) error {
	if v.Cap() < len(vals) {
		return ErrCapacityExceeded
	}
	v.Clear()
	for _, val := range vals {
		place(&v.buf[v.size], val)
		v.size++
	}
	return nil
}

// Insert inserts data before position idx, 0 <= idx <= Len.
func (v *Vector[T]) Insert(idx int, data T) error {
	return v.InsertN(idx, 1, data)
}

// InsertN inserts n copies of data before position idx.
func (v *Vector[T]) InsertN(idx, n int, data T) error {
	if idx < 0 || idx > v.size || n < 0 {
		return ErrOutOfRange
	}
	if v.AvailableSize() < n {
		return ErrCapacityExceeded
	}
	v.openGap(idx, n)
	for i := idx; i < idx+n; i++ {
		v.buf[i] = data
	}
	return nil
}

// InsertSlice inserts a copy of vals before position idx.
func (v *Vector[T]) InsertSlice(idx int, vals []T) error {
	if idx < 0 || idx > v.size {
		return ErrOutOfRange
	}
	if v.AvailableSize() < len(vals) {
		return ErrCapacityExceeded
	}
	v.openGap(idx, len(vals))
	for i, val := range vals {
		v.buf[idx+i] = val
	}
	return nil
}

// openGap shifts the tail right by n, element by element from the back.
func (v *Vector[T]) openGap(idx, n int) {
	for i := v.size - 1; i >= idx; i-- {
		v.buf[i+n] = v.buf[i]
	}
	v.size += n
}

// Erase destroys the element at idx. The index must be in range.
func (v *Vector[T]) Erase(idx int) {
	v.EraseRange(idx, idx+1)
}

// EraseRange destroys elements [first, last), shifting the tail leftward.
func (v *Vector[T]) EraseRange(first, last int) {
	if first < 0 || last > v.size || first > last {
		panic("container: erase range out of range")
	}
	n := last - first
	for i := last; i < v.size; i++ {
		v.buf[i-n] = v.buf[i]
	}
	unsetRange(v.buf[v.size-n : v.size])
	v.size -= n
}

// Swap exchanges the contents of two vectors of any capacities, as long as
// each fits the other. Storage does not move.
func (v *Vector[T]) Swap(other *Vector[T]) error {
	if v == other {
		return nil
	}
	if v.size > other.Cap() || other.size > v.Cap() {
		return ErrCapacityExceeded
	}
	n, m := v.size, other.size
	common := min(n, m)
	for i := 0; i < common; i++ {
		v.buf[i], other.buf[i] = other.buf[i], v.buf[i]
	}
	for i := common; i < m; i++ {
		place(&v.buf[i], other.buf[i])
	}
	for i := common; i < n; i++ {
		place(&other.buf[i], v.buf[i])
	}
	if n > m {
		unsetRange(v.buf[m:n])
	} else {
		unsetRange(other.buf[n:m])
	}
	v.size, other.size = m, n
	return nil
}

// VectorEqual reports whether two vectors hold equal elements in order.
func VectorEqual[T comparable](x, y *Vector[T]) bool {
	return VectorEqualFunc(x, y, func(a, b T) bool { return a == b })
}

// VectorEqualFunc is VectorEqual with a caller-supplied element predicate.
func VectorEqualFunc[T any](x, y *Vector[T], eq func(a, b T) bool) bool {
	if x.size != y.size {
		return false
	}
	for i := 0; i < x.size; i++ {
		if !eq(x.buf[i], y.buf[i]) {
			return false
		}
	}
	return true
}
