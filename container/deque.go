// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

import "iter"

// Deque is a fixed-capacity double-ended sequence over circular storage.
//
// The underlying buffer holds capacity+1 slots; the spare slot distinguishes
// the empty state (begin == end) from the full state. Push and pop at either
// end are O(1); middle insert and erase are O(n) and shift whichever side is
// cheaper to move.
//
// A Deque either owns its storage (NewDeque, one allocation at construction)
// or views a caller-owned buffer (NewDequeBuffer). No operation allocates.
//
// Deque is not safe for concurrent use.
type Deque[T any] struct {
	buf   []T // capacity+1 slots arranged circularly
	begin int
	end   int
}

// RingBuffer is a Deque over caller-visible circular storage. The two names
// exist for call-site clarity; the semantics are identical.
type RingBuffer[T any] = Deque[T]

// NewDeque creates a Deque with owned storage for capacity elements.
func NewDeque[T any](capacity int) *Deque[T] {
	if capacity < 1 {
		panic("container: capacity must be >= 1")
	}
	return &Deque[T]{buf: make([]T, capacity+1)}
}

// NewDequeBuffer creates a Deque over a caller-owned byte buffer.
// Capacity is len(buf)/sizeof(T) - 1; the buffer must be aligned for T and
// large enough for at least two slots. The caller keeps ownership of buf and
// must keep it alive for the lifetime of the Deque.
func NewDequeBuffer[T any](buf []byte) *Deque[T] {
	slots := viewAs[T](buf)
	if len(slots) < 2 {
		panic("container: buffer too small for one element and the spare slot")
	}
	unsetRange(slots)
	return &Deque[T]{buf: slots}
}

func (d *Deque[T]) bufSize() int { return len(d.buf) }

func (d *Deque[T]) nextIdx(idx, n int) int {
	if idx+n < d.bufSize() {
		return idx + n
	}
	// wraparound
	return idx + n - d.bufSize()
}

func (d *Deque[T]) prevIdx(idx, n int) int {
	if idx >= n {
		return idx - n
	}
	// wraparound
	return d.bufSize() + idx - n
}

func (d *Deque[T]) distanceIdx(first, last int) int {
	if first <= last {
		return last - first
	}
	// wraparound
	return d.bufSize() - first + last
}

// Len returns the number of live elements.
func (d *Deque[T]) Len() int {
	return d.distanceIdx(d.begin, d.end)
}

// Cap returns the fixed capacity.
func (d *Deque[T]) Cap() int {
	return d.bufSize() - 1
}

// AvailableSize returns Cap() - Len().
func (d *Deque[T]) AvailableSize() int {
	return d.Cap() - d.Len()
}

// Empty reports whether the deque holds no elements.
func (d *Deque[T]) Empty() bool {
	return d.begin == d.end
}

// Full reports whether no more elements fit.
func (d *Deque[T]) Full() bool {
	return d.Len() == d.Cap()
}

// Clear destroys all elements. Capacity is unchanged.
func (d *Deque[T]) Clear() {
	for i := d.begin; i != d.end; i = d.nextIdx(i, 1) {
		unset(&d.buf[i])
	}
	d.end = d.begin
}

// At returns the idx-th element, or ErrOutOfRange.
func (d *Deque[T]) At(idx int) (T, error) {
	if idx < 0 || idx >= d.Len() {
		var zero T
		return zero, ErrOutOfRange
	}
	return d.buf[d.nextIdx(d.begin, idx)], nil
}

// MustAt returns the idx-th element. The index must be in range.
func (d *Deque[T]) MustAt(idx int) T {
	if idx < 0 || idx >= d.Len() {
		panic("container: deque index out of range")
	}
	return d.buf[d.nextIdx(d.begin, idx)]
}

// RefAt returns a pointer to the idx-th element. The index must be in range.
// The pointer is invalidated by any mutating operation.
func (d *Deque[T]) RefAt(idx int) *T {
	if idx < 0 || idx >= d.Len() {
		panic("container: deque index out of range")
	}
	return &d.buf[d.nextIdx(d.begin, idx)]
}

// SetAt replaces the idx-th element, or returns ErrOutOfRange.
func (d *Deque[T]) SetAt(idx int, data T) error {
	if idx < 0 || idx >= d.Len() {
		return ErrOutOfRange
	}
	d.buf[d.nextIdx(d.begin, idx)] = data
	return nil
}

// Front returns the first element. The deque must not be empty.
func (d *Deque[T]) Front() T {
	if d.Empty() {
		panic("container: front of empty deque")
	}
	return d.buf[d.begin]
}

// Back returns the last element. The deque must not be empty.
func (d *Deque[T]) Back() T {
	if d.Empty() {
		panic("container: back of empty deque")
	}
	return d.buf[d.prevIdx(d.end, 1)]
}

// PushBack appends data, or returns ErrCapacityExceeded when full.
func (d *Deque[T]) PushBack(data T) error {
	if d.Full() {
		return ErrCapacityExceeded
	}
	place(&d.buf[d.end], data)
	d.end = d.nextIdx(d.end, 1)
	return nil
}

// PushFront prepends data, or returns ErrCapacityExceeded when full.
func (d *Deque[T]) PushFront(data T) error {
	if d.Full() {
		return ErrCapacityExceeded
	}
	idx := d.prevIdx(d.begin, 1)
	place(&d.buf[idx], data)
	d.begin = idx
	return nil
}

// PopBack destroys the last element. The deque must not be empty.
func (d *Deque[T]) PopBack() {
	if d.Empty() {
		panic("container: pop from empty deque")
	}
	d.end = d.prevIdx(d.end, 1)
	unset(&d.buf[d.end])
}

// PopFront destroys the first element. The deque must not be empty.
func (d *Deque[T]) PopFront() {
	if d.Empty() {
		panic("container: pop from empty deque")
	}
	unset(&d.buf[d.begin])
	d.begin = d.nextIdx(d.begin, 1)
}

// Resize shrinks or grows the deque to n elements. Shrinking destroys the
// tail; growing appends copies of data. Returns ErrCapacityExceeded when
// n exceeds the capacity.
func (d *Deque[T]) Resize(n int, data T) error {
	if n < 0 {
		return ErrOutOfRange
	}
	if size := d.Len(); size >= n {
		for i := 0; i < size-n; i++ {
			d.PopBack()
		}
		return nil
	}
	if d.Cap() < n {
		return ErrCapacityExceeded
	}
	for rest := n - d.Len(); rest > 0; rest-- {
		_ = d.PushBack(data)
	}
	return nil
}

// AssignN replaces the contents with n copies of data.
func (d *Deque[T]) AssignN(n int, data T) error {
	if d.Cap() < n {
		return ErrCapacityExceeded
	}
	d.Clear()
	return d.Resize(n, data)
}

// AssignSlice replaces the contents with a copy of vals.
func (d *Deque[T]) AssignSlice(vals []T) error {
	if d.Cap() < len(vals) {
		return ErrCapacityExceeded
	}
	d.Clear()
	for _, v := range vals {
		_ = d.PushBack(v)
	}
	return nil
}

// Begin returns an iterator at the first element.
func (d *Deque[T]) Begin() DequeIterator[T] {
	return DequeIterator[T]{d: d, idx: d.begin}
}

// End returns the past-the-end iterator. It moves with the container on
// back inserts.
func (d *Deque[T]) End() DequeIterator[T] {
	return DequeIterator[T]{d: d, idx: d.end}
}

// All returns a position/value sequence over the live elements.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, idx := 0, d.begin; idx != d.end; i, idx = i+1, d.nextIdx(idx, 1) {
			if !yield(i, d.buf[idx]) {
				return
			}
		}
	}
}

// Values returns a value sequence over the live elements.
func (d *Deque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for idx := d.begin; idx != d.end; idx = d.nextIdx(idx, 1) {
			if !yield(d.buf[idx]) {
				return
			}
		}
	}
}

// Insert inserts data before pos and returns an iterator at the inserted
// element. pos must lie in [Begin, End].
func (d *Deque[T]) Insert(pos DequeIterator[T], data T) (DequeIterator[T], error) {
	d.checkInsertPos(pos)
	return d.insertN(pos, 1, data)
}

// InsertN inserts n copies of data before pos.
func (d *Deque[T]) InsertN(pos DequeIterator[T], n int, data T) error {
	d.checkInsertPos(pos)
	if n < 0 {
		return ErrOutOfRange
	}
	_, err := d.insertN(pos, n, data)
	return err
}

// InsertSlice inserts a copy of vals before pos.
func (d *Deque[T]) InsertSlice(pos DequeIterator[T], vals []T) error {
	d.checkInsertPos(pos)
	return d.insertSlice(pos, vals)
}

func (d *Deque[T]) checkInsertPos(pos DequeIterator[T]) {
	if pos.d != d {
		panic("container: iterator of a different deque")
	}
	if !(d.Begin().LessEq(pos) && pos.LessEq(d.End())) {
		panic("container: insert position out of range")
	}
}

// Erase destroys the element at pos and returns an iterator to the element
// that followed it. pos must lie in [Begin, End).
func (d *Deque[T]) Erase(pos DequeIterator[T]) DequeIterator[T] {
	return d.EraseRange(pos, pos.Next())
}

// EraseRange destroys [first, last) and returns an iterator to the element
// that followed the erased range.
func (d *Deque[T]) EraseRange(first, last DequeIterator[T]) DequeIterator[T] {
	if first.d != d || last.d != d {
		panic("container: iterator of a different deque")
	}
	if first.Equal(last) {
		return last
	}
	if !first.Less(last) {
		panic("container: erase range is inverted")
	}
	if !(d.Begin().LessEq(first) && last.LessEq(d.End())) {
		panic("container: erase range out of range")
	}
	n := last.Diff(first)
	if first.Diff(d.Begin()) >= d.End().Diff(last) {
		// move the end side
		for i := last; !i.Equal(d.End()); i = i.Next() {
			*i.Sub(n).Ref() = *i.Ref()
		}
		for i := d.End().Sub(n); !i.Equal(d.End()); i = i.Next() {
			unset(i.Ref())
		}
		d.end = d.prevIdx(d.end, n)
		return first
	}
	// move the begin side
	stop := d.Begin().Prev()
	for i := first.Prev(); !i.Equal(stop); i = i.Prev() {
		*i.Add(n).Ref() = *i.Ref()
	}
	for i, e := d.Begin(), d.Begin().Add(n); !i.Equal(e); i = i.Next() {
		unset(i.Ref())
	}
	d.begin = d.nextIdx(d.begin, n)
	return last
}

// insertN shifts whichever side of pos is cheaper to move; elements landing
// on slots past the old range are placed, elements landing on live slots are
// assigned. Returns an iterator at the first inserted element.
func (d *Deque[T]) insertN(pos DequeIterator[T], n int, data T) (DequeIterator[T], error) {
	if d.AvailableSize() < n {
		return DequeIterator[T]{}, ErrCapacityExceeded
	}
	if n == 0 {
		return pos, nil
	}
	if d.Len()/2 < pos.Diff(d.Begin()) {
		// move the end side
		posToEnd := d.End().Diff(pos)
		oldEnd := d.End()
		if posToEnd > n {
			for i := 0; i < n; i++ {
				place(d.End().Ref(), *new(T))
				d.end = d.nextIdx(d.end, 1)
			}
			for it := oldEnd.Prev(); !it.Equal(pos.Prev()); it = it.Prev() {
				*it.Add(n).Ref() = *it.Ref()
			}
			for it := pos; !it.Equal(pos.Add(n)); it = it.Next() {
				*it.Ref() = data
			}
		} else {
			for i := 0; i < n-posToEnd; i++ {
				place(d.End().Ref(), data)
				d.end = d.nextIdx(d.end, 1)
			}
			for it := pos; !it.Equal(pos.Add(posToEnd)); it = it.Next() {
				place(d.End().Ref(), *it.Ref())
				d.end = d.nextIdx(d.end, 1)
			}
			for it := pos; !it.Equal(oldEnd); it = it.Next() {
				*it.Ref() = data
			}
		}
		return pos, nil
	}
	// move the begin side
	begToPos := pos.Diff(d.Begin())
	oldBegin := d.Begin()
	if begToPos > n {
		for i := 0; i < n; i++ {
			place(d.Begin().Prev().Ref(), *new(T))
			d.begin = d.prevIdx(d.begin, 1)
		}
		for it := oldBegin; !it.Equal(pos); it = it.Next() {
			*it.Sub(n).Ref() = *it.Ref()
		}
		for it := pos.Sub(n); !it.Equal(pos); it = it.Next() {
			*it.Ref() = data
		}
	} else {
		for i := 0; i < n-begToPos; i++ {
			place(d.Begin().Prev().Ref(), data)
			d.begin = d.prevIdx(d.begin, 1)
		}
		for it := pos.Prev(); !it.Equal(oldBegin.Prev()); it = it.Prev() {
			place(d.Begin().Prev().Ref(), *it.Ref())
			d.begin = d.prevIdx(d.begin, 1)
		}
		for it := oldBegin; !it.Equal(pos); it = it.Next() {
			*it.Ref() = data
		}
	}
	return pos.Sub(n), nil
}

func (d *Deque[T]) insertSlice(pos DequeIterator[T], vals []T) error {
	n := len(vals)
	if d.AvailableSize() < n {
		return ErrCapacityExceeded
	}
	if n == 0 {
		return nil
	}
	if d.Len()/2 < pos.Diff(d.Begin()) {
		// move the end side
		posToEnd := d.End().Diff(pos)
		oldEnd := d.End()
		if posToEnd > n {
			for i := 0; i < n; i++ {
				place(d.End().Ref(), *new(T))
				d.end = d.nextIdx(d.end, 1)
			}
			for it := oldEnd.Prev(); !it.Equal(pos.Prev()); it = it.Prev() {
				*it.Add(n).Ref() = *it.Ref()
			}
			for i, it := 0, pos; i < n; i, it = i+1, it.Next() {
				*it.Ref() = vals[i]
			}
		} else {
			for _, v := range vals[posToEnd:] {
				place(d.End().Ref(), v)
				d.end = d.nextIdx(d.end, 1)
			}
			for it := pos; !it.Equal(pos.Add(posToEnd)); it = it.Next() {
				place(d.End().Ref(), *it.Ref())
				d.end = d.nextIdx(d.end, 1)
			}
			for i, it := 0, pos; !it.Equal(oldEnd); i, it = i+1, it.Next() {
				*it.Ref() = vals[i]
			}
		}
		return nil
	}
	// move the begin side
	begToPos := pos.Diff(d.Begin())
	oldBegin := d.Begin()
	if begToPos > n {
		for i := 0; i < n; i++ {
			place(d.Begin().Prev().Ref(), *new(T))
			d.begin = d.prevIdx(d.begin, 1)
		}
		for it := oldBegin; !it.Equal(pos); it = it.Next() {
			*it.Sub(n).Ref() = *it.Ref()
		}
		for i, it := 0, pos.Sub(n); !it.Equal(pos); i, it = i+1, it.Next() {
			*it.Ref() = vals[i]
		}
	} else {
		head := vals[:n-begToPos]
		for i := len(head) - 1; i >= 0; i-- {
			place(d.Begin().Prev().Ref(), head[i])
			d.begin = d.prevIdx(d.begin, 1)
		}
		for it := pos.Prev(); !it.Equal(oldBegin.Prev()); it = it.Prev() {
			place(d.Begin().Prev().Ref(), *it.Ref())
			d.begin = d.prevIdx(d.begin, 1)
		}
		for i, it := len(head), oldBegin; !it.Equal(pos); i, it = i+1, it.Next() {
			*it.Ref() = vals[i]
		}
	}
	return nil
}

// Swap exchanges the contents of two deques of any capacities, as long as
// each fits the other. Storage does not move.
func (d *Deque[T]) Swap(other *Deque[T]) error {
	if d == other {
		return nil
	}
	if d.Len() > other.Cap() || other.Len() > d.Cap() {
		return ErrCapacityExceeded
	}
	n, m := d.Len(), other.Len()
	common := min(n, m)
	for i := 0; i < common; i++ {
		*d.RefAt(i), *other.RefAt(i) = *other.RefAt(i), *d.RefAt(i)
	}
	for i := common; i < m; i++ {
		_ = d.PushBack(*other.RefAt(i))
	}
	for i := common; i < n; i++ {
		_ = other.PushBack(*d.RefAt(i))
	}
	for d.Len() > m {
		d.PopBack()
	}
	for other.Len() > n {
		other.PopBack()
	}
	return nil
}

// DequeEqual reports whether two deques hold equal elements in order.
func DequeEqual[T comparable](x, y *Deque[T]) bool {
	return DequeEqualFunc(x, y, func(a, b T) bool { return a == b })
}

// DequeEqualFunc is DequeEqual with a caller-supplied element predicate.
func DequeEqualFunc[T any](x, y *Deque[T], eq func(a, b T) bool) bool {
	if x.Len() != y.Len() {
		return false
	}
	for i := 0; i < x.Len(); i++ {
		if !eq(x.MustAt(i), y.MustAt(i)) {
			return false
		}
	}
	return true
}

// DequeIterator is a random-access position within a Deque. It carries the
// owning container and an index into the circular buffer; all arithmetic is
// computed through the container's wrap helpers. The zero value is not a
// valid position.
//
// Iterators of different containers compare unequal; ordering them panics.
type DequeIterator[T any] struct {
	d   *Deque[T]
	idx int
}

// Next returns the position one element forward.
func (it DequeIterator[T]) Next() DequeIterator[T] { return it.Add(1) }

// Prev returns the position one element backward.
func (it DequeIterator[T]) Prev() DequeIterator[T] { return it.Sub(1) }

// Add returns the position n elements forward (backward when n < 0).
func (it DequeIterator[T]) Add(n int) DequeIterator[T] {
	if it.d == nil {
		panic("container: zero deque iterator")
	}
	if n < 0 {
		return it.Sub(-n)
	}
	return DequeIterator[T]{d: it.d, idx: it.d.nextIdx(it.idx, n)}
}

// Sub returns the position n elements backward (forward when n < 0).
func (it DequeIterator[T]) Sub(n int) DequeIterator[T] {
	if it.d == nil {
		panic("container: zero deque iterator")
	}
	if n < 0 {
		return it.Add(-n)
	}
	return DequeIterator[T]{d: it.d, idx: it.d.prevIdx(it.idx, n)}
}

// Diff returns the distance it - x in elements.
func (it DequeIterator[T]) Diff(x DequeIterator[T]) int {
	if it.d == nil || it.d != x.d {
		panic("container: iterators of different deques")
	}
	if it.GreaterEq(x) {
		return it.d.distanceIdx(x.idx, it.idx)
	}
	return -it.d.distanceIdx(it.idx, x.idx)
}

// Ref returns a pointer to the element at the position. The position must
// refer to a live element.
func (it DequeIterator[T]) Ref() *T {
	if it.d == nil {
		panic("container: zero deque iterator")
	}
	return &it.d.buf[it.idx]
}

// Value returns the element at the position.
func (it DequeIterator[T]) Value() T { return *it.Ref() }

// Set replaces the element at the position.
func (it DequeIterator[T]) Set(data T) { *it.Ref() = data }

// Equal reports whether both positions refer to the same slot of the same
// container.
func (it DequeIterator[T]) Equal(x DequeIterator[T]) bool {
	return it.d == x.d && it.idx == x.idx
}

// Less orders two positions of the same container by distance from Begin.
func (it DequeIterator[T]) Less(x DequeIterator[T]) bool {
	if it.d == nil || it.d != x.d {
		panic("container: iterators of different deques")
	}
	return it.d.distanceIdx(it.d.begin, it.idx) < x.d.distanceIdx(x.d.begin, x.idx)
}

// LessEq reports it <= x.
func (it DequeIterator[T]) LessEq(x DequeIterator[T]) bool { return !x.Less(it) }

// Greater reports it > x.
func (it DequeIterator[T]) Greater(x DequeIterator[T]) bool { return x.Less(it) }

// GreaterEq reports it >= x.
func (it DequeIterator[T]) GreaterEq(x DequeIterator[T]) bool { return !it.Less(x) }
