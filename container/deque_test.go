// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/iox"

	"code.hybscloud.com/osw/container"
)

func dequeContent[T comparable](t *testing.T, d *container.Deque[T], want []T) {
	t.Helper()
	if d.Len() != len(want) {
		t.Fatalf("Len: got %d, want %d", d.Len(), len(want))
	}
	for i, w := range want {
		if got := d.MustAt(i); got != w {
			t.Fatalf("At(%d): got %v, want %v", i, got, w)
		}
	}
}

func checkDequeInvariants[T any](t *testing.T, d *container.Deque[T]) {
	t.Helper()
	if d.Len()+d.AvailableSize() != d.Cap() {
		t.Fatalf("Len+AvailableSize = %d+%d, want Cap %d", d.Len(), d.AvailableSize(), d.Cap())
	}
	if d.Empty() != (d.Len() == 0) {
		t.Fatalf("Empty() = %v with Len %d", d.Empty(), d.Len())
	}
	if d.Full() != (d.AvailableSize() == 0) {
		t.Fatalf("Full() = %v with AvailableSize %d", d.Full(), d.AvailableSize())
	}
	if got := d.End().Diff(d.Begin()); got != d.Len() {
		t.Fatalf("End-Begin = %d, want %d", got, d.Len())
	}
}

func TestDequePushPop(t *testing.T) {
	d := container.NewDeque[int](4)
	checkDequeInvariants(t, d)

	if !d.Empty() || d.Full() {
		t.Fatalf("new deque: Empty=%v Full=%v", d.Empty(), d.Full())
	}
	for i := range 4 {
		if err := d.PushBack(i); err != nil {
			t.Fatalf("PushBack(%d): %v", i, err)
		}
		checkDequeInvariants(t, d)
	}
	if err := d.PushBack(99); !errors.Is(err, container.ErrCapacityExceeded) {
		t.Fatalf("PushBack on full: got %v, want ErrCapacityExceeded", err)
	}
	if err := d.PushFront(99); !errors.Is(err, container.ErrCapacityExceeded) {
		t.Fatalf("PushFront on full: got %v, want ErrCapacityExceeded", err)
	}
	dequeContent(t, d, []int{0, 1, 2, 3})

	if d.Front() != 0 || d.Back() != 3 {
		t.Fatalf("Front/Back: got %d/%d", d.Front(), d.Back())
	}
	d.PopFront()
	d.PopBack()
	dequeContent(t, d, []int{1, 2})

	if err := d.PushFront(7); err != nil {
		t.Fatalf("PushFront: %v", err)
	}
	dequeContent(t, d, []int{7, 1, 2})
	checkDequeInvariants(t, d)
}

// TestDequeRoundTrip verifies push/pop round trips leave the container
// observationally unchanged.
func TestDequeRoundTrip(t *testing.T) {
	d := container.NewDeque[int](5)
	_ = d.AssignSlice([]int{1, 2, 3})

	_ = d.PushBack(42)
	d.PopBack()
	dequeContent(t, d, []int{1, 2, 3})

	_ = d.PushFront(42)
	d.PopFront()
	dequeContent(t, d, []int{1, 2, 3})
}

// TestDequeWrap exercises the circular storage: force the live range to
// straddle the buffer end, then run the positional operations across the
// seam.
func TestDequeWrap(t *testing.T) {
	d := container.NewDeque[int](10)
	if err := d.PushFront(1); err != nil {
		t.Fatalf("PushFront: %v", err)
	}
	d.PopBack()
	if !d.Empty() {
		t.Fatalf("expected empty after PushFront+PopBack")
	}

	vals := make([]int, 10)
	for i := range vals {
		vals[i] = i
	}
	if err := d.AssignSlice(vals); err != nil {
		t.Fatalf("AssignSlice: %v", err)
	}
	checkDequeInvariants(t, d)
	if d.Len() != 10 || d.MustAt(0) != 0 || d.MustAt(9) != 9 {
		t.Fatalf("after assign: Len=%d first=%d last=%d", d.Len(), d.MustAt(0), d.MustAt(9))
	}
	if !d.Full() {
		t.Fatal("expected full")
	}

	d.EraseRange(d.Begin().Add(1), d.Begin().Add(3))
	dequeContent(t, d, []int{0, 3, 4, 5, 6, 7, 8, 9})
	checkDequeInvariants(t, d)
}

func TestDequeAtErrors(t *testing.T) {
	d := container.NewDeque[int](3)
	_ = d.PushBack(5)
	if v, err := d.At(0); err != nil || v != 5 {
		t.Fatalf("At(0): %v, %v", v, err)
	}
	if _, err := d.At(1); !errors.Is(err, container.ErrOutOfRange) {
		t.Fatalf("At(1): got %v, want ErrOutOfRange", err)
	}
	if _, err := d.At(-1); !errors.Is(err, container.ErrOutOfRange) {
		t.Fatalf("At(-1): got %v, want ErrOutOfRange", err)
	}
}

func TestDequeCapacityErrorMatchesWouldBlock(t *testing.T) {
	d := container.NewDeque[int](1)
	_ = d.PushBack(0)
	err := d.PushBack(1)
	if !container.IsCapacityExceeded(err) {
		t.Fatalf("IsCapacityExceeded: %v", err)
	}
	if !iox.IsWouldBlock(err) {
		t.Fatalf("iox.IsWouldBlock: %v", err)
	}
}

func TestDequeResize(t *testing.T) {
	d := container.NewDeque[int](6)
	if err := d.Resize(4, 9); err != nil {
		t.Fatalf("Resize grow: %v", err)
	}
	dequeContent(t, d, []int{9, 9, 9, 9})

	if err := d.Resize(2, 0); err != nil {
		t.Fatalf("Resize shrink: %v", err)
	}
	dequeContent(t, d, []int{9, 9})

	if err := d.Resize(7, 0); !errors.Is(err, container.ErrCapacityExceeded) {
		t.Fatalf("Resize over capacity: got %v", err)
	}
	dequeContent(t, d, []int{9, 9})
}

func TestDequeInsertPicksCheaperSide(t *testing.T) {
	// Insert near the front moves the head side.
	d := container.NewDeque[int](10)
	_ = d.AssignSlice([]int{0, 1, 2, 3, 4, 5})
	it, err := d.Insert(d.Begin().Add(1), 77)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if it.Value() != 77 {
		t.Fatalf("returned iterator: got %d, want 77", it.Value())
	}
	dequeContent(t, d, []int{0, 77, 1, 2, 3, 4, 5})

	// Insert near the back moves the tail side.
	_ = d.AssignSlice([]int{0, 1, 2, 3, 4, 5})
	it, err = d.Insert(d.Begin().Add(5), 88)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if it.Value() != 88 {
		t.Fatalf("returned iterator: got %d, want 88", it.Value())
	}
	dequeContent(t, d, []int{0, 1, 2, 3, 4, 88, 5})
}

func TestDequeInsertN(t *testing.T) {
	d := container.NewDeque[int](10)
	_ = d.AssignSlice([]int{1, 2, 3})
	if err := d.InsertN(d.Begin().Add(2), 3, 7); err != nil {
		t.Fatalf("InsertN: %v", err)
	}
	dequeContent(t, d, []int{1, 2, 7, 7, 7, 3})

	if err := d.InsertN(d.Begin(), 5, 7); !errors.Is(err, container.ErrCapacityExceeded) {
		t.Fatalf("InsertN over capacity: got %v", err)
	}
	dequeContent(t, d, []int{1, 2, 7, 7, 7, 3})
}

func TestDequeInsertSlice(t *testing.T) {
	d := container.NewDeque[int](10)
	_ = d.AssignSlice([]int{1, 2, 3, 4})

	if err := d.InsertSlice(d.Begin().Add(1), []int{10, 11}); err != nil {
		t.Fatalf("InsertSlice near front: %v", err)
	}
	dequeContent(t, d, []int{1, 10, 11, 2, 3, 4})

	if err := d.InsertSlice(d.End().Prev(), []int{20, 21}); err != nil {
		t.Fatalf("InsertSlice near back: %v", err)
	}
	dequeContent(t, d, []int{1, 10, 11, 2, 3, 20, 21, 4})

	if err := d.InsertSlice(d.Begin(), []int{1, 2, 3}); !errors.Is(err, container.ErrCapacityExceeded) {
		t.Fatalf("InsertSlice over capacity: got %v", err)
	}
}

func TestDequeEraseSingle(t *testing.T) {
	d := container.NewDeque[int](8)
	_ = d.AssignSlice([]int{0, 1, 2, 3, 4})
	it := d.Erase(d.Begin().Add(1))
	dequeContent(t, d, []int{0, 2, 3, 4})
	if it.Value() != 2 {
		t.Fatalf("Erase return: got %d, want 2", it.Value())
	}
}

func TestDequeClear(t *testing.T) {
	d := container.NewDeque[string](4)
	_ = d.PushBack("a")
	_ = d.PushBack("b")
	d.Clear()
	if !d.Empty() || d.Len() != 0 {
		t.Fatalf("after Clear: Len=%d", d.Len())
	}
	if err := d.PushBack("c"); err != nil || d.Front() != "c" {
		t.Fatalf("push after Clear: %v", err)
	}
}

func TestDequeIteratorArithmetic(t *testing.T) {
	d := container.NewDeque[int](6)
	// Shift the window off the start of the buffer.
	_ = d.AssignSlice([]int{0, 1, 2, 3})
	d.PopFront()
	d.PopFront()
	_ = d.PushBack(4)
	_ = d.PushBack(5)
	dequeContent(t, d, []int{2, 3, 4, 5})

	first, last := d.Begin(), d.End()
	if got := last.Diff(first); got != 4 {
		t.Fatalf("last-first: got %d, want 4", got)
	}
	if got := first.Diff(last); got != -4 {
		t.Fatalf("first-last: got %d, want -4", got)
	}
	if !first.Less(last) || last.Less(first) {
		t.Fatal("ordering broken")
	}
	it := first.Add(2)
	if it.Value() != 4 {
		t.Fatalf("Add(2): got %d, want 4", it.Value())
	}
	if got := it.Sub(2); !got.Equal(first) {
		t.Fatal("Sub(2) != Begin")
	}
	if got := it.Add(-1); got.Value() != 3 {
		t.Fatalf("Add(-1): got %d, want 3", got.Value())
	}

	it.Set(40)
	if d.MustAt(2) != 40 {
		t.Fatalf("Set through iterator: got %d", d.MustAt(2))
	}

	// End iterator observes a back insert.
	end := d.End()
	_ = d.PushBack(6)
	if end.Value() != 6 {
		t.Fatalf("end iterator after PushBack: got %d, want 6", end.Value())
	}
}

func TestDequeIteratorCrossContainer(t *testing.T) {
	x := container.NewDeque[int](3)
	y := container.NewDeque[int](3)
	_ = x.PushBack(1)
	_ = y.PushBack(1)
	if x.Begin().Equal(y.Begin()) {
		t.Fatal("iterators of different containers compare equal")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("ordering iterators of different containers did not panic")
		}
	}()
	_ = x.Begin().Less(y.Begin())
}

func TestDequePopEmptyPanics(t *testing.T) {
	d := container.NewDeque[int](2)
	defer func() {
		if recover() == nil {
			t.Fatal("PopBack on empty deque did not panic")
		}
	}()
	d.PopBack()
}

func TestDequeEqual(t *testing.T) {
	x := container.NewDeque[int](5)
	y := container.NewDeque[int](8)
	_ = x.AssignSlice([]int{1, 2, 3})
	_ = y.AssignSlice([]int{1, 2, 3})
	if !container.DequeEqual(x, y) {
		t.Fatal("equal deques compare unequal")
	}
	_ = y.PushBack(4)
	if container.DequeEqual(x, y) {
		t.Fatal("different lengths compare equal")
	}
	y.PopBack()
	_ = y.SetAt(1, 9)
	if container.DequeEqual(x, y) {
		t.Fatal("different contents compare equal")
	}
}

func TestDequeSwap(t *testing.T) {
	x := container.NewDeque[int](5)
	y := container.NewDeque[int](5)
	_ = x.AssignSlice([]int{1, 2})
	_ = y.AssignSlice([]int{7, 8, 9})
	if err := x.Swap(y); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	dequeContent(t, x, []int{7, 8, 9})
	dequeContent(t, y, []int{1, 2})

	big := container.NewDeque[int](3)
	small := container.NewDeque[int](1)
	_ = big.AssignSlice([]int{1, 2, 3})
	if err := big.Swap(small); !errors.Is(err, container.ErrCapacityExceeded) {
		t.Fatalf("Swap into smaller: got %v", err)
	}
}

func TestDequeRangeOver(t *testing.T) {
	d := container.NewDeque[int](5)
	_ = d.AssignSlice([]int{4, 5, 6})
	i := 0
	for idx, v := range d.All() {
		if idx != i || v != 4+i {
			t.Fatalf("All: got (%d,%d) at step %d", idx, v, i)
		}
		i++
	}
	if i != 3 {
		t.Fatalf("All visited %d elements", i)
	}
	sum := 0
	for v := range d.Values() {
		sum += v
	}
	if sum != 15 {
		t.Fatalf("Values sum: got %d", sum)
	}
}

func TestDequePreallocatedBuffer(t *testing.T) {
	var arena [1024]byte
	d := container.NewDequeBuffer[int64](arena[:])
	wantCap := 1024/8 - 1
	if d.Cap() != wantCap {
		t.Fatalf("Cap: got %d, want %d", d.Cap(), wantCap)
	}
	for i := range 20 {
		if err := d.PushBack(int64(i * 3)); err != nil {
			t.Fatalf("PushBack: %v", err)
		}
	}
	for i := range 20 {
		if got := d.MustAt(i); got != int64(i*3) {
			t.Fatalf("At(%d): got %d", i, got)
		}
	}
	checkDequeInvariants(t, d)
}

func TestRingBufferAlias(t *testing.T) {
	var rb *container.RingBuffer[uint32] = container.NewDeque[uint32](7)
	_ = rb.PushBack(1)
	_ = rb.PushFront(2)
	if rb.Front() != 2 || rb.Back() != 1 {
		t.Fatalf("ring: front=%d back=%d", rb.Front(), rb.Back())
	}
}
