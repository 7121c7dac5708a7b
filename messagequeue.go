// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osw

import "unsafe"

// MessageQueue is a typed, bounded FIFO composed from OS wrapper
// primitives: a circular buffer guarded by one mutex, a send mutex and a
// receive mutex serializing each side to at most one blocked thread, and
// two auto-reset event flags signalling not-empty and not-full.
//
// The buffer is drawn from the pool installed with
// RegisterMessageQueueMemoryPool. Within one sender/receiver pair the
// queue is FIFO; with several senders, delivery order is the order in
// which they acquire the send mutex.
//
// Messages are copied in and out of the pool's untyped storage, which the
// garbage collector does not scan: a message type carrying pointers must
// stay reachable outside the queue while queued.
type MessageQueue[T any] struct {
	rb         msgRing[T]
	mtxRB      Mutex
	mtxSend    Mutex
	mtxRecv    Mutex
	evNotEmpty EventFlag
	evNotFull  EventFlag
}

// NewMessageQueue creates a queue holding at most maxSize elements.
// All internal resources come from the registered factories and the
// message-queue memory pool; on failure every partially-created resource
// is released and an error is returned.
func NewMessageQueue[T any](maxSize int) (*MessageQueue[T], error) {
	if maxSize < 1 {
		return nil, ErrInvalidParameter
	}
	pool := getMessageQueueMemoryPool()
	if pool == nil {
		return nil, ErrOther
	}
	q := &MessageQueue[T]{}
	if err := q.init(pool, maxSize+1); err != nil {
		q.teardown(pool)
		return nil, err
	}
	return q, nil
}

// DestroyMessageQueue releases a queue's primitives and buffer. Destroying
// nil is a no-op. Messages still queued are discarded.
func DestroyMessageQueue[T any](q *MessageQueue[T]) {
	if q == nil {
		return
	}
	q.teardown(getMessageQueueMemoryPool())
}

func (q *MessageQueue[T]) init(pool VariableMemoryPool, bufSize int) error {
	var elem T
	size := unsafe.Sizeof(elem)
	if size == 0 {
		return ErrInvalidParameter
	}
	raw := pool.Allocate(size * uintptr(bufSize))
	if raw == nil {
		return ErrOther
	}
	q.rb.raw = raw
	p := unsafe.SliceData(raw)
	if uintptr(unsafe.Pointer(p))%unsafe.Alignof(elem) != 0 {
		return ErrOther
	}
	q.rb.buf = unsafe.Slice((*T)(unsafe.Pointer(p)), bufSize)
	for i := range q.rb.buf {
		q.rb.buf[i] = elem
	}

	if q.mtxRB = NewMutex(); q.mtxRB == nil {
		return ErrOther
	}
	if q.mtxSend = NewMutex(); q.mtxSend == nil {
		return ErrOther
	}
	if q.mtxRecv = NewMutex(); q.mtxRecv == nil {
		return ErrOther
	}
	if q.evNotEmpty = NewEventFlag(true); q.evNotEmpty == nil {
		return ErrOther
	}
	if q.evNotFull = NewEventFlag(true); q.evNotFull == nil {
		return ErrOther
	}
	return nil
}

func (q *MessageQueue[T]) teardown(pool VariableMemoryPool) {
	DestroyEventFlag(q.evNotFull)
	DestroyEventFlag(q.evNotEmpty)
	DestroyMutex(q.mtxRecv)
	DestroyMutex(q.mtxSend)
	DestroyMutex(q.mtxRB)
	if pool != nil && q.rb.raw != nil {
		pool.Deallocate(q.rb.raw)
	}
	*q = MessageQueue[T]{}
}

// Send enqueues msg, waiting without bound for space.
func (q *MessageQueue[T]) Send(msg T) error {
	return q.TimedSend(msg, Forever)
}

// TrySend enqueues msg only if space is available now.
func (q *MessageQueue[T]) TrySend(msg T) error {
	return q.TimedSend(msg, Polling)
}

// TimedSend enqueues msg, waiting at most tmout for space. On expiry the
// queue is unchanged and ErrTimedOut is returned.
func (q *MessageQueue[T]) TimedSend(msg T, tmout Timeout) error {
	if err := q.mtxSend.TimedLock(tmout); err != nil {
		return err
	}
	if q.isFull() {
		if err := q.evNotFull.TimedWaitAny(tmout); err != nil {
			_ = q.mtxSend.Unlock()
			return err
		}
	}
	q.push(msg)
	_ = q.mtxSend.Unlock()
	return nil
}

// Receive dequeues the oldest message into msg, waiting without bound. A
// nil msg discards the dequeued message.
func (q *MessageQueue[T]) Receive(msg *T) error {
	return q.TimedReceive(msg, Forever)
}

// TryReceive dequeues only if a message is available now.
func (q *MessageQueue[T]) TryReceive(msg *T) error {
	return q.TimedReceive(msg, Polling)
}

// TimedReceive dequeues the oldest message into msg, waiting at most
// tmout. On expiry the queue is unchanged and ErrTimedOut is returned.
func (q *MessageQueue[T]) TimedReceive(msg *T, tmout Timeout) error {
	if err := q.mtxRecv.TimedLock(tmout); err != nil {
		return err
	}
	if q.isEmpty() {
		if err := q.evNotEmpty.TimedWaitAny(tmout); err != nil {
			_ = q.mtxRecv.Unlock()
			return err
		}
	}
	q.pop(msg)
	_ = q.mtxRecv.Unlock()
	return nil
}

// Size returns the number of queued messages.
func (q *MessageQueue[T]) Size() int {
	g := Lock(q.mtxRB)
	defer g.Unlock()
	return q.rb.size()
}

// MaxSize returns the queue capacity.
func (q *MessageQueue[T]) MaxSize() int {
	g := Lock(q.mtxRB)
	defer g.Unlock()
	return q.rb.maxSize()
}

// isFull samples fullness under the ring mutex and, when full, parks the
// not-full flag so the sender's subsequent wait observes the refreshed
// state.
func (q *MessageQueue[T]) isFull() bool {
	g := Lock(q.mtxRB)
	defer g.Unlock()
	full := q.rb.isFull()
	if full {
		_ = q.evNotFull.ResetAll()
	}
	return full
}

func (q *MessageQueue[T]) isEmpty() bool {
	g := Lock(q.mtxRB)
	defer g.Unlock()
	empty := q.rb.isEmpty()
	if empty {
		_ = q.evNotEmpty.ResetAll()
	}
	return empty
}

func (q *MessageQueue[T]) push(msg T) {
	g := Lock(q.mtxRB)
	defer g.Unlock()
	q.rb.push(msg)
	_ = q.evNotEmpty.SetAll()
}

func (q *MessageQueue[T]) pop(msg *T) {
	g := Lock(q.mtxRB)
	defer g.Unlock()
	q.rb.pop(msg)
	_ = q.evNotFull.SetAll()
}

// msgRing is the queue's circular buffer: bufSize slots, one spare to tell
// empty from full.
type msgRing[T any] struct {
	begin int
	end   int
	buf   []T
	raw   []byte
}

func (rb *msgRing[T]) nextIdx(idx int) int {
	if idx+1 < len(rb.buf) {
		return idx + 1
	}
	return idx + 1 - len(rb.buf)
}

func (rb *msgRing[T]) size() int {
	if rb.begin <= rb.end {
		return rb.end - rb.begin
	}
	return len(rb.buf) - rb.begin + rb.end
}

func (rb *msgRing[T]) maxSize() int { return len(rb.buf) - 1 }

func (rb *msgRing[T]) isEmpty() bool { return rb.begin == rb.end }

func (rb *msgRing[T]) isFull() bool { return rb.size() == rb.maxSize() }

func (rb *msgRing[T]) push(data T) {
	rb.buf[rb.end] = data
	rb.end = rb.nextIdx(rb.end)
}

func (rb *msgRing[T]) pop(data *T) {
	if data != nil {
		*data = rb.buf[rb.begin]
	}
	var zero T
	rb.buf[rb.begin] = zero
	rb.begin = rb.nextIdx(rb.begin)
}
