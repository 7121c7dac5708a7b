// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osw_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/osw"
)

func TestMessageQueueFIFO(t *testing.T) {
	q, err := osw.NewMessageQueue[int](8)
	require.NoError(t, err)
	defer osw.DestroyMessageQueue(q)

	assert.Equal(t, 8, q.MaxSize())
	assert.Equal(t, 0, q.Size())

	for i := range 8 {
		require.NoError(t, q.Send(i * 10))
	}
	assert.Equal(t, 8, q.Size())

	for i := range 8 {
		var got int
		require.NoError(t, q.Receive(&got))
		assert.Equal(t, i*10, got)
	}
	assert.Equal(t, 0, q.Size())
}

func TestMessageQueueTryVariants(t *testing.T) {
	q, err := osw.NewMessageQueue[string](2)
	require.NoError(t, err)
	defer osw.DestroyMessageQueue(q)

	var got string
	assert.ErrorIs(t, q.TryReceive(&got), osw.ErrTimedOut)

	require.NoError(t, q.TrySend("a"))
	require.NoError(t, q.TrySend("b"))
	assert.ErrorIs(t, q.TrySend("c"), osw.ErrTimedOut)

	require.NoError(t, q.TryReceive(&got))
	assert.Equal(t, "a", got)
}

func TestMessageQueueTimedSendExpires(t *testing.T) {
	q, err := osw.NewMessageQueue[int](1)
	require.NoError(t, err)
	defer osw.DestroyMessageQueue(q)

	require.NoError(t, q.Send(1))
	start := time.Now()
	assert.ErrorIs(t, q.TimedSend(2, osw.Millis(30)), osw.ErrTimedOut)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	// The failed send left the queue unchanged.
	assert.Equal(t, 1, q.Size())
	var got int
	require.NoError(t, q.Receive(&got))
	assert.Equal(t, 1, got)
}

func TestMessageQueueNilDestinationDiscards(t *testing.T) {
	q, err := osw.NewMessageQueue[int](4)
	require.NoError(t, err)
	defer osw.DestroyMessageQueue(q)

	require.NoError(t, q.Send(1))
	require.NoError(t, q.Send(2))
	require.NoError(t, q.Receive(nil)) // discard 1
	var got int
	require.NoError(t, q.Receive(&got))
	assert.Equal(t, 2, got)
}

// TestMessageQueueSaturation fills the queue, verifies the non-blocking
// refusal, then unblocks a pending send by receiving one message and
// drains everything in order.
func TestMessageQueueSaturation(t *testing.T) {
	q, err := osw.NewMessageQueue[int](10)
	require.NoError(t, err)
	defer osw.DestroyMessageQueue(q)

	for i := range 10 {
		require.NoError(t, q.Send(i))
	}
	assert.ErrorIs(t, q.TrySend(10), osw.ErrTimedOut)

	sent := make(chan error, 1)
	go func() {
		sent <- q.Send(10) // blocks until the receiver pops one
	}()
	select {
	case err := <-sent:
		t.Fatalf("send completed on a full queue: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	var got int
	require.NoError(t, q.Receive(&got))
	assert.Equal(t, 0, got)
	require.NoError(t, <-sent)

	for want := 1; want <= 10; want++ {
		require.NoError(t, q.Receive(&got))
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, q.Size())
}

func TestMessageQueueBlockingReceive(t *testing.T) {
	q, err := osw.NewMessageQueue[int](4)
	require.NoError(t, err)
	defer osw.DestroyMessageQueue(q)

	got := make(chan int, 1)
	go func() {
		var v int
		if err := q.Receive(&v); err == nil {
			got <- v
		}
	}()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, q.Send(77))
	select {
	case v := <-got:
		assert.Equal(t, 77, v)
	case <-time.After(2 * time.Second):
		t.Fatal("receiver did not wake")
	}
}

func TestMessageQueueSendHappensBeforeReceive(t *testing.T) {
	q, err := osw.NewMessageQueue[*int](4)
	require.NoError(t, err)
	defer osw.DestroyMessageQueue(q)

	payload := new(int)
	keepAlive := payload // queued pointers must stay reachable outside the ring
	go func() {
		*payload = 9
		_ = q.Send(payload)
	}()
	var got *int
	require.NoError(t, q.Receive(&got))
	require.NotNil(t, got)
	assert.Equal(t, 9, *got)
	_ = keepAlive
}

func TestMessageQueueMultiProducer(t *testing.T) {
	const producers = 4
	perProducer := 500
	if osw.RaceEnabled {
		perProducer = 50
	}
	q, err := osw.NewMessageQueue[[2]int](16)
	require.NoError(t, err)
	defer osw.DestroyMessageQueue(q)

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := range perProducer {
				assert.NoError(t, q.Send([2]int{p, i}))
			}
		}(p)
	}

	// Per-producer FIFO: each producer's sequence arrives in order.
	next := [producers]int{}
	for range producers * perProducer {
		var m [2]int
		require.NoError(t, q.Receive(&m))
		p, i := m[0], m[1]
		require.Equal(t, next[p], i, "producer %d out of order", p)
		next[p]++
	}
	wg.Wait()
	assert.Equal(t, 0, q.Size())
}

func TestMessageQueueInvalidCapacity(t *testing.T) {
	_, err := osw.NewMessageQueue[int](0)
	assert.ErrorIs(t, err, osw.ErrInvalidParameter)
	_, err = osw.NewMessageQueue[int](-3)
	assert.ErrorIs(t, err, osw.ErrInvalidParameter)
}

func TestMessageQueueDestroyNil(t *testing.T) {
	osw.DestroyMessageQueue[int](nil)
}

func BenchmarkMessageQueueSendReceive(b *testing.B) {
	q, err := osw.NewMessageQueue[int](64)
	if err != nil {
		b.Fatal(err)
	}
	defer osw.DestroyMessageQueue(q)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = q.Send(i)
		var v int
		_ = q.Receive(&v)
	}
}
