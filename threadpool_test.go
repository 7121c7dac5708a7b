// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osw_test

import (
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/osw"
)

func TestThreadPoolRunsTasks(t *testing.T) {
	tp, err := osw.NewThreadPool(3, osw.ThreadOpts().Name("pool"))
	require.NoError(t, err)
	defer osw.DestroyThreadPool(tp)

	assert.Equal(t, "pool", tp.ThreadName())

	var ran atomix.Int32
	done := make(chan struct{})
	var remaining atomix.Int32
	const tasks = 12
	remaining.Store(tasks)
	for range tasks {
		err := tp.Start(osw.RunnableFunc(func() {
			ran.Add(1)
			if remaining.Add(-1) == 0 {
				close(done)
			}
		}), nil, osw.InheritPriority)
		require.NoError(t, err)
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("tasks did not finish")
	}
	assert.Equal(t, int32(tasks), ran.Load())
}

func TestThreadPoolWaitGuard(t *testing.T) {
	tp, err := osw.NewThreadPool(1, osw.ThreadOpts())
	require.NoError(t, err)
	defer osw.DestroyThreadPool(tp)

	var ran atomix.Bool
	var guard osw.WaitGuard
	require.NoError(t, tp.Start(osw.RunnableFunc(func() {
		time.Sleep(20 * time.Millisecond)
		ran.Store(true)
	}), &guard, osw.InheritPriority))

	require.NoError(t, guard.Wait())
	assert.True(t, ran.Load())
	guard.Release() // idempotent after Wait
}

func TestThreadPoolTryStartExhaustion(t *testing.T) {
	tp, err := osw.NewThreadPool(1, osw.ThreadOpts())
	require.NoError(t, err)
	defer osw.DestroyThreadPool(tp)

	release := make(chan struct{})
	var guard osw.WaitGuard
	require.NoError(t, tp.Start(osw.RunnableFunc(func() {
		<-release
	}), &guard, osw.InheritPriority))

	// The only worker is busy.
	err = tp.TryStart(osw.RunnableFunc(func() {}), nil, osw.InheritPriority)
	assert.ErrorIs(t, err, osw.ErrTimedOut)

	close(release)
	require.NoError(t, guard.Wait())

	// The worker is free again.
	var g2 osw.WaitGuard
	require.NoError(t, tp.Start(osw.RunnableFunc(func() {}), &g2, osw.InheritPriority))
	require.NoError(t, g2.Wait())
}

func TestThreadPoolTaskPriority(t *testing.T) {
	tp, err := osw.NewThreadPool(1, osw.ThreadOpts().Priority(osw.MinPriority()))
	require.NoError(t, err)
	defer osw.DestroyThreadPool(tp)

	observed := make(chan int, 1)
	var guard osw.WaitGuard
	require.NoError(t, tp.Start(osw.RunnableFunc(func() {
		observed <- osw.CurrentThread().Priority()
	}), &guard, osw.MaxPriority()))
	require.NoError(t, guard.Wait())
	assert.Equal(t, osw.MaxPriority(), <-observed)
}

func TestThreadPoolNilTask(t *testing.T) {
	tp, err := osw.NewThreadPool(1, osw.ThreadOpts())
	require.NoError(t, err)
	defer osw.DestroyThreadPool(tp)

	assert.ErrorIs(t, tp.Start(nil, nil, osw.InheritPriority), osw.ErrInvalidParameter)
}

func TestThreadPoolPanicHandler(t *testing.T) {
	tp, err := osw.NewThreadPool(1, osw.ThreadOpts())
	require.NoError(t, err)
	defer osw.DestroyThreadPool(tp)

	caught := make(chan any, 1)
	tp.SetPanicHandler(osw.ThreadPanicHandlerFunc(func(th osw.Thread, recovered any) {
		caught <- recovered
	}))

	var guard osw.WaitGuard
	require.NoError(t, tp.Start(osw.RunnableFunc(func() {
		panic("task failed")
	}), &guard, osw.InheritPriority))
	select {
	case r := <-caught:
		assert.Equal(t, "task failed", r)
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not invoked")
	}
	require.NoError(t, guard.Wait())
}
