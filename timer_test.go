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

func TestPeriodicTimerFires(t *testing.T) {
	var fired atomix.Int32
	tm := osw.NewPeriodicTimer(osw.RunnableFunc(func() {
		fired.Add(1)
	}), 10, "tick")
	require.NotNil(t, tm)
	defer osw.DestroyPeriodicTimer(tm)

	assert.Equal(t, "tick", tm.Name())
	assert.Equal(t, int64(10), tm.PeriodInMillis())
	assert.False(t, tm.IsStarted())

	tm.Start()
	assert.True(t, tm.IsStarted())
	time.Sleep(100 * time.Millisecond)
	tm.Stop()
	assert.False(t, tm.IsStarted())

	n := fired.Load()
	assert.GreaterOrEqual(t, n, int32(3), "fired %d times in 100ms at period 10ms", n)

	// No more fires after Stop.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, fired.Load())
}

func TestPeriodicTimerZeroPeriodRejected(t *testing.T) {
	assert.Nil(t, osw.NewPeriodicTimer(osw.RunnableFunc(func() {}), 0, ""))
	assert.Nil(t, osw.NewPeriodicTimer(osw.RunnableFunc(func() {}), -5, ""))
	assert.Nil(t, osw.NewPeriodicTimer(nil, 10, ""))
}

func TestPeriodicTimerStartWhileStartedIsNoOp(t *testing.T) {
	var fired atomix.Int32
	tm := osw.NewPeriodicTimer(osw.RunnableFunc(func() {
		fired.Add(1)
	}), 10, "")
	require.NotNil(t, tm)
	defer osw.DestroyPeriodicTimer(tm)

	tm.Start()
	tm.Start()
	tm.Start()
	time.Sleep(55 * time.Millisecond)
	tm.Stop()
	// A duplicated start must not multiply the fire rate.
	assert.LessOrEqual(t, fired.Load(), int32(8))
}

func TestPeriodicTimerRestart(t *testing.T) {
	var fired atomix.Int32
	tm := osw.NewPeriodicTimer(osw.RunnableFunc(func() {
		fired.Add(1)
	}), 10, "")
	require.NotNil(t, tm)
	defer osw.DestroyPeriodicTimer(tm)

	tm.Start()
	time.Sleep(35 * time.Millisecond)
	tm.Stop()
	first := fired.Load()
	assert.Greater(t, first, int32(0))

	tm.Start()
	time.Sleep(35 * time.Millisecond)
	tm.Stop()
	assert.Greater(t, fired.Load(), first)
}

func TestPeriodicTimerPanicStopsThenHandles(t *testing.T) {
	type report struct {
		started   bool
		recovered any
	}
	got := make(chan report, 1)
	var tm osw.PeriodicTimer
	tm = osw.NewPeriodicTimer(osw.RunnableFunc(func() {
		panic("tick failed")
	}), 10, "failing")
	require.NotNil(t, tm)
	defer osw.DestroyPeriodicTimer(tm)

	tm.SetPanicHandler(osw.PeriodicTimerPanicHandlerFunc(func(pt osw.PeriodicTimer, recovered any) {
		got <- report{started: pt.IsStarted(), recovered: recovered}
	}))
	tm.Start()
	select {
	case r := <-got:
		// Stop ran before the handler.
		assert.False(t, r.started)
		assert.Equal(t, "tick failed", r.recovered)
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
	assert.False(t, tm.IsStarted())
}

func TestPeriodicTimerCallbackIsNonThreadContext(t *testing.T) {
	m := osw.NewMutex()
	defer osw.DestroyMutex(m)

	got := make(chan error, 1)
	tm := osw.NewPeriodicTimer(osw.RunnableFunc(func() {
		select {
		case got <- m.Lock():
		default:
		}
	}), 5, "")
	require.NotNil(t, tm)
	defer osw.DestroyPeriodicTimer(tm)

	tm.Start()
	defer tm.Stop()
	select {
	case err := <-got:
		assert.ErrorIs(t, err, osw.ErrCalledByNonThread)
	case <-time.After(2 * time.Second):
		t.Fatal("callback did not run")
	}
}

func TestOneShotTimerFiresOnce(t *testing.T) {
	var fired atomix.Int32
	tm := osw.NewOneShotTimer(osw.RunnableFunc(func() {
		fired.Add(1)
	}), "oneshot")
	require.NotNil(t, tm)
	defer osw.DestroyOneShotTimer(tm)

	assert.Equal(t, "oneshot", tm.Name())
	assert.False(t, tm.IsStarted())
	tm.Start(10)
	assert.True(t, tm.IsStarted())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.False(t, tm.IsStarted())
}

func TestOneShotTimerDuplicateStartIgnored(t *testing.T) {
	var fired atomix.Int32
	tm := osw.NewOneShotTimer(osw.RunnableFunc(func() {
		fired.Add(1)
	}), "")
	require.NotNil(t, tm)
	defer osw.DestroyOneShotTimer(tm)

	tm.Start(20)
	tm.Start(1) // ignored: a fire is pending
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load(), "second start must not shorten the pending delay")
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestOneShotTimerStopCancels(t *testing.T) {
	var fired atomix.Int32
	tm := osw.NewOneShotTimer(osw.RunnableFunc(func() {
		fired.Add(1)
	}), "")
	require.NotNil(t, tm)
	defer osw.DestroyOneShotTimer(tm)

	tm.Start(30)
	tm.Stop()
	assert.False(t, tm.IsStarted())
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	// Stopped timer can be armed again.
	tm.Start(5)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestOneShotTimerPanicHandled(t *testing.T) {
	got := make(chan any, 1)
	tm := osw.NewOneShotTimer(osw.RunnableFunc(func() {
		panic("late failure")
	}), "")
	require.NotNil(t, tm)
	defer osw.DestroyOneShotTimer(tm)

	tm.SetPanicHandler(osw.OneShotTimerPanicHandlerFunc(func(ot osw.OneShotTimer, recovered any) {
		got <- recovered
	}))
	tm.Start(5)
	select {
	case r := <-got:
		assert.Equal(t, "late failure", r)
	case <-time.After(2 * time.Second):
		t.Fatal("handler was not invoked")
	}
	assert.False(t, tm.IsStarted())
}

func TestOneShotTimerNilRunnable(t *testing.T) {
	assert.Nil(t, osw.NewOneShotTimer(nil, ""))
}
