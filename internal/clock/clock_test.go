package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReal_AfterFuncFires(t *testing.T) {
	fired := make(chan struct{})
	Real().AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("AfterFunc callback did not run")
	}
}

func TestReal_AfterFuncStopPrevents(t *testing.T) {
	var count atomic.Int32
	timer := Real().AfterFunc(50*time.Millisecond, func() { count.Add(1) })
	timer.Stop()

	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, count.Load())
}

func TestReal_EveryRepeatsUntilStopped(t *testing.T) {
	var count atomic.Int32
	timer := Real().Every(10*time.Millisecond, func() { count.Add(1) })

	assert.Eventually(t, func() bool { return count.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	timer.Stop()
	timer.Stop()

	time.Sleep(30 * time.Millisecond)
	after := count.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, count.Load())
}
