package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ledgerbook/internal/debounce"
)

func TestDebouncer_CoalescesTriggers(t *testing.T) {
	d := debounce.New(20 * time.Millisecond)
	defer d.Stop()

	var calls, last int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger("row-1", func() {
			atomic.AddInt32(&calls, 1)
			atomic.StoreInt32(&last, n)
		})
	}

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(5), atomic.LoadInt32(&last))
	assert.Equal(t, 0, d.Pending())
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := debounce.New(10 * time.Millisecond)
	defer d.Stop()

	var a, b int32
	d.Trigger("a", func() { atomic.AddInt32(&a, 1) })
	d.Trigger("b", func() { atomic.AddInt32(&b, 1) })

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&a) == 1 && atomic.LoadInt32(&b) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_CancelHandle(t *testing.T) {
	d := debounce.New(10 * time.Millisecond)
	defer d.Stop()

	var calls int32
	cancel := d.Trigger("k", func() { atomic.AddInt32(&calls, 1) })
	cancel()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestDebouncer_StaleCancelDoesNotDropNewerTrigger(t *testing.T) {
	d := debounce.New(10 * time.Millisecond)
	defer d.Stop()

	var calls int32
	stale := d.Trigger("k", func() {})
	d.Trigger("k", func() { atomic.AddInt32(&calls, 1) })
	stale()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_CancelByKey(t *testing.T) {
	d := debounce.New(10 * time.Millisecond)
	defer d.Stop()

	var calls int32
	d.Trigger("k", func() { atomic.AddInt32(&calls, 1) })
	d.Cancel("k")

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestDebouncer_Flush(t *testing.T) {
	d := debounce.New(time.Hour)
	defer d.Stop()

	var calls int32
	d.Trigger("k", func() { atomic.AddInt32(&calls, 1) })

	assert.True(t, d.Flush("k"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.False(t, d.Flush("k"))
}

func TestDebouncer_StopRejectsTriggers(t *testing.T) {
	d := debounce.New(10 * time.Millisecond)

	var calls int32
	d.Trigger("k", func() { atomic.AddInt32(&calls, 1) })
	d.Stop()
	d.Trigger("k", func() { atomic.AddInt32(&calls, 1) })

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Equal(t, 0, d.Pending())
}
