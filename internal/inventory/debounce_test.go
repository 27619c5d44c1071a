package inventory

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_RapidCallsRunLastOnly(t *testing.T) {
	var called, last int32
	d := NewDebouncer(40 * time.Millisecond)

	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Debounce(func() {
			atomic.StoreInt32(&last, v)
			atomic.AddInt32(&called, 1)
		})
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&called) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(&called))
	assert.EqualValues(t, 5, atomic.LoadInt32(&last))
}

func TestDebouncer_Cancel(t *testing.T) {
	var called int32
	d := NewDebouncer(30 * time.Millisecond)

	d.Debounce(func() { atomic.AddInt32(&called, 1) })
	d.Cancel()

	time.Sleep(80 * time.Millisecond)
	assert.EqualValues(t, 0, atomic.LoadInt32(&called))
}

func TestNewDebouncer_DefaultsDuration(t *testing.T) {
	assert.Equal(t, DefaultSearchDebounce, NewDebouncer(0).duration)
}
