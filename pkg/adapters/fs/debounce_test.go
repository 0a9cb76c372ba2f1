package fs

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestDebouncer_CoalescesPerKey(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := newDebouncer(20 * time.Millisecond)
	var notes, tags atomic.Int32

	for range 5 {
		d.add("notes", func() { notes.Add(1) })
	}
	d.add("myflomo-tags", func() { tags.Add(1) })

	assert.Eventually(t, func() bool {
		return notes.Load() == 1 && tags.Load() == 1
	}, time.Second, 5*time.Millisecond)

	d.stopAndWait()
	assert.Equal(t, int32(1), notes.Load())
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := newDebouncer(time.Hour)
	var fired atomic.Bool
	d.add("notes", func() { fired.Store(true) })

	d.stopAndWait()
	d.add("notes", func() { fired.Store(true) })

	assert.False(t, fired.Load())
	assert.Empty(t, d.pending)
}
