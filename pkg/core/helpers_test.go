package core_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/myflomo/pkg/adapters/memory"
	"github.com/aretw0/myflomo/pkg/core"
)

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// stepClock returns a clock that advances one minute per call.
func stepClock() func() time.Time {
	next := baseTime
	return func() time.Time {
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

// seqIDs returns a generator producing note-1, note-2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("note-%d", n)
	}
}

func newTestService(t *testing.T) (*core.Service, *memory.Storage) {
	t.Helper()
	storage := memory.NewStorage()
	svc := core.NewService(storage, core.Config{Clock: stepClock(), NewID: seqIDs()})
	svc.Rehydrate(t.Context())
	return svc, storage
}
