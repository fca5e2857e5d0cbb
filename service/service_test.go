package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"fincalc/repository"
)

var errStoreDown = errors.New("store unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// failingStore fails every read and write.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errStoreDown
}

func (failingStore) Set(context.Context, string, string) error {
	return errStoreDown
}

// readFailingStore fails every read and passes writes through.
type readFailingStore struct {
	repository.KeyValueStore
}

func (readFailingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errStoreDown
}

// testClock is a settable clock.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{t: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
