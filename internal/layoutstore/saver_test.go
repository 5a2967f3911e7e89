package layoutstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"griddeck/internal/dashboard"
)

// fakeSource is a minimal Source with a fixed layout and persist-error flag.
type fakeSource struct {
	mu     sync.Mutex
	layout dashboard.Layout
	err    error
}

func (f *fakeSource) ActiveLayout() dashboard.Layout {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.layout.Clone()
}

func (f *fakeSource) SetPersistError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSource) persistError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// failingStore wraps a backend and fails Save until unblocked.
type failingStore struct {
	*MemoryStore
	mu   sync.Mutex
	fail bool
}

func (s *failingStore) Save(ctx context.Context, layout dashboard.Layout) error {
	s.mu.Lock()
	fail := s.fail
	s.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return s.MemoryStore.Save(ctx, layout)
}

func (s *failingStore) setFail(v bool) {
	s.mu.Lock()
	s.fail = v
	s.mu.Unlock()
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func testEvent() dashboard.Event {
	return dashboard.Event{Op: "move widget", LayoutID: "l1", PersistNeeded: true}
}

func TestSaverDebouncesBursts(t *testing.T) {
	backend := NewMemoryStore()
	source := &fakeSource{layout: dashboard.Layout{ID: "l1", Name: "one"}}
	s := NewSaver(backend, source, 30*time.Millisecond, nil)
	defer s.Stop()

	for i := 0; i < 10; i++ {
		s.Notify(testEvent())
	}
	waitFor(t, time.Second, func() bool { return backend.Saves() == 1 })
}

func TestSaverIgnoresNonPersistEvents(t *testing.T) {
	backend := NewMemoryStore()
	source := &fakeSource{layout: dashboard.Layout{ID: "l1"}}
	s := NewSaver(backend, source, 10*time.Millisecond, nil)
	defer s.Stop()

	s.Notify(dashboard.Event{Op: "switch layout", LayoutID: "l1"})
	time.Sleep(50 * time.Millisecond)
	if backend.Saves() != 0 {
		t.Errorf("got %d saves, want 0", backend.Saves())
	}
}

func TestSaverSetsAndClearsPersistError(t *testing.T) {
	backend := &failingStore{MemoryStore: NewMemoryStore()}
	backend.setFail(true)
	source := &fakeSource{layout: dashboard.Layout{ID: "l1"}}
	s := NewSaver(backend, source, 10*time.Millisecond, nil)
	defer s.Stop()

	s.Notify(testEvent())
	waitFor(t, time.Second, func() bool { return source.persistError() != nil })

	// The failure schedules its own retry; once the backend recovers the
	// flag clears without another mutation.
	backend.setFail(false)
	waitFor(t, time.Second, func() bool { return source.persistError() == nil })
	if backend.Saves() != 1 {
		t.Errorf("got %d saves, want 1", backend.Saves())
	}
}

func TestSaverRetry(t *testing.T) {
	backend := &failingStore{MemoryStore: NewMemoryStore()}
	backend.setFail(true)
	source := &fakeSource{layout: dashboard.Layout{ID: "l1"}}
	// Long debounce so the automatic retry stays out of the way.
	s := NewSaver(backend, source, time.Hour, nil)
	defer s.Stop()

	s.Retry()
	if source.persistError() == nil {
		t.Fatal("failed save must set the persist-error flag")
	}

	backend.setFail(false)
	s.Retry()
	if source.persistError() != nil {
		t.Error("successful retry must clear the flag")
	}
	if backend.Saves() != 1 {
		t.Errorf("got %d saves, want 1", backend.Saves())
	}
}

func TestSaverFlush(t *testing.T) {
	backend := NewMemoryStore()
	source := &fakeSource{layout: dashboard.Layout{ID: "l1"}}
	s := NewSaver(backend, source, time.Hour, nil)
	defer s.Stop()

	s.Notify(testEvent())
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if backend.Saves() != 1 {
		t.Errorf("got %d saves, want 1", backend.Saves())
	}

	// An empty source is a no-op flush.
	empty := NewSaver(backend, &fakeSource{}, time.Hour, nil)
	if err := empty.Flush(context.Background()); err != nil {
		t.Errorf("Flush with no active layout: %v", err)
	}
}

func TestSaverStop(t *testing.T) {
	backend := NewMemoryStore()
	source := &fakeSource{layout: dashboard.Layout{ID: "l1"}}
	s := NewSaver(backend, source, 10*time.Millisecond, nil)

	s.Stop()
	s.Notify(testEvent())
	time.Sleep(50 * time.Millisecond)
	if backend.Saves() != 0 {
		t.Errorf("got %d saves after Stop, want 0", backend.Saves())
	}
}
