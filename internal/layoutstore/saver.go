package layoutstore

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"griddeck/internal/dashboard"
)

// Source is the slice of the dashboard store the saver reads from and
// reports back to.
type Source interface {
	ActiveLayout() dashboard.Layout
	SetPersistError(err error)
}

// Saver persists the active layout after mutations settle. It is the only
// asynchronous path in the system: a mutation commits and is undo/redo-able
// immediately, and the save happens on a debounce timer afterwards. A failed
// save never rolls back in-memory state; it sets the store's transient
// persist-error flag and retries on the next tick.
type Saver struct {
	backend  Store
	source   Source
	debounce time.Duration
	timeout  time.Duration
	logger   *log.Logger

	mu    sync.Mutex
	timer *time.Timer
	stop  bool
}

// NewSaver wires a saver to a backend and a state source. Register Notify as
// a store observer to activate it.
func NewSaver(backend Store, source Source, debounce time.Duration, logger *log.Logger) *Saver {
	if debounce <= 0 {
		debounce = 750 * time.Millisecond
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Saver{
		backend:  backend,
		source:   source,
		debounce: debounce,
		timeout:  5 * time.Second,
		logger:   logger,
	}
}

// Notify implements the store's observer contract. Events that need
// persistence reset the debounce timer, coalescing bursts of mutations into
// one save.
func (s *Saver) Notify(ev dashboard.Event) {
	if !ev.PersistNeeded {
		return
	}
	s.schedule()
}

func (s *Saver) schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.save)
}

// save runs on the timer goroutine; the source hands out a deep copy under
// its own lock, so no half-applied mutation can be observed.
func (s *Saver) save() {
	layout := s.source.ActiveLayout()
	if layout.ID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.backend.Save(ctx, layout); err != nil {
		s.logger.Warn("layout save failed, will retry", "layout", layout.ID, "err", err)
		s.source.SetPersistError(err)
		s.schedule()
		return
	}
	s.source.SetPersistError(nil)
	s.logger.Debug("layout saved", "layout", layout.ID, "widgets", len(layout.Widgets))
}

// Retry forces an immediate save attempt, for an explicit user retry.
func (s *Saver) Retry() {
	s.save()
}

// Flush cancels any pending timer and saves synchronously. Used on shutdown.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	layout := s.source.ActiveLayout()
	if layout.ID == "" {
		return nil
	}
	return s.backend.Save(ctx, layout)
}

// Stop disables future scheduling. Pending timers are cancelled.
func (s *Saver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
