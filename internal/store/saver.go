package store

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Saver coalesces rapid Schedule calls into a single write. Only the
// most recent snapshot is persisted; earlier pending snapshots are
// discarded. Failures are logged and otherwise ignored so the UI never
// blocks on disk.
type Saver struct {
	store Store
	delay time.Duration
	log   *logrus.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *DB
	wg      sync.WaitGroup
}

func NewSaver(store Store, delay time.Duration, log *logrus.Logger) *Saver {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	if log == nil {
		log = logrus.New()
	}
	return &Saver{store: store, delay: delay, log: log}
}

// Schedule queues db for persistence after the debounce delay. The
// caller keeps ownership of db; pass a Clone.
func (s *Saver) Schedule(db *DB) {
	if db == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = db
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

func (s *Saver) fire() {
	s.mu.Lock()
	db := s.pending
	s.pending = nil
	s.timer = nil
	if db == nil {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	defer s.wg.Done()
	s.write(db)
}

// Flush writes any pending snapshot immediately. Call before exit.
func (s *Saver) Flush() {
	s.mu.Lock()
	db := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if db != nil {
		s.write(db)
	}
	s.wg.Wait()
}

func (s *Saver) write(db *DB) {
	if err := s.store.Save(db); err != nil {
		s.log.WithError(err).Warn("save failed, keeping in-memory state")
	}
}
