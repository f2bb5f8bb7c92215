package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"triage-cli/internal/folders"
	"triage-cli/internal/model"
)

// DB is the in-memory aggregate loaded from and saved to the workspace
// database: record content plus the structural folder snapshot. Each
// process owns an independent in-memory snapshot; storage is best-effort
// continuity across restarts, not a coordination mechanism.
type DB struct {
	Version int
	Records []model.Record
	State   model.FolderState

	// Derived index for fast lookups. Not persisted.
	idxByID map[string]model.Record
}

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for an existing .triage
// data dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".triage")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".triage"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// Load reads the database and reconciles folder membership against the
// live record set, so a stale snapshot can never violate the partition
// invariant in memory.
func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := s.loadSQLite(context.Background())
	if err != nil {
		return nil, err
	}
	db.State = folders.Reconcile(db.State, db.RecordIndex())
	return db, nil
}

func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.saveSQLite(context.Background(), db)
}

// RecordIndex returns (building if needed) the id -> record index.
func (db *DB) RecordIndex() map[string]model.Record {
	if db.idxByID == nil || len(db.idxByID) != len(db.Records) {
		db.idxByID = make(map[string]model.Record, len(db.Records))
		for _, r := range db.Records {
			db.idxByID[r.ID] = r
		}
	}
	return db.idxByID
}

func (db *DB) FindRecord(id string) (*model.Record, bool) {
	for i := range db.Records {
		if db.Records[i].ID == id {
			return &db.Records[i], true
		}
	}
	return nil, false
}

// AddRecord inserts a new record into the store and the unassigned list.
// Existing folder membership is never disturbed. Missing ids/timestamps
// are filled in.
func (db *DB) AddRecord(r model.Record) model.Record {
	if strings.TrimSpace(r.ID) == "" {
		r.ID = db.NextRecordID()
	}
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	db.Records = append(db.Records, r)
	db.State.UnassignedIDs = append(db.State.UnassignedIDs, r.ID)
	db.idxByID = nil
	return r
}

// Clone returns a deep-enough copy for the debounced saver: the snapshot
// must stay stable while the in-memory state keeps moving.
func (db *DB) Clone() *DB {
	out := &DB{
		Version: db.Version,
		Records: append([]model.Record(nil), db.Records...),
		State:   db.State.Clone(),
	}
	return out
}
