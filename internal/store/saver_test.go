package store

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"triage-cli/internal/model"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func snapshotWith(id string) *DB {
	db := &DB{State: model.FolderState{Expanded: map[string]bool{}}}
	db.Records = []model.Record{sampleRecord(id, model.SeverityMajor)}
	db.State.UnassignedIDs = []string{id}
	return db
}

func TestSaverCoalescesToLatest(t *testing.T) {
	s := testStore(t)
	saver := NewSaver(s, 50*time.Millisecond, quietLogger())

	saver.Schedule(snapshotWith("rec-old"))
	saver.Schedule(snapshotWith("rec-new"))
	saver.Flush()

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Records) != 1 || got.Records[0].ID != "rec-new" {
		t.Fatalf("expected only latest snapshot persisted, got %+v", got.Records)
	}
}

func TestSaverFiresAfterDelay(t *testing.T) {
	s := testStore(t)
	saver := NewSaver(s, 10*time.Millisecond, quietLogger())

	saver.Schedule(snapshotWith("rec-x"))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got, err := s.Load()
		if err == nil && len(got.Records) == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("debounced save never landed")
}

func TestSaverFailureIsSwallowed(t *testing.T) {
	// Point the store at a path that cannot be created.
	bad := Store{Dir: "/dev/null/.triage"}
	saver := NewSaver(bad, time.Millisecond, quietLogger())
	saver.Schedule(snapshotWith("rec-x"))
	saver.Flush()
	// No panic and Flush returned; that is the contract.
}

func TestFlushWithNothingPending(t *testing.T) {
	s := testStore(t)
	saver := NewSaver(s, time.Minute, quietLogger())
	saver.Flush()
}
