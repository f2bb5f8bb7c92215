package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"time"
)

// newRandomID returns rec-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// NextRecordID generates a record id unique within this database.
func (db *DB) NextRecordID() string {
	for i := 0; i < 20; i++ {
		id, err := newRandomID("rec")
		if err != nil {
			break
		}
		if _, exists := db.RecordIndex()[id]; !exists {
			return id
		}
	}
	// Extremely unlikely fallback.
	return fmt.Sprintf("rec-%d", time.Now().UnixNano())
}
