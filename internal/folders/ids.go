package folders

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"time"
)

// newFolderID returns fld-<unix-ms base32>-<random base32>. The time
// component plus 25 random bits makes process-lifetime collisions
// negligible; uniqueness is probabilistic, not guaranteed.
func newFolderID() string {
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	ts := strings.ToLower(enc.EncodeToString(millisBytes(time.Now().UnixMilli())))

	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back to
		// nanosecond jitter so folder creation still works.
		return fmt.Sprintf("fld-%s-%x", ts, time.Now().UnixNano()%0xfffff)
	}
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return "fld-" + ts + "-" + suffix
}

func millisBytes(ms int64) []byte {
	out := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		out[i] = byte(ms & 0xff)
		ms >>= 8
	}
	return out
}
