package util

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// NewTraceID generates a new ULID string used to correlate a single
// gc run or CLI operation across log lines. It never enters the
// content-addressing hash contract — the engine's own identity is the
// SHA-1 hash of the object graph, not this ID.
func NewTraceID() string {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// ShortID returns the last 7 characters of an ID in lowercase, for
// compact display next to a log line — ULIDs carry most of their
// entropy in the trailing characters, unlike the leading timestamp.
func ShortID(id string) string {
	if len(id) <= 7 {
		return strings.ToLower(id)
	}
	return strings.ToLower(id[len(id)-7:])
}
