// Package session tracks per-token activity so that idle sessions can be
// forced to re-authenticate.
package session

import (
	"sync"
	"time"
)

// Tracker records the last activity timestamp per session (JWT ID). Entries
// for idle sessions are dropped on touch, so the map stays bounded by the
// number of live tokens.
type Tracker struct {
	mu      sync.Mutex
	timeout time.Duration
	seen    map[string]time.Time
	now     func() time.Time
}

// NewTracker creates a Tracker that expires sessions idle longer than timeout.
func NewTracker(timeout time.Duration) *Tracker {
	return &Tracker{
		timeout: timeout,
		seen:    make(map[string]time.Time),
		now:     time.Now,
	}
}

// Touch records activity for the given session ID. It returns false when the
// session has been idle longer than the timeout; the entry is removed and the
// caller must re-authenticate. A session never seen before is considered
// fresh and recorded as active now.
func (t *Tracker) Touch(sessionID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if last, ok := t.seen[sessionID]; ok && now.Sub(last) > t.timeout {
		delete(t.seen, sessionID)
		return false
	}
	t.seen[sessionID] = now
	return true
}

// Forget drops a session's activity entry, e.g. on logout.
func (t *Tracker) Forget(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.seen, sessionID)
}

// Purge removes entries idle longer than the timeout. It is safe to call
// periodically from a maintenance goroutine.
func (t *Tracker) Purge() {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-t.timeout)
	for id, last := range t.seen {
		if last.Before(cutoff) {
			delete(t.seen, id)
		}
	}
}
