package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerTouch(t *testing.T) {
	tr := NewTracker(300 * time.Second)

	base := time.Now()
	tr.now = func() time.Time { return base }

	assert.True(t, tr.Touch("sess-1"), "first touch starts a fresh session")

	tr.now = func() time.Time { return base.Add(299 * time.Second) }
	assert.True(t, tr.Touch("sess-1"), "activity within the timeout refreshes the session")

	// 299s + 301s since the refresh above
	tr.now = func() time.Time { return base.Add(600 * time.Second) }
	assert.False(t, tr.Touch("sess-1"), "idle beyond the timeout expires the session")

	// the expired entry was dropped, so the same ID starts fresh again
	assert.True(t, tr.Touch("sess-1"))
}

func TestTrackerForget(t *testing.T) {
	tr := NewTracker(time.Minute)
	tr.Touch("sess-9")
	tr.Forget("sess-9")

	tr.mu.Lock()
	_, ok := tr.seen["sess-9"]
	tr.mu.Unlock()
	assert.False(t, ok)
}

func TestTrackerPurge(t *testing.T) {
	tr := NewTracker(time.Minute)
	base := time.Now()

	tr.now = func() time.Time { return base }
	tr.Touch("old")

	tr.now = func() time.Time { return base.Add(2 * time.Minute) }
	tr.Touch("fresh")
	tr.Purge()

	tr.mu.Lock()
	defer tr.mu.Unlock()
	_, oldOK := tr.seen["old"]
	_, freshOK := tr.seen["fresh"]
	assert.False(t, oldOK)
	assert.True(t, freshOK)
}
