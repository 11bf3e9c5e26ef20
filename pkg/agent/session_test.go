package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionExpiryBoundary(t *testing.T) {
	r := NewSessionRegistry()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.nowFunc = func() time.Time { return now }

	r.UpdateActivity("stale")
	r.UpdateActivity("boundary")
	r.UpdateActivity("fresh")

	// stale is 301s old, boundary exactly 300s, fresh 10s
	now = now.Add(301 * time.Second)
	r.lastActive.Set("boundary", now.Add(-300*time.Second).Unix())
	r.lastActive.Set("fresh", now.Add(-10*time.Second).Unix())

	expired := r.GetExpiredSessions(300 * time.Second)
	assert.Equal(t, []string{"stale"}, expired)
}

func TestSessionActivityRefresh(t *testing.T) {
	r := NewSessionRegistry()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.nowFunc = func() time.Time { return now }

	r.UpdateActivity("s1")

	now = now.Add(299 * time.Second)
	r.UpdateActivity("s1")

	now = now.Add(299 * time.Second)
	assert.Empty(t, r.GetExpiredSessions(300*time.Second))

	now = now.Add(2 * time.Second)
	assert.Equal(t, []string{"s1"}, r.GetExpiredSessions(300*time.Second))
}

func TestSessionRemoveIdempotent(t *testing.T) {
	r := NewSessionRegistry()
	r.UpdateActivity("s1")
	assert.Equal(t, 1, r.Count())

	r.RemoveSession("s1")
	r.RemoveSession("s1")
	r.RemoveSession("never-seen")
	assert.Equal(t, 0, r.Count())
}
