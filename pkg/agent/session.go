package agent

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// SessionRegistry tracks last-activity time per session. Safe for concurrent
// use by in-flight requests and the reaper.
type SessionRegistry struct {
	lastActive cmap.ConcurrentMap[string, int64]
	nowFunc    func() time.Time
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		lastActive: cmap.New[int64](),
		nowFunc:    time.Now,
	}
}

// UpdateActivity upserts the last-activity timestamp for a session.
func (r *SessionRegistry) UpdateActivity(sessionID string) {
	r.lastActive.Set(sessionID, r.nowFunc().Unix())
}

// GetExpiredSessions returns the sessions whose inactivity strictly exceeds
// the timeout. A session exactly at the boundary is not expired.
func (r *SessionRegistry) GetExpiredSessions(timeout time.Duration) []string {
	now := r.nowFunc().Unix()
	var expired []string
	for item := range r.lastActive.IterBuffered() {
		if now-item.Val > int64(timeout.Seconds()) {
			expired = append(expired, item.Key)
		}
	}
	return expired
}

// Has reports whether the session is currently tracked.
func (r *SessionRegistry) Has(sessionID string) bool {
	return r.lastActive.Has(sessionID)
}

// RemoveSession is an idempotent delete.
func (r *SessionRegistry) RemoveSession(sessionID string) {
	r.lastActive.Remove(sessionID)
}

func (r *SessionRegistry) Count() int {
	return r.lastActive.Count()
}
