package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	maxIdleAge       = 10 * time.Minute
)

type userEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserLimiter hands out one token bucket per submitter.
type UserLimiter struct {
	users map[string]*userEntry
	mu    sync.Mutex
	r     rate.Limit
	b     int
}

// NewUserLimiter allows perMinute submissions per user per minute, in a burst.
func NewUserLimiter(perMinute int) *UserLimiter {
	return &UserLimiter{
		users: make(map[string]*userEntry),
		r:     rate.Every(time.Minute / time.Duration(perMinute)),
		b:     perMinute,
	}
}

func (l *UserLimiter) Allow(user string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.users) > cleanupThreshold {
		cutoff := time.Now().Add(-maxIdleAge)
		for k, e := range l.users {
			if e.lastSeen.Before(cutoff) {
				delete(l.users, k)
			}
		}
	}

	e, ok := l.users[user]
	if !ok {
		e = &userEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.users[user] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}
