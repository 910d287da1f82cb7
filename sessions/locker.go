package sessions

import "sync"

// Locker serializes read-modify-write cycles on a single session. Two
// concurrent requests from the same browser session would otherwise race on
// the session record with last-write-wins persistence; the guard takes the
// session's lock for the duration of a request so a slow tenant refresh cannot
// clobber a concurrently completed code exchange. Distinct sessions never
// contend.
//
// Entries are reference-counted and removed on last release, so the lock
// table stays proportional to in-flight requests rather than growing with
// session churn.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewLocker creates an empty per-session lock table.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*lockEntry)}
}

// Lock acquires the lock for a session id and returns the unlock function.
func (l *Locker) Lock(sessionID string) func() {
	l.mu.Lock()
	entry, ok := l.locks[sessionID]
	if !ok {
		entry = &lockEntry{}
		l.locks[sessionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}
