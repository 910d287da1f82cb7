package sessions

import "errors"

// ErrNotFound is returned by Get when no session exists for the id.
var ErrNotFound = errors.New("session not found")

type Repo interface {
	Upsert(sessionID string, session Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error
}
