package sessions

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Session ids are uuids; anything else is rejected before touching the
// filesystem.
var validSessionID = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// FileRepo is a file-backed implementation of Repo. Each session is one JSON
// file under the data folder, so sessions survive process restarts and code
// reloads. Sessions older than the TTL are removed lazily on Get.
type FileRepo struct {
	mu     sync.RWMutex
	folder string
	ttl    time.Duration
}

// NewFileRepo creates the folder if needed and returns a file-backed session
// repository.
func NewFileRepo(folder string, ttl time.Duration) (*FileRepo, error) {
	if folder == "" {
		return nil, errors.New("session folder is required")
	}
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating session folder")
	}
	return &FileRepo{folder: folder, ttl: ttl}, nil
}

func (r *FileRepo) path(sessionID string) (string, error) {
	if sessionID == "" || !validSessionID.MatchString(sessionID) {
		return "", errors.Errorf("invalid session id %q", sessionID)
	}
	return filepath.Join(r.folder, sessionID+".json"), nil
}

// Upsert creates or updates a session file.
func (r *FileRepo) Upsert(sessionID string, session Session) error {
	path, err := r.path(sessionID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "marshalling session")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Write-then-rename so a crash mid-write never leaves a torn session file.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "writing session file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "renaming session file")
	}
	return nil
}

// Get retrieves a session, expiring it when older than the TTL. A malformed
// id reads as not-found rather than an error, so a tampered cookie just gets
// a fresh session.
func (r *FileRepo) Get(sessionID string) (Session, error) {
	path, err := r.path(sessionID)
	if err != nil {
		return Session{}, ErrNotFound
	}

	r.mu.RLock()
	data, readErr := os.ReadFile(path)
	r.mu.RUnlock()

	if readErr != nil {
		if os.IsNotExist(readErr) {
			return Session{}, ErrNotFound
		}
		return Session{}, errors.Wrap(readErr, "reading session file")
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, errors.Wrap(err, "unmarshalling session file")
	}

	if r.ttl > 0 && time.Since(session.UpdatedAt) > r.ttl {
		_ = r.Delete(sessionID)
		return Session{}, ErrNotFound
	}
	return session, nil
}

// Delete removes a session file. Deleting a session that does not exist is
// not an error.
func (r *FileRepo) Delete(sessionID string) error {
	path, err := r.path(sessionID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session file")
	}
	return nil
}
