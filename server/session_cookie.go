package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jrsteele09/go-xero-sample/sessions"
)

const sessionCookieName = "session_id"

// loadOrCreateSession resolves the request's session from its cookie,
// creating and persisting a fresh anonymous session (and setting the cookie)
// when none exists or the stored one has expired.
func (s *Server) loadOrCreateSession(w http.ResponseWriter, r *http.Request) (sessions.Session, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		session, getErr := s.sessionRepo.Get(cookie.Value)
		if getErr == nil {
			return session, nil
		}
		if !errors.Is(getErr, sessions.ErrNotFound) {
			return sessions.Session{}, errors.Wrap(getErr, "reading session")
		}
		// Fall through: stale cookie, issue a new session.
	}

	now := time.Now()
	session := sessions.Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessionRepo.Upsert(session.ID, session); err != nil {
		return sessions.Session{}, errors.Wrap(err, "creating session")
	}
	s.setSessionCookie(w, session.ID)
	return session, nil
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(s.config.GetMaxSessionAge().Seconds()),
		HttpOnly: true,
		Secure:   s.env != "DEV",
		SameSite: http.SameSiteLaxMode,
	})
}
