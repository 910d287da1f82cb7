package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-xero-sample/internal/config"
	"github.com/jrsteele09/go-xero-sample/sessions"
	"github.com/jrsteele09/go-xero-sample/xero"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the request's session
	ContextKeySession ContextKey = "session"
	// ContextKeyClient stores the per-request working client
	ContextKeyClient ContextKey = "xero_client"
	// ContextKeyGuardError stores a tenant-refresh failure from the guard
	ContextKeyGuardError ContextKey = "guard_error"
)

// SessionGuardMiddleware runs once per request before any handler. It loads
// (or creates) the session, rehydrates a fresh working client from the
// persisted credential - in-memory client state never survives a process
// restart, the session store does - and refreshes the tenant set so tenant
// data reflects the latest grant.
//
// A tenant-refresh failure (expired or revoked token) is handled per the
// configured policy: retain keeps the session and hands the error to the
// handler, which renders it alongside the stale claims; logout clears the
// session and the request proceeds anonymously.
func (s *Server) SessionGuardMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.loadOrCreateSession(w, r)
		if err != nil {
			log.Error().Err(err).Msg("session load failed")
			http.Error(w, "session store unavailable", http.StatusInternalServerError)
			return
		}

		// One request at a time per session: a slow tenant refresh must not
		// clobber a concurrently completed code exchange.
		unlock := s.sessionLocks.Lock(session.ID)
		defer unlock()

		// Re-read under the lock so we start from the latest persisted state.
		if latest, getErr := s.sessionRepo.Get(session.ID); getErr == nil {
			session = latest
		}

		client, err := s.newClient()
		if err != nil {
			log.Error().Err(err).Msg("building working client failed")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		var guardErr error
		if session.Authenticated() {
			client.SetCredential(session.Credential)
			log.Debug().
				Str("session_id", session.ID).
				Dur("access_token_remaining", session.Credential.TimeRemaining(time.Now())).
				Msg("rehydrated working client")

			tenantList, refreshErr := client.Connections(r.Context())
			if refreshErr != nil {
				log.Warn().Err(refreshErr).Str("session_id", session.ID).Msg("tenant refresh failed during session guard")
				if s.config.GetAuthErrorPolicy() == config.AuthErrorLogout {
					session.ClearIdentity()
					if err := s.sessionRepo.Upsert(session.ID, session); err != nil {
						http.Error(w, "session store unavailable", http.StatusInternalServerError)
						return
					}
				} else {
					guardErr = refreshErr
				}
			} else {
				reg := session.Registry()
				reg.Replace(tenantList)
				session.ApplyTenants(reg)
				if err := s.sessionRepo.Upsert(session.ID, session); err != nil {
					http.Error(w, "session store unavailable", http.StatusInternalServerError)
					return
				}
			}
		}

		ctx := context.WithValue(r.Context(), ContextKeySession, &session)
		ctx = context.WithValue(ctx, ContextKeyClient, client)
		if guardErr != nil {
			ctx = context.WithValue(ctx, ContextKeyGuardError, guardErr)
		}
		next(w, r.WithContext(ctx))
	}
}

func sessionFromContext(r *http.Request) *sessions.Session {
	session, _ := r.Context().Value(ContextKeySession).(*sessions.Session)
	return session
}

func clientFromContext(r *http.Request) *xero.Client {
	client, _ := r.Context().Value(ContextKeyClient).(*xero.Client)
	return client
}

func guardError(r *http.Request) error {
	err, _ := r.Context().Value(ContextKeyGuardError).(error)
	return err
}
