package config

import "time"

// AuthErrorPolicy selects what the session guard does when its tenant refresh
// fails with an expired or revoked token.
type AuthErrorPolicy string

const (
	// AuthErrorRetain keeps the session: the error page shows the stale
	// claims and the user can recover via /refresh-token or a fresh consent.
	AuthErrorRetain AuthErrorPolicy = "retain"
	// AuthErrorLogout clears the session and treats the request as anonymous.
	AuthErrorLogout AuthErrorPolicy = "logout"
)

type SessionConfig interface {
	GetSessionStore() string
	GetMaxSessionAge() time.Duration
	GetAuthErrorPolicy() AuthErrorPolicy
}

type Session struct{}

var _ SessionConfig = Session{}

// GetSessionStore selects "file" (survives restarts, the default) or
// "memory".
func (Session) GetSessionStore() string {
	return GetEnv("SESSION_STORE", "file")
}

func (Session) GetMaxSessionAge() time.Duration {
	if d, err := time.ParseDuration(GetEnv("SESSION_MAX_AGE", "")); err == nil && d > 0 {
		return d
	}
	return 24 * time.Hour
}

func (Session) GetAuthErrorPolicy() AuthErrorPolicy {
	if GetEnv("SESSION_ON_AUTH_ERROR", "") == string(AuthErrorLogout) {
		return AuthErrorLogout
	}
	return AuthErrorRetain
}
