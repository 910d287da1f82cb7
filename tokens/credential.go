package tokens

import (
	"time"

	"golang.org/x/oauth2"
)

// expiryMargin is applied when checking credential expiry to account for
// clock skew between this process and the authorization server.
const expiryMargin = 30 * time.Second

// Credential is the token bundle obtained from the authorization server via the
// authorization-code grant: a short-lived bearer access token, a rotating
// refresh token (valid for up to ~60 days), and an optional identity assertion.
// A Credential must not be reused after it has been revoked or disconnected.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	IDToken      string    `json:"id_token,omitempty"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
	Scope        []string  `json:"scope,omitempty"`
}

// FromOAuth2Token converts the oauth2 library's token into a Credential,
// lifting the id_token out of the extra fields when the provider returned one.
func FromOAuth2Token(t *oauth2.Token, scope []string) *Credential {
	c := &Credential{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		ExpiresAt:    t.Expiry,
		Scope:        scope,
	}
	if idToken, ok := t.Extra("id_token").(string); ok {
		c.IDToken = idToken
	}
	return c
}

// OAuth2Token converts the Credential back into an oauth2.Token so a token
// source can be rebuilt from persisted session state.
func (c *Credential) OAuth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    c.TokenType,
		Expiry:       c.ExpiresAt,
	}
}

// Expired reports whether the access token should no longer be used at the
// given instant. The expiry margin means a token about to expire is treated as
// already expired.
func (c *Credential) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(expiryMargin).Before(c.ExpiresAt)
}

// TimeRemaining returns how long the access token stays usable, or zero when
// it has already expired.
func (c *Credential) TimeRemaining(now time.Time) time.Duration {
	remaining := c.ExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
