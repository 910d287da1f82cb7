// Package tokens holds the credential bundle returned by the authorization
// server and the claim codecs for its compact-serialized tokens.
//
// The codecs deliberately do not verify signatures: the tokens are only ever
// obtained by this process through a TLS token exchange with the known
// authorization server, which establishes trust upstream. Decoding exists to
// project the payload into typed claims for display and diagnostics.
package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeError reports a malformed compact token: wrong segment count, invalid
// base64url, or an undecodable payload. Callers must treat it as fatal for the
// current request rather than silently ignoring it.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("token decode failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IdentityClaims is the read-only projection of an id_token payload. It is
// recomputed whenever a new credential is obtained and never mutated in place.
type IdentityClaims struct {
	Email             string `json:"email"`
	GivenName         string `json:"given_name"`
	FamilyName        string `json:"family_name"`
	PreferredUsername string `json:"preferred_username"`
	jwt.RegisteredClaims
}

// Name returns the display name derived from the given/family name claims.
func (c *IdentityClaims) Name() string {
	switch {
	case c.GivenName != "" && c.FamilyName != "":
		return c.GivenName + " " + c.FamilyName
	case c.GivenName != "":
		return c.GivenName
	default:
		return c.FamilyName
	}
}

// AccessClaims is the read-only projection of an access_token payload, used to
// compute time remaining for display and diagnostics.
type AccessClaims struct {
	Scope      []string `json:"scope"`
	XeroUserID string   `json:"xero_userid"`
	jwt.RegisteredClaims
}

// TimeRemaining returns how long until the access token's exp claim, or zero
// when the claim is absent or in the past.
func (c *AccessClaims) TimeRemaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := c.ExpiresAt.Time.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ExpiryDisplay formats the exp claim for the demo views. Returns an empty
// string when the claim is absent, matching the behaviour for anonymous
// sessions.
func (c *AccessClaims) ExpiryDisplay() string {
	if c == nil || c.ExpiresAt == nil {
		return ""
	}
	return c.ExpiresAt.Time.Local().Format("2006-01-02 15:04:05")
}

// DecodeIdentityClaims decodes an unverified id_token into typed claims.
func DecodeIdentityClaims(rawToken string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	if err := decodeUnverified(rawToken, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// DecodeAccessClaims decodes an unverified access_token into typed claims.
func DecodeAccessClaims(rawToken string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := decodeUnverified(rawToken, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func decodeUnverified(rawToken string, claims jwt.Claims) error {
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
