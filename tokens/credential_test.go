package tokens_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-xero-sample/tokens"
)

func TestFromOAuth2TokenLiftsIDToken(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute)
	tok := (&oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       expiry,
	}).WithExtra(map[string]any{"id_token": "identity"})

	cred := tokens.FromOAuth2Token(tok, []string{"openid"})
	require.Equal(t, "access", cred.AccessToken)
	require.Equal(t, "refresh", cred.RefreshToken)
	require.Equal(t, "identity", cred.IDToken)
	require.Equal(t, expiry, cred.ExpiresAt)
	require.Equal(t, []string{"openid"}, cred.Scope)
}

func TestOAuth2TokenRoundTrip(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute)
	cred := &tokens.Credential{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresAt:    expiry,
	}

	tok := cred.OAuth2Token()
	require.Equal(t, "access", tok.AccessToken)
	require.Equal(t, "refresh", tok.RefreshToken)
	require.Equal(t, expiry, tok.Expiry)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	fresh := &tokens.Credential{ExpiresAt: now.Add(10 * time.Minute)}
	require.False(t, fresh.Expired(now))

	withinMargin := &tokens.Credential{ExpiresAt: now.Add(10 * time.Second)}
	require.True(t, withinMargin.Expired(now))

	past := &tokens.Credential{ExpiresAt: now.Add(-time.Minute)}
	require.True(t, past.Expired(now))

	noExpiry := &tokens.Credential{}
	require.False(t, noExpiry.Expired(now))
}
