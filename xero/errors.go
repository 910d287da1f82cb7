package xero

import "fmt"

// TokenExchangeError reports a failed authorization-code exchange or token
// refresh: network or protocol failure, state mismatch, or reuse of a
// single-use authorization code. The operation is never retried
// automatically; the user restarts via the consent URL.
type TokenExchangeError struct {
	Reason string
	Err    error
}

func (e *TokenExchangeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token exchange failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("token exchange failed: %s", e.Reason)
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}

// ReauthRequiredError reports that the refresh token itself is expired or
// invalid (its outer lifetime is ~60 days, independent of access-token
// expiry). The session must be cleared and the user sent back through the
// consent URL.
type ReauthRequiredError struct {
	Err error
}

func (e *ReauthRequiredError) Error() string {
	return fmt.Sprintf("refresh token no longer valid, re-authentication required: %v", e.Err)
}

func (e *ReauthRequiredError) Unwrap() error {
	return e.Err
}

// RemoteAPIError reports a non-success response from the remote accounting or
// connections API, including validation errors returned by downstream
// resources.
type RemoteAPIError struct {
	StatusCode int
	Body       string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("remote API returned status %d: %s", e.StatusCode, e.Body)
}
