// Package xero implements the OAuth2 authorization-code flow against the Xero
// identity provider and thin call-throughs to its connections and accounting
// APIs.
//
// A Client is a per-request working copy: it is constructed fresh from static
// configuration plus the session's persisted credential at the start of every
// request, never shared as process-wide state. This makes rehydration after a
// process restart the normal path rather than a special case.
package xero

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-xero-sample/tenants"
	"github.com/jrsteele09/go-xero-sample/tokens"
)

const defaultHTTPTimeout = 10 * time.Second

// Config is the static client configuration. ClientID, ClientSecret and
// RedirectURI are required; endpoint URLs default to the public Xero
// endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string

	AuthURL        string
	TokenURL       string
	RevocationURL  string
	ConnectionsURL string
	AccountingURL  string

	// HTTPTimeout bounds every outbound call. A zero value falls back to the
	// package default; timeouts are never unbounded.
	HTTPTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.AuthURL == "" {
		c.AuthURL = DefaultAuthURL
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if c.RevocationURL == "" {
		c.RevocationURL = DefaultRevocationURL
	}
	if c.ConnectionsURL == "" {
		c.ConnectionsURL = DefaultConnectionsURL
	}
	if c.AccountingURL == "" {
		c.AccountingURL = DefaultAccountingURL
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = defaultHTTPTimeout
	}
}

// Client drives the OAuth2 flow and remote API calls for one request.
type Client struct {
	cfg        Config
	oauthCfg   *oauth2.Config
	httpClient *http.Client
	credential *tokens.Credential
}

// New creates a working client from static configuration.
func New(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("[xero.New] ClientID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("[xero.New] ClientSecret is required")
	}
	if cfg.RedirectURI == "" {
		return nil, errors.New("[xero.New] RedirectURI is required")
	}
	cfg.applyDefaults()

	return &Client{
		cfg: cfg,
		oauthCfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
	}, nil
}

// SetCredential rehydrates the client with a session's persisted credential.
func (c *Client) SetCredential(cred *tokens.Credential) {
	c.credential = cred
}

// Credential returns the client's current credential, nil when
// unauthenticated.
func (c *Client) Credential() *tokens.Credential {
	return c.credential
}

// AuthCodeURL builds the consent URL the user visits to grant access. It is a
// pure function of static configuration and the anti-forgery state parameter,
// safe to call in any state.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauthCfg.AuthCodeURL(state)
}

// Exchange performs the terminal step of the authorization-code grant for the
// given callback URL. The state parameter must round-trip against wantState
// (CSRF protection of the callback). Authorization codes are single-use: a
// second exchange of the same code fails and is never retried.
func (c *Client) Exchange(ctx context.Context, callbackURL string, wantState string) (*tokens.Credential, error) {
	parsed, err := url.Parse(callbackURL)
	if err != nil {
		return nil, &TokenExchangeError{Reason: "malformed callback URL", Err: err}
	}
	query := parsed.Query()

	if errParam := query.Get("error"); errParam != "" {
		return nil, &TokenExchangeError{Reason: "authorization server returned " + errParam + ": " + query.Get("error_description")}
	}
	if query.Get("state") == "" || query.Get("state") != wantState {
		return nil, &TokenExchangeError{Reason: "state parameter mismatch"}
	}
	code := query.Get("code")
	if code == "" {
		return nil, &TokenExchangeError{Reason: "missing authorization code"}
	}

	tok, err := c.oauthCfg.Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		return nil, &TokenExchangeError{Reason: "code exchange rejected", Err: err}
	}

	cred := tokens.FromOAuth2Token(tok, c.cfg.Scopes)
	c.credential = cred
	return cred, nil
}

// Refresh exchanges the current refresh token for a new access/refresh pair.
// An invalid_grant response means the refresh token has passed its outer
// lifetime (or was revoked) and surfaces as ReauthRequiredError; the caller
// must clear the session and restart from the consent URL. Refresh is never
// retried automatically - pre-expiry refresh vs refresh-on-401 is caller
// policy.
func (c *Client) Refresh(ctx context.Context) (*tokens.Credential, error) {
	if c.credential == nil || c.credential.RefreshToken == "" {
		return nil, &ReauthRequiredError{Err: errors.New("no refresh token held")}
	}

	// Blanking the access token forces the token source to hit the token
	// endpoint instead of returning the cached access token.
	tok := c.credential.OAuth2Token()
	tok.AccessToken = ""
	src := c.oauthCfg.TokenSource(c.withHTTPClient(ctx), tok)
	tok, err := src.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_grant" {
			return nil, &ReauthRequiredError{Err: err}
		}
		return nil, &TokenExchangeError{Reason: "refresh rejected", Err: err}
	}

	cred := tokens.FromOAuth2Token(tok, c.cfg.Scopes)
	c.credential = cred
	return cred, nil
}

// Connections asks the API which tenants the current credential can access
// now. The server-defined order is preserved; the first element is the
// default active tenant.
func (c *Client) Connections(ctx context.Context) ([]tenants.Tenant, error) {
	if c.credential == nil {
		return nil, errors.New("[Connections] no credential held")
	}

	var list []tenants.Tenant
	if err := c.getJSON(ctx, c.cfg.ConnectionsURL, "", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Disconnect revokes access for a single tenant grant and refreshes the
// credential so the returned one no longer includes it. connectionID is the
// grant id, not the tenant id.
func (c *Client) Disconnect(ctx context.Context, connectionID string) (*tokens.Credential, error) {
	if c.credential == nil {
		return nil, errors.New("[Disconnect] no credential held")
	}
	if connectionID == "" {
		return nil, errors.New("[Disconnect] connectionID is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.cfg.ConnectionsURL+"/"+url.PathEscape(connectionID), nil)
	if err != nil {
		return nil, errors.Wrap(err, "[Disconnect] building request")
	}
	req.Header.Set("Authorization", "Bearer "+c.credential.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[Disconnect] connections API")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remoteError(resp)
	}

	return c.Refresh(ctx)
}

// Revoke invalidates the entire credential, removing every tenant grant in a
// single call (RFC 7009). The caller clears all session identity state
// regardless of the outcome so a partial revoke never leaves a half-valid
// cached credential behind.
func (c *Client) Revoke(ctx context.Context) error {
	if c.credential == nil || c.credential.RefreshToken == "" {
		return errors.New("[Revoke] no refresh token held")
	}

	form := url.Values{"token": {c.credential.RefreshToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.RevocationURL, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "[Revoke] building request")
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "[Revoke] revocation endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteError(resp)
	}

	c.credential = nil
	return nil
}

// getJSON performs an authorized GET and decodes the JSON response body.
// tenantID, when non-empty, is sent as the xero-tenant-id header required by
// the accounting API.
func (c *Client) getJSON(ctx context.Context, rawURL, tenantID string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Authorization", "Bearer "+c.credential.AccessToken)
	req.Header.Set("Accept", "application/json")
	if tenantID != "" {
		req.Header.Set("xero-tenant-id", tenantID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding response from %s", rawURL)
	}
	return nil
}

func remoteError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &RemoteAPIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// withHTTPClient forces the oauth2 library onto this client's bounded HTTP
// client so token calls inherit the configured hard timeout.
func (c *Client) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}
