package config

import (
	"strings"
	"time"
)

// defaultScopes matches the consent the sample app requests: identity plus
// read/write access to the accounting resources the demo pages exercise.
const defaultScopes = "offline_access openid profile email accounting.transactions accounting.settings.read accounting.contacts accounting.contacts.read"

type XeroConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetScopes() []string
	GetWebhookKey() string
	GetIssuerURL() string
	GetHTTPTimeout() time.Duration
}

type Xero struct{}

var _ XeroConfig = Xero{}

func (Xero) GetClientID() string {
	return GetEnv("XERO_CLIENT_ID", "")
}

func (Xero) GetClientSecret() string {
	return GetEnv("XERO_CLIENT_SECRET", "")
}

func (Xero) GetRedirectURI() string {
	return GetEnv("XERO_REDIRECT_URI", "")
}

func (Xero) GetScopes() []string {
	return strings.Fields(GetEnv("XERO_SCOPES", defaultScopes))
}

func (Xero) GetWebhookKey() string {
	return GetEnv("WEBHOOK_KEY", "")
}

// GetIssuerURL, when set, switches the authorize and token endpoints to the
// issuer's OIDC discovery document instead of the static defaults.
func (Xero) GetIssuerURL() string {
	return GetEnv("XERO_ISSUER_URL", "")
}

// GetHTTPTimeout is the hard per-call timeout for every outbound request.
// Configurable, never unbounded.
func (Xero) GetHTTPTimeout() time.Duration {
	if d, err := time.ParseDuration(GetEnv("HTTP_TIMEOUT", "")); err == nil && d > 0 {
		return d
	}
	return 10 * time.Second
}
