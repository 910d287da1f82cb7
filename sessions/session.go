// Package sessions persists per-browser-session authentication state: the
// current credential, its decoded claims, and the authorized tenant set. The
// session exclusively owns this state for its lifetime; the per-request
// working client is rehydrated from it.
package sessions

import (
	"time"

	"github.com/jrsteele09/go-xero-sample/tenants"
	"github.com/jrsteele09/go-xero-sample/tokens"
)

// Session is the server-side state keyed by the opaque cookie-carried session
// identifier.
type Session struct {
	ID string `json:"id"`

	// Identity and token state
	Credential     *tokens.Credential     `json:"credential,omitempty"`
	IdentityClaims *tokens.IdentityClaims `json:"identity_claims,omitempty"`
	AccessClaims   *tokens.AccessClaims   `json:"access_claims,omitempty"`

	// Tenant state
	Tenants        []tenants.Tenant `json:"tenants,omitempty"`
	ActiveTenantID string           `json:"active_tenant_id,omitempty"`

	// AuthState is the anti-forgery state parameter for the pending consent
	// URL. Consumed (cleared) by a successful callback exchange.
	AuthState string `json:"auth_state,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Authenticated reports whether the session holds a credential.
func (s *Session) Authenticated() bool {
	return s.Credential != nil
}

// SetCredential installs a freshly obtained credential and its decoded claim
// projections. Claims are always recomputed with the credential, never mutated
// in place.
func (s *Session) SetCredential(cred *tokens.Credential, identity *tokens.IdentityClaims, access *tokens.AccessClaims) {
	s.Credential = cred
	s.IdentityClaims = identity
	s.AccessClaims = access
	s.UpdatedAt = time.Now()
}

// ApplyTenants copies the registry's tenant set and active pointer into the
// session for persistence.
func (s *Session) ApplyTenants(reg *tenants.Registry) {
	s.Tenants = reg.All()
	if active, ok := reg.Active(); ok {
		s.ActiveTenantID = active.TenantID
	} else {
		s.ActiveTenantID = ""
	}
	s.UpdatedAt = time.Now()
}

// Registry rebuilds the tenant registry from the persisted session state.
func (s *Session) Registry() *tenants.Registry {
	return tenants.FromSession(s.Tenants, s.ActiveTenantID)
}

// ActiveTenant returns the active tenant, if any.
func (s *Session) ActiveTenant() (tenants.Tenant, bool) {
	return s.Registry().Active()
}

// ClearIdentity removes all identity, token, and tenant state, leaving an
// anonymous session behind. Used after revoke and after a disconnect that
// removed the last tenant.
func (s *Session) ClearIdentity() {
	s.Credential = nil
	s.IdentityClaims = nil
	s.AccessClaims = nil

	reg := s.Registry()
	reg.Clear()
	s.ApplyTenants(reg)
}
