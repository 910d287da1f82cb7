package xero

import (
	"context"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Static identity-provider endpoints. Used unless the issuer's discovery
// document overrides them.
const (
	DefaultAuthURL        = "https://login.xero.com/identity/connect/authorize"
	DefaultTokenURL       = "https://identity.xero.com/connect/token"
	DefaultRevocationURL  = "https://identity.xero.com/connect/revocation"
	DefaultConnectionsURL = "https://api.xero.com/connections"
	DefaultAccountingURL  = "https://api.xero.com/api.xro/2.0"
	DefaultIssuerURL      = "https://identity.xero.com"
)

// providerCache memoizes OIDC discovery per issuer so per-request client
// construction does not re-fetch the discovery document every time.
var providerCache = struct {
	sync.Mutex
	providers map[string]*oidc.Provider
}{providers: make(map[string]*oidc.Provider)}

// DiscoverEndpoints resolves the authorization and token endpoints from the
// issuer's OIDC discovery document. Results are cached for the process
// lifetime; identity-provider endpoints do not move.
func DiscoverEndpoints(ctx context.Context, issuerURL string) (oauth2.Endpoint, error) {
	providerCache.Lock()
	provider, ok := providerCache.providers[issuerURL]
	providerCache.Unlock()

	if !ok {
		var err error
		provider, err = oidc.NewProvider(ctx, issuerURL)
		if err != nil {
			return oauth2.Endpoint{}, errors.Wrapf(err, "OIDC discovery for issuer %q", issuerURL)
		}
		providerCache.Lock()
		providerCache.providers[issuerURL] = provider
		providerCache.Unlock()
	}

	return provider.Endpoint(), nil
}
