package xero_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-xero-sample/xero"
)

func TestDiscoverEndpoints(t *testing.T) {
	var issuer string
	discoveryCalls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/.well-known/openid-configuration", r.URL.Path)
		discoveryCalls++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 issuer,
			"authorization_endpoint": issuer + "/identity/connect/authorize",
			"token_endpoint":         issuer + "/connect/token",
			"jwks_uri":               issuer + "/.well-known/openid-configuration/jwks",
		})
	}))
	t.Cleanup(srv.Close)
	issuer = srv.URL

	endpoint, err := xero.DiscoverEndpoints(context.Background(), issuer)
	require.NoError(t, err)
	require.Equal(t, issuer+"/identity/connect/authorize", endpoint.AuthURL)
	require.Equal(t, issuer+"/connect/token", endpoint.TokenURL)

	// A second resolution for the same issuer is served from the cache.
	_, err = xero.DiscoverEndpoints(context.Background(), issuer)
	require.NoError(t, err)
	require.Equal(t, 1, discoveryCalls)
}

func TestDiscoverEndpointsUnreachableIssuer(t *testing.T) {
	_, err := xero.DiscoverEndpoints(context.Background(), "http://127.0.0.1:1/nope")
	require.Error(t, err)
}
