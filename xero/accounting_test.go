package xero_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-xero-sample/tokens"
	"github.com/jrsteele09/go-xero-sample/xero"
)

func TestOrganisationsSendsTenantHeader(t *testing.T) {
	var captured *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Organisations":[{"OrganisationID":"o1","Name":"Demo Company"}]}`))
	}))
	t.Cleanup(srv.Close)

	client, err := xero.New(xero.Config{
		ClientID:      "client-id",
		ClientSecret:  "client-secret",
		RedirectURI:   "http://localhost:3000/callback",
		AccountingURL: srv.URL + "/api.xro/2.0",
	})
	require.NoError(t, err)
	client.SetCredential(&tokens.Credential{AccessToken: "access-1"})

	orgs, err := client.Organisations(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	require.Equal(t, "Demo Company", orgs[0].Name)

	require.Equal(t, "t1", captured.Header.Get("xero-tenant-id"))
	require.Equal(t, "Bearer access-1", captured.Header.Get("Authorization"))
}

func TestAccountsWhereClause(t *testing.T) {
	var captured *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Accounts":[{"AccountID":"a1","Code":"200","Name":"Sales","Type":"REVENUE","Status":"ACTIVE"}]}`))
	}))
	t.Cleanup(srv.Close)

	client, err := xero.New(xero.Config{
		ClientID:      "client-id",
		ClientSecret:  "client-secret",
		RedirectURI:   "http://localhost:3000/callback",
		AccountingURL: srv.URL + "/api.xro/2.0",
	})
	require.NoError(t, err)
	client.SetCredential(&tokens.Credential{AccessToken: "access-1"})

	accounts, err := client.Accounts(context.Background(), "t1", `Status=="ACTIVE"`)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, "Sales", accounts[0].Name)
	require.Equal(t, `Status=="ACTIVE"`, captured.URL.Query().Get("where"))
}

func TestAccountingRequiresTenant(t *testing.T) {
	client, err := xero.New(xero.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:3000/callback",
	})
	require.NoError(t, err)
	client.SetCredential(&tokens.Credential{AccessToken: "access-1"})

	var remote *xero.RemoteAPIError
	_, err = client.Invoices(context.Background(), "")
	require.ErrorAs(t, err, &remote)
}

func TestAccountingRequiresCredential(t *testing.T) {
	client, err := xero.New(xero.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:3000/callback",
	})
	require.NoError(t, err)

	var remote *xero.RemoteAPIError
	_, err = client.Payments(context.Background(), "t1")
	require.ErrorAs(t, err, &remote)
}
