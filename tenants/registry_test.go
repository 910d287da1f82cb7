package tenants_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-xero-sample/tenants"
)

func threeTenants() []tenants.Tenant {
	return []tenants.Tenant{
		{TenantID: "t1", TenantName: "Demo Company", TenantType: "ORGANISATION", ConnectionID: "c1"},
		{TenantID: "t2", TenantName: "Second Org", TenantType: "ORGANISATION", ConnectionID: "c2"},
		{TenantID: "t3", TenantName: "Third Org", TenantType: "ORGANISATION", ConnectionID: "c3"},
	}
}

func TestReplaceSelectsFirstTenant(t *testing.T) {
	reg := tenants.NewRegistry()
	reg.Replace(threeTenants())

	active, ok := reg.Active()
	require.True(t, ok)
	require.Equal(t, "t1", active.TenantID)
	require.Equal(t, 3, reg.Len())
}

func TestReplacePreservesActiveWhenStillPresent(t *testing.T) {
	reg := tenants.NewRegistry()
	reg.Replace(threeTenants())
	require.NoError(t, reg.SetActive("t2"))

	reg.Replace(threeTenants())

	active, ok := reg.Active()
	require.True(t, ok)
	require.Equal(t, "t2", active.TenantID)
}

func TestReplaceResetsActiveWhenRemoved(t *testing.T) {
	reg := tenants.NewRegistry()
	reg.Replace(threeTenants())
	require.NoError(t, reg.SetActive("t3"))

	reg.Replace(threeTenants()[:2])

	active, ok := reg.Active()
	require.True(t, ok)
	require.Equal(t, "t1", active.TenantID)
}

func TestReplaceEmptyClearsActive(t *testing.T) {
	reg := tenants.NewRegistry()
	reg.Replace(threeTenants())

	reg.Replace(nil)

	_, ok := reg.Active()
	require.False(t, ok)
	require.Zero(t, reg.Len())
}

func TestSetActiveUnknownIDFails(t *testing.T) {
	reg := tenants.NewRegistry()
	reg.Replace(threeTenants())
	require.NoError(t, reg.SetActive("t2"))

	err := reg.SetActive("nope")

	var notAuthorized *tenants.NotAuthorizedError
	require.ErrorAs(t, err, &notAuthorized)
	require.Equal(t, "nope", notAuthorized.TenantID)

	// Failed switch leaves the active tenant untouched.
	active, ok := reg.Active()
	require.True(t, ok)
	require.Equal(t, "t2", active.TenantID)
}

func TestFromSessionRestoresActive(t *testing.T) {
	reg := tenants.FromSession(threeTenants(), "t3")

	active, ok := reg.Active()
	require.True(t, ok)
	require.Equal(t, "t3", active.TenantID)
}

func TestFromSessionStaleActiveFallsBack(t *testing.T) {
	reg := tenants.FromSession(threeTenants(), "gone")

	active, ok := reg.Active()
	require.True(t, ok)
	require.Equal(t, "t1", active.TenantID)
}

func TestAllPreservesServerOrder(t *testing.T) {
	reg := tenants.NewRegistry()
	reg.Replace(threeTenants())

	all := reg.All()
	require.Len(t, all, 3)
	require.Equal(t, "t1", all[0].TenantID)
	require.Equal(t, "t2", all[1].TenantID)
	require.Equal(t, "t3", all[2].TenantID)
}

func TestClear(t *testing.T) {
	reg := tenants.NewRegistry()
	reg.Replace(threeTenants())

	reg.Clear()

	_, ok := reg.Active()
	require.False(t, ok)
	require.Zero(t, reg.Len())
	require.Error(t, reg.SetActive("t1"))
}
