package tenants

import "time"

// Tenant is one organisation a credential is authorized to act on behalf of.
// The fields mirror the connections endpoint of the accounting platform; the
// ConnectionID identifies the grant itself and is what the disconnect
// operation removes.
type Tenant struct {
	TenantID       string    `json:"tenantId"`
	TenantName     string    `json:"tenantName"`
	TenantType     string    `json:"tenantType"`
	ConnectionID   string    `json:"id"`
	CreatedDateUTC time.Time `json:"createdDateUtc"`
}
