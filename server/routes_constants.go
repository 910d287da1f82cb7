package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// OAuth lifecycle routes
	RouteCallback           = "/callback"
	RouteChangeOrganisation = "/change_organisation"
	RouteRefreshToken       = "/refresh-token"
	RouteDisconnect         = "/disconnect"
	RouteRevokeToken        = "/revoke-token"

	// Webhook receiver
	RouteWebhooks = "/webhooks"

	// Accounting demo pages
	RouteAccounts = "/accounts"
	RouteContacts = "/contacts"
	RouteInvoices = "/invoices"
	RouteItems    = "/items"
	RoutePayments = "/payments"
)
