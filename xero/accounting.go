package xero

// Thin, read-only call-throughs to the accounting API used by the
// demonstration pages. Each one needs a valid access token and an active
// tenant; failures surface as RemoteAPIError and carry the API's own
// validation messages. No accounting business logic lives here.

import (
	"context"
	"net/url"
)

type Organisation struct {
	OrganisationID string `json:"OrganisationID"`
	Name           string `json:"Name"`
	CountryCode    string `json:"CountryCode"`
	BaseCurrency   string `json:"BaseCurrency"`
}

type Account struct {
	AccountID string `json:"AccountID"`
	Code      string `json:"Code"`
	Name      string `json:"Name"`
	Type      string `json:"Type"`
	Status    string `json:"Status"`
}

type Contact struct {
	ContactID    string `json:"ContactID"`
	Name         string `json:"Name"`
	FirstName    string `json:"FirstName"`
	LastName     string `json:"LastName"`
	EmailAddress string `json:"EmailAddress"`
}

type Invoice struct {
	InvoiceID     string  `json:"InvoiceID"`
	InvoiceNumber string  `json:"InvoiceNumber"`
	Type          string  `json:"Type"`
	Status        string  `json:"Status"`
	Total         float64 `json:"Total"`
}

type Item struct {
	ItemID      string `json:"ItemID"`
	Code        string `json:"Code"`
	Name        string `json:"Name"`
	Description string `json:"Description"`
}

type Payment struct {
	PaymentID string  `json:"PaymentID"`
	Status    string  `json:"Status"`
	Amount    float64 `json:"Amount"`
}

// Organisations returns the organisation records for the tenant.
func (c *Client) Organisations(ctx context.Context, tenantID string) ([]Organisation, error) {
	var resp struct {
		Organisations []Organisation `json:"Organisations"`
	}
	if err := c.getAccounting(ctx, tenantID, "/Organisation", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Organisations, nil
}

// Accounts lists the tenant's chart of accounts, optionally filtered with a
// where clause.
func (c *Client) Accounts(ctx context.Context, tenantID, where string) ([]Account, error) {
	var resp struct {
		Accounts []Account `json:"Accounts"`
	}
	if err := c.getAccounting(ctx, tenantID, "/Accounts", whereQuery(where), &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// Contacts lists the tenant's contacts.
func (c *Client) Contacts(ctx context.Context, tenantID, where string) ([]Contact, error) {
	var resp struct {
		Contacts []Contact `json:"Contacts"`
	}
	if err := c.getAccounting(ctx, tenantID, "/Contacts", whereQuery(where), &resp); err != nil {
		return nil, err
	}
	return resp.Contacts, nil
}

// Invoices lists the tenant's invoices.
func (c *Client) Invoices(ctx context.Context, tenantID string) ([]Invoice, error) {
	var resp struct {
		Invoices []Invoice `json:"Invoices"`
	}
	if err := c.getAccounting(ctx, tenantID, "/Invoices", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Invoices, nil
}

// Items lists the tenant's items.
func (c *Client) Items(ctx context.Context, tenantID string) ([]Item, error) {
	var resp struct {
		Items []Item `json:"Items"`
	}
	if err := c.getAccounting(ctx, tenantID, "/Items", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Payments lists the tenant's payments.
func (c *Client) Payments(ctx context.Context, tenantID string) ([]Payment, error) {
	var resp struct {
		Payments []Payment `json:"Payments"`
	}
	if err := c.getAccounting(ctx, tenantID, "/Payments", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Payments, nil
}

func (c *Client) getAccounting(ctx context.Context, tenantID, path string, query url.Values, out any) error {
	if c.credential == nil {
		return &RemoteAPIError{StatusCode: 0, Body: "no credential held"}
	}
	if tenantID == "" {
		return &RemoteAPIError{StatusCode: 0, Body: "no active tenant"}
	}
	rawURL := c.cfg.AccountingURL + path
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}
	return c.getJSON(ctx, rawURL, tenantID, out)
}

func whereQuery(where string) url.Values {
	if where == "" {
		return nil
	}
	return url.Values{"where": {where}}
}
