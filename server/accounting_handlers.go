package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-xero-sample/sessions"
	"github.com/jrsteele09/go-xero-sample/tenants"
	"github.com/jrsteele09/go-xero-sample/xero"
)

// Demonstration pages against the accounting API. Every page resolves the
// active organisation, fetches its organisation record plus one resource
// listing, and renders counts and names. The pages are read-only.

// accountingPage wraps the shared plumbing: guard-error check, active-tenant
// resolution, the organisation lookup, then the page-specific fetch.
func (s *Server) accountingPage(templateName string, fetch func(r *http.Request, client *xero.Client, tenantID string) (any, error)) http.HandlerFunc {
	tmpl, err := ParseTemplate(templateName)
	if err != nil {
		panic("Failed to parse " + templateName + " template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r)
		client := clientFromContext(r)

		if gErr := guardError(r); gErr != nil {
			s.renderError(w, r, session, client, gErr)
			return
		}

		active, ok := session.ActiveTenant()
		if !ok {
			s.renderError(w, r, session, client, errors.New("no active organisation, connect one first"))
			return
		}
		client.SetCredential(session.Credential)

		orgs, err := client.Organisations(r.Context(), active.TenantID)
		if err != nil {
			s.renderError(w, r, session, client, err)
			return
		}

		records, err := fetch(r, client, active.TenantID)
		if err != nil {
			s.renderError(w, r, session, client, err)
			return
		}

		s.renderHTML(w, tmpl, http.StatusOK, accountingData(s, session, client, active, orgs, records))
	}
}

func accountingData(s *Server, session *sessions.Session, client *xero.Client, active tenants.Tenant, orgs []xero.Organisation, records any) map[string]any {
	data := map[string]any{
		"AppName":       s.config.GetAppName(),
		"ConsentURL":    s.consentURL(session, client),
		"Authenticated": authenticationData(session),
		"ActiveTenant":  active,
		"Records":       records,
	}
	if len(orgs) > 0 {
		data["Organisation"] = orgs[0]
	}
	return data
}

func (s *Server) AccountsHandler() http.HandlerFunc {
	return s.accountingPage("accounts.html", func(r *http.Request, client *xero.Client, tenantID string) (any, error) {
		return client.Accounts(r.Context(), tenantID, r.FormValue("where"))
	})
}

func (s *Server) ContactsHandler() http.HandlerFunc {
	return s.accountingPage("contacts.html", func(r *http.Request, client *xero.Client, tenantID string) (any, error) {
		return client.Contacts(r.Context(), tenantID, r.FormValue("where"))
	})
}

func (s *Server) InvoicesHandler() http.HandlerFunc {
	return s.accountingPage("invoices.html", func(r *http.Request, client *xero.Client, tenantID string) (any, error) {
		return client.Invoices(r.Context(), tenantID)
	})
}

func (s *Server) ItemsHandler() http.HandlerFunc {
	return s.accountingPage("items.html", func(r *http.Request, client *xero.Client, tenantID string) (any, error) {
		return client.Items(r.Context(), tenantID)
	})
}

func (s *Server) PaymentsHandler() http.HandlerFunc {
	return s.accountingPage("payments.html", func(r *http.Request, client *xero.Client, tenantID string) (any, error) {
		return client.Payments(r.Context(), tenantID)
	})
}
