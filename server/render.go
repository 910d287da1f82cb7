package server

import (
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-xero-sample/sessions"
	"github.com/jrsteele09/go-xero-sample/tenants"
	"github.com/jrsteele09/go-xero-sample/tokens"
	"github.com/jrsteele09/go-xero-sample/xero"
)

const contentTypeHTML = "text/html; charset=utf-8"

// AuthData is the authentication view model shared by every page.
type AuthData struct {
	Authenticated      bool
	IdentityClaims     *tokens.IdentityClaims
	AccessClaims       *tokens.AccessClaims
	Credential         *tokens.Credential
	AccessTokenExpires string
	AccessTokenExpired bool
	AllTenants         []tenants.Tenant
	ActiveTenant       *tenants.Tenant
}

func authenticationData(session *sessions.Session) AuthData {
	data := AuthData{
		Authenticated:  session.Authenticated(),
		IdentityClaims: session.IdentityClaims,
		AccessClaims:   session.AccessClaims,
		Credential:     session.Credential,
		AllTenants:     session.Tenants,
	}
	if session.AccessClaims != nil {
		data.AccessTokenExpires = session.AccessClaims.ExpiryDisplay()
	}
	if session.Credential != nil {
		data.AccessTokenExpired = session.Credential.Expired(time.Now())
	}
	if active, ok := session.ActiveTenant(); ok {
		data.ActiveTenant = &active
	}
	return data
}

// consentURL builds the consent URL for the session, generating and
// persisting a fresh anti-forgery state parameter when none is pending. It is
// always computable, so every page - error pages included - can offer a way
// to restart authentication.
func (s *Server) consentURL(session *sessions.Session, client *xero.Client) string {
	if session.AuthState == "" {
		session.AuthState = uuid.New().String()
		session.UpdatedAt = time.Now()
		if err := s.sessionRepo.Upsert(session.ID, *session); err != nil {
			log.Error().Err(err).Str("session_id", session.ID).Msg("persisting consent state failed")
		}
	}
	return client.AuthCodeURL(session.AuthState)
}

func (s *Server) renderHTML(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		log.Error().Err(err).Str("template", tmpl.Name()).Msg("template execution failed")
	}
}

// renderError renders the shared error view with the error, the (possibly
// stale) authentication data, and a consent URL to restart authentication.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, session *sessions.Session, client *xero.Client, err error) {
	log.Warn().Err(err).Str("path", r.URL.Path).Msg("request failed")
	s.renderHTML(w, s.errorTmpl, errorStatus(err), map[string]any{
		"AppName":       s.config.GetAppName(),
		"ConsentURL":    s.consentURL(session, client),
		"Authenticated": authenticationData(session),
		"Error":         err.Error(),
	})
}

func errorStatus(err error) int {
	var (
		notAuthorized *tenants.NotAuthorizedError
		reauth        *xero.ReauthRequiredError
		exchange      *xero.TokenExchangeError
		remote        *xero.RemoteAPIError
	)
	switch {
	case errors.As(err, &notAuthorized):
		return http.StatusForbidden
	case errors.As(err, &reauth):
		return http.StatusUnauthorized
	case errors.As(err, &exchange):
		return http.StatusBadGateway
	case errors.As(err, &remote):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
