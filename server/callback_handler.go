package server

import (
	"net/http"

	"github.com/jrsteele09/go-xero-sample/tokens"
)

// CallbackHandler completes the authorization-code grant: it validates the
// state round-trip, exchanges the code, decodes both claim sets, refreshes
// the tenant set, and persists everything into the session. Any failure
// renders the error view with a fallback consent URL and leaves the previous
// session state untouched; authorization codes are single-use, so nothing is
// retried.
func (s *Server) CallbackHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("callback.html")
	if err != nil {
		panic("Failed to parse callback template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r)
		client := clientFromContext(r)

		wantState := session.AuthState
		session.AuthState = "" // single use, regardless of outcome

		cred, err := client.Exchange(r.Context(), r.URL.String(), wantState)
		if err != nil {
			s.renderError(w, r, session, client, err)
			return
		}

		var identity *tokens.IdentityClaims
		if cred.IDToken != "" {
			if identity, err = tokens.DecodeIdentityClaims(cred.IDToken); err != nil {
				s.renderError(w, r, session, client, err)
				return
			}
		}
		access, err := tokens.DecodeAccessClaims(cred.AccessToken)
		if err != nil {
			s.renderError(w, r, session, client, err)
			return
		}

		tenantList, err := client.Connections(r.Context())
		if err != nil {
			s.renderError(w, r, session, client, err)
			return
		}

		session.SetCredential(cred, identity, access)
		reg := session.Registry()
		reg.Replace(tenantList)
		session.ApplyTenants(reg)

		if err := s.sessionRepo.Upsert(session.ID, *session); err != nil {
			s.renderError(w, r, session, client, err)
			return
		}

		s.renderHTML(w, tmpl, http.StatusOK, map[string]any{
			"AppName":       s.config.GetAppName(),
			"ConsentURL":    s.consentURL(session, client),
			"Authenticated": authenticationData(session),
		})
	}
}
