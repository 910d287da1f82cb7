package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/jrsteele09/go-xero-sample/tokens"
	"github.com/jrsteele09/go-xero-sample/xero"
)

// RefreshTokenHandler exchanges the stored refresh token for a fresh
// credential. Xero rotates refresh tokens, so the new credential is persisted
// as soon as the grant succeeds, even if the follow-up tenant listing fails.
// An invalid_grant response means the refresh token itself is dead; the
// session identity is cleared and the user is sent back to consent.
func (s *Server) RefreshTokenHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("home.html")
	if err != nil {
		panic("Failed to parse home template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r)
		client := clientFromContext(r)

		if !session.Authenticated() {
			s.renderError(w, r, session, client, errors.New("no credential to refresh, sign in first"))
			return
		}
		client.SetCredential(session.Credential)

		cred, err := client.Refresh(r.Context())
		if err != nil {
			var reauth *xero.ReauthRequiredError
			if errors.As(err, &reauth) {
				session.ClearIdentity()
				if upErr := s.sessionRepo.Upsert(session.ID, *session); upErr != nil {
					err = upErr
				}
			}
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
		session.SetCredential(cred, identity, access)

		if tenantList, listErr := client.Connections(r.Context()); listErr == nil {
			reg := session.Registry()
			reg.Replace(tenantList)
			session.ApplyTenants(reg)
		}

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

// DisconnectHandler removes the active organisation's connection. When other
// organisations remain, the first of them becomes active; when the last one
// goes, the session identity is cleared entirely.
func (s *Server) DisconnectHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("home.html")
	if err != nil {
		panic("Failed to parse home template: " + err.Error())
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
			s.renderError(w, r, session, client, errors.New("no active organisation to disconnect"))
			return
		}
		client.SetCredential(session.Credential)

		cred, err := client.Disconnect(r.Context(), active.ConnectionID)
		if err != nil {
			s.renderError(w, r, session, client, err)
			return
		}

		tenantList, err := client.Connections(r.Context())
		if err != nil {
			s.renderError(w, r, session, client, err)
			return
		}

		if len(tenantList) == 0 {
			session.ClearIdentity()
		} else {
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
			session.SetCredential(cred, identity, access)
			reg := session.Registry()
			reg.Replace(tenantList)
			session.ApplyTenants(reg)
		}

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

// RevokeTokenHandler revokes the whole grant at the identity provider and
// clears the session. The local session is cleared whether or not the remote
// revocation succeeded: a half-revoked grant must never look signed-in.
func (s *Server) RevokeTokenHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("home.html")
	if err != nil {
		panic("Failed to parse home template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r)
		client := clientFromContext(r)

		var revokeErr error
		if session.Authenticated() {
			client.SetCredential(session.Credential)
			revokeErr = client.Revoke(r.Context())
		}

		session.ClearIdentity()
		if err := s.sessionRepo.Upsert(session.ID, *session); err != nil {
			s.renderError(w, r, session, client, err)
			return
		}

		if revokeErr != nil {
			s.renderError(w, r, session, client, revokeErr)
			return
		}

		s.renderHTML(w, tmpl, http.StatusOK, map[string]any{
			"AppName":       s.config.GetAppName(),
			"ConsentURL":    s.consentURL(session, client),
			"Authenticated": authenticationData(session),
		})
	}
}
