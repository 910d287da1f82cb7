package server

import (
	"net/http"
)

// ChangeOrganisationHandler switches the active organisation to the tenant id
// posted from the organisation picker. An id outside the current tenant set
// is rejected and the active organisation is left unchanged.
func (s *Server) ChangeOrganisationHandler() http.HandlerFunc {
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

		reg := session.Registry()
		if err := reg.SetActive(r.FormValue("active_org_id")); err != nil {
			s.renderError(w, r, session, client, err)
			return
		}
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
