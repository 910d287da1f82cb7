package server

import (
	"net/http"
)

// HomeHandler renders the landing page with the consent link and the current
// authentication state.
func (s *Server) HomeHandler() http.HandlerFunc {
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

		s.renderHTML(w, tmpl, http.StatusOK, map[string]any{
			"AppName":       s.config.GetAppName(),
			"ConsentURL":    s.consentURL(session, client),
			"Authenticated": authenticationData(session),
		})
	}
}
