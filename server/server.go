package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-xero-sample/internal/config"
	"github.com/jrsteele09/go-xero-sample/sessions"
	"github.com/jrsteele09/go-xero-sample/xero"
)

type Server struct {
	env          string // Environment (e.g., "DEV", "production")
	mux          *http.ServeMux
	routes       []string
	config       config.Config
	sessionRepo  sessions.Repo
	sessionLocks *sessions.Locker
	xeroCfg      xero.Config
	errorTmpl    *template.Template
}

func New(cfg config.Config, sessionRepo sessions.Repo) (*Server, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("[Server New] invalid configuration: %w", err)
	}
	if sessionRepo == nil {
		return nil, fmt.Errorf("[Server New] session repo is required")
	}

	s := &Server{
		mux:          http.NewServeMux(),
		config:       cfg,
		sessionRepo:  sessionRepo,
		sessionLocks: sessions.NewLocker(),
		xeroCfg: xero.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			RedirectURI:  cfg.GetRedirectURI(),
			Scopes:       cfg.GetScopes(),
			HTTPTimeout:  cfg.GetHTTPTimeout(),
		},
	}
	s.env = cfg.GetEnv()

	if issuer := cfg.GetIssuerURL(); issuer != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.GetHTTPTimeout())
		defer cancel()
		endpoint, err := xero.DiscoverEndpoints(ctx, issuer)
		if err != nil {
			return nil, fmt.Errorf("[Server New] endpoint discovery: %w", err)
		}
		s.xeroCfg.AuthURL = endpoint.AuthURL
		s.xeroCfg.TokenURL = endpoint.TokenURL
	}

	errorTmpl, err := ParseTemplate("error.html")
	if err != nil {
		return nil, fmt.Errorf("[Server New] parsing error template: %w", err)
	}
	s.errorTmpl = errorTmpl

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

// newClient builds the per-request working client. Nothing about the OAuth
// client survives between requests; the session is the only durable state.
func (s *Server) newClient() (*xero.Client, error) {
	return xero.New(s.xeroCfg)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
