package server

func (s *Server) initRoutes() {
	// The webhook receiver is signature-authenticated and never touches the
	// session; everything else runs behind the session guard.
	s.RegisterRouteFunc("POST "+RouteWebhooks, ChainMiddleware(s.WebhookHandler(), s.StdMiddleware()...))

	s.RegisterRouteFunc("GET /{$}", s.guarded(s.HomeHandler()))
	s.RegisterRouteFunc("GET "+RouteCallback, s.guarded(s.CallbackHandler()))
	s.RegisterRouteFunc("POST "+RouteChangeOrganisation, s.guarded(s.ChangeOrganisationHandler()))
	s.RegisterRouteFunc("GET "+RouteRefreshToken, s.guarded(s.RefreshTokenHandler()))
	s.RegisterRouteFunc("GET "+RouteDisconnect, s.guarded(s.DisconnectHandler()))
	s.RegisterRouteFunc("GET "+RouteRevokeToken, s.guarded(s.RevokeTokenHandler()))

	s.RegisterRouteFunc("GET "+RouteAccounts, s.guarded(s.AccountsHandler()))
	s.RegisterRouteFunc("GET "+RouteContacts, s.guarded(s.ContactsHandler()))
	s.RegisterRouteFunc("GET "+RouteInvoices, s.guarded(s.InvoicesHandler()))
	s.RegisterRouteFunc("GET "+RouteItems, s.guarded(s.ItemsHandler()))
	s.RegisterRouteFunc("GET "+RoutePayments, s.guarded(s.PaymentsHandler()))
}
