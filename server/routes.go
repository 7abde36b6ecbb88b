package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex+"{$}", ChainMiddleware(s.IndexHandler(), s.APIMiddleware()...))

	// Ledger connection
	s.RegisterRouteHandler("GET "+RouteXeroConnect, ChainMiddleware(s.ConnectHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteXeroCallback, ChainMiddleware(s.CallbackHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteXeroStatus, ChainMiddleware(s.StatusHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteXeroDisconnect, ChainMiddleware(s.DisconnectHandler(), s.AdminMiddleware()...))

	// Admin ledger routes
	s.RegisterRouteHandler("GET "+RouteXeroInvoices, ChainMiddleware(s.ListInvoicesHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteXeroCreateInvoice, ChainMiddleware(s.CreateInvoiceHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteXeroCustomers, ChainMiddleware(s.ListCustomersHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteXeroCustomer, ChainMiddleware(s.GetCustomerHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteXeroCreateCustomer, ChainMiddleware(s.CreateCustomerHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteXeroAccounts, ChainMiddleware(s.ListAccountsHandler(), s.AdminMiddleware()...))

	// Commerce routes
	s.RegisterRouteHandler("POST "+RouteSquareWebhook, ChainMiddleware(s.SquareWebhookHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSquareLatestOrder, ChainMiddleware(s.LatestOrderHandler(), s.AdminMiddleware()...))
}
