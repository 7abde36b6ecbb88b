package server

// Route path constants
const (
	RouteIndex = "/"

	// Ledger connection
	RouteXeroConnect    = "/xero/connect"
	RouteXeroCallback   = "/xero/callback"
	RouteXeroStatus     = "/xero/status"
	RouteXeroDisconnect = "/xero/disconnect"

	// Admin ledger routes
	RouteXeroInvoices       = "/xero/invoices"
	RouteXeroCreateInvoice  = "/xero/create_invoice"
	RouteXeroCustomers      = "/xero/customers"
	RouteXeroCustomer       = "/xero/customer/{id}"
	RouteXeroCreateCustomer = "/xero/create_customer"
	RouteXeroAccounts       = "/xero/accounts"

	// Commerce routes
	RouteSquareWebhook     = "/square-webhook"
	RouteSquareLatestOrder = "/square/latest-order"
)
