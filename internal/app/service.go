package app

import "context"

// ApplicationService is the single interface all UI adapters call. It
// decouples presentation from business logic. Implementations must contain
// no fmt.Println and no display logic of any kind.
//
// Every operation below is scoped to one seller: sellerID comes from the
// authenticated session, never from the request body.
type ApplicationService interface {
	// Signup registers a new seller, seeds their cookie catalog, and
	// returns a session for the fresh account.
	Signup(ctx context.Context, req SignupRequest) (*SellerSession, error)

	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, email, password string) (*SellerSession, error)

	// GetSeller returns the seller profile by ID.
	GetSeller(ctx context.Context, sellerID int) (*SellerResult, error)

	// ListCookieTypes returns the seller's active catalog, sorted by name.
	ListCookieTypes(ctx context.Context, sellerID int) (*CookieTypeListResult, error)

	// ListCustomers returns all of the seller's customers.
	ListCustomers(ctx context.Context, sellerID int) (*CustomerListResult, error)

	// CreateCustomer adds a customer record.
	CreateCustomer(ctx context.Context, sellerID int, req CustomerRequest) (*CustomerResult, error)

	// UpdateCustomer replaces a customer's editable fields.
	UpdateCustomer(ctx context.Context, sellerID, customerID int, req CustomerRequest) (*CustomerResult, error)

	// DeleteCustomer removes a customer together with their orders.
	DeleteCustomer(ctx context.Context, sellerID, customerID int) error

	// ListNeighborhoods returns the distinct neighborhoods across the
	// seller's customers and route locations.
	ListNeighborhoods(ctx context.Context, sellerID int) (*NeighborhoodsResult, error)

	// ListOrders returns the seller's orders, newest first, items included.
	ListOrders(ctx context.Context, sellerID int) (*OrderListResult, error)

	// GetOrder returns a single order with its items.
	GetOrder(ctx context.Context, sellerID, orderID int) (*OrderResult, error)

	// CreateOrder prices and records a new order in one transaction.
	CreateOrder(ctx context.Context, sellerID int, req OrderRequest) (*OrderResult, error)

	// UpdateOrder replaces an order's items wholesale and reprices the
	// order at current catalog prices.
	UpdateOrder(ctx context.Context, sellerID, orderID int, req OrderRequest) (*OrderResult, error)

	// SetOrderPaid marks an order settled in full, or reopens it.
	SetOrderPaid(ctx context.Context, sellerID, orderID int, paid bool) (*OrderResult, error)

	// SetOrderDelivered flips the delivery flag, independent of payment.
	SetOrderDelivered(ctx context.Context, sellerID, orderID int, delivered bool) (*OrderResult, error)

	// DeleteOrder removes an order and its items.
	DeleteOrder(ctx context.Context, sellerID, orderID int) error

	// RecordInventoryReceipt appends a RECEIVED entry to the ledger.
	RecordInventoryReceipt(ctx context.Context, sellerID int, req ReceiptRequest) (*TransactionResult, error)

	// ListInventoryTransactions returns the ledger, newest first.
	ListInventoryTransactions(ctx context.Context, sellerID int) (*TransactionListResult, error)

	// GetStockLevels returns received/sold/available per cookie type.
	// Available can go negative when orders outrun receipts.
	GetStockLevels(ctx context.Context, sellerID int) (*StockResult, error)

	// ListRouteLocations returns the seller's door-to-door route.
	ListRouteLocations(ctx context.Context, sellerID int) (*RouteListResult, error)

	// CreateRouteLocation adds a stop to the route.
	CreateRouteLocation(ctx context.Context, sellerID int, req RouteLocationRequest) (*RouteLocationResult, error)

	// SetRouteVisited stamps or clears the visit time for a stop.
	SetRouteVisited(ctx context.Context, sellerID, locationID int, visited bool) (*RouteLocationResult, error)

	// SetRouteStatus records the outcome of a stop.
	SetRouteStatus(ctx context.Context, sellerID, locationID int, status string) (*RouteLocationResult, error)

	// DeleteRouteLocation removes a stop from the route.
	DeleteRouteLocation(ctx context.Context, sellerID, locationID int) error
}
