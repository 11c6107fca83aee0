package app

// SignupRequest is the input for registering a new seller.
type SignupRequest struct {
	Name     string
	Email    string
	Password string
}

// CustomerRequest is the input for creating or updating a customer.
// Updates replace every field; empty strings clear optional columns.
type CustomerRequest struct {
	Name         string
	Phone        string
	Email        string
	Address      string
	Neighborhood string
	Notes        string
}

// OrderRequest is the input for creating an order or replacing its items.
type OrderRequest struct {
	CustomerID    int
	Items         []OrderItemRequest
	Donation      float64
	Source        string
	PaymentMethod string
	Notes         string
}

// OrderItemRequest is a single line within an OrderRequest.
type OrderItemRequest struct {
	CookieTypeID int
	Quantity     int
}

// ReceiptRequest is the input for recording a case of cookies received.
type ReceiptRequest struct {
	CookieTypeID int
	Quantity     int
	Notes        string
}

// RouteLocationRequest is the input for adding a stop to the route.
type RouteLocationRequest struct {
	Address      string
	Neighborhood string
	CustomerID   *int
	Notes        string
}
