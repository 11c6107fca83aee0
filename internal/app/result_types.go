package app

import (
	"time"

	"cookie-ledger/internal/core"
)

// SellerSession identifies an authenticated seller. It carries only what
// the adapters need to mint a token.
type SellerSession struct {
	SellerID int
	Name     string
	Email    string
}

// SellerResult is returned by GetSeller.
type SellerResult struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CookieTypeView is a catalog entry with its price rendered as a plain
// number. All money leaves core as decimals; the conversion to float64
// happens here, at the presentation edge, and nowhere else.
type CookieTypeView struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price"`
	IsGlutenFree bool    `json:"is_gluten_free"`
	IsPeanutFree bool    `json:"is_peanut_free"`
	IsVegan      bool    `json:"is_vegan"`
	IsNew        bool    `json:"is_new"`
}

// CookieTypeListResult is returned by ListCookieTypes.
type CookieTypeListResult struct {
	CookieTypes []CookieTypeView `json:"cookie_types"`
}

// CustomerResult is returned by customer write operations.
type CustomerResult struct {
	Customer *core.Customer `json:"customer"`
}

// CustomerListResult is returned by ListCustomers.
type CustomerListResult struct {
	Customers []core.Customer `json:"customers"`
}

// NeighborhoodsResult is returned by ListNeighborhoods.
type NeighborhoodsResult struct {
	Neighborhoods []string `json:"neighborhoods"`
}

// OrderItemView is one priced line on an order.
type OrderItemView struct {
	ID             int     `json:"id"`
	CookieTypeID   int     `json:"cookie_type_id"`
	CookieTypeName string  `json:"cookie_type_name"`
	Quantity       int     `json:"quantity"`
	PricePerBox    float64 `json:"price_per_box"`
	Subtotal       float64 `json:"subtotal"`
}

// OrderView is an order header with its items.
type OrderView struct {
	ID            int             `json:"id"`
	CustomerID    int             `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	OrderDate     time.Time       `json:"order_date"`
	TotalAmount   float64         `json:"total_amount"`
	Donation      float64         `json:"donation"`
	IsPaid        bool            `json:"is_paid"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	AmountPaid    float64         `json:"amount_paid"`
	IsDelivered   bool            `json:"is_delivered"`
	Source        string          `json:"source"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	Items         []OrderItemView `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderResult is returned by single-order operations.
type OrderResult struct {
	Order OrderView `json:"order"`
}

// OrderListResult is returned by ListOrders.
type OrderListResult struct {
	Orders []OrderView `json:"orders"`
}

// TransactionResult is returned by RecordInventoryReceipt.
type TransactionResult struct {
	Transaction *core.InventoryTransaction `json:"transaction"`
}

// TransactionListResult is returned by ListInventoryTransactions.
type TransactionListResult struct {
	Transactions []core.InventoryTransaction `json:"transactions"`
}

// StockResult is returned by GetStockLevels.
type StockResult struct {
	Levels []core.StockLevel `json:"levels"`
}

// RouteLocationResult is returned by route write operations.
type RouteLocationResult struct {
	Location *core.RouteLocation `json:"location"`
}

// RouteListResult is returned by ListRouteLocations.
type RouteListResult struct {
	Locations []core.RouteLocation `json:"locations"`
}
