package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderSource identifies how an order was taken.
type OrderSource string

const (
	SourceDoorToDoor OrderSource = "DOOR_TO_DOOR"
	SourceOnline     OrderSource = "ONLINE"
	SourceBooth      OrderSource = "BOOTH"
)

// PaymentMethod records how a paid order was settled. Nil means unspecified.
type PaymentMethod string

const (
	PayCash   PaymentMethod = "CASH"
	PayCheck  PaymentMethod = "CHECK"
	PayVenmo  PaymentMethod = "VENMO"
	PayPaypal PaymentMethod = "PAYPAL"
	PayOther  PaymentMethod = "OTHER"
)

// Order is a customer order header. Invariant, re-established on every
// create/replace:
//
//	TotalAmount == Σ item.Subtotal + Donation
//
// Payment and delivery are two independent reversible booleans, not a joint
// state machine.
type Order struct {
	ID            int             `json:"id"`
	SellerID      int             `json:"seller_id"`
	CustomerID    int             `json:"customer_id"`
	CustomerName  string          `json:"customer_name"` // joined from customers
	OrderDate     time.Time       `json:"order_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Donation      decimal.Decimal `json:"donation"`
	IsPaid        bool            `json:"is_paid"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	IsDelivered   bool            `json:"is_delivered"`
	Source        OrderSource     `json:"source"`
	PaymentMethod *PaymentMethod  `json:"payment_method,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	Items         []OrderItem     `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderItem is one line on an order. PricePerBox is frozen from the cookie
// type's price at write time and never tracks later catalog changes.
type OrderItem struct {
	ID             int             `json:"id"`
	OrderID        int             `json:"order_id"`
	CookieTypeID   int             `json:"cookie_type_id"`
	CookieTypeName string          `json:"cookie_type_name"` // joined from cookie_types
	Quantity       int             `json:"quantity"`
	PricePerBox    decimal.Decimal `json:"price_per_box"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// OrderItemInput is a single requested line when creating or replacing
// an order's items.
type OrderItemInput struct {
	CookieTypeID int
	Quantity     int
}

// OrderInput holds the caller-supplied fields for CreateOrder and
// ReplaceOrderItems. On replace, a zero CustomerID keeps the existing
// customer and an empty Source keeps the existing source.
type OrderInput struct {
	CustomerID    int
	Items         []OrderItemInput
	Donation      decimal.Decimal
	Source        OrderSource
	PaymentMethod *PaymentMethod
	Notes         string
}
