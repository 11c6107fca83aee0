package core

import "time"

// TransactionType classifies an inventory ledger entry.
// The core currently only produces RECEIVED entries.
type TransactionType string

const TransactionReceived TransactionType = "RECEIVED"

// InventoryTransaction is one append-only ledger entry: a signed box count
// for a cookie type. Entries are never updated or merged.
type InventoryTransaction struct {
	ID             int             `json:"id"`
	SellerID       int             `json:"seller_id"`
	CookieTypeID   int             `json:"cookie_type_id"`
	CookieTypeName string          `json:"cookie_type_name"` // joined from cookie_types
	Quantity       int             `json:"quantity"`
	Type           TransactionType `json:"type"`
	Date           time.Time       `json:"date"`
	Notes          *string         `json:"notes,omitempty"`
}

// StockLevel is the derived availability for one cookie type:
// received boxes minus boxes across all order items. Available may be
// negative; overselling is reported, not prevented.
type StockLevel struct {
	CookieTypeID   int    `json:"cookie_type_id"`
	CookieTypeName string `json:"cookie_type_name"`
	Received       int    `json:"received"`
	Sold           int    `json:"sold"`
	Available      int    `json:"available"`
}
