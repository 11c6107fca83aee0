package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seller is one tenant account. Every other entity is scoped to a seller;
// no operation ever crosses seller boundaries.
type Seller struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CookieType is a sellable cookie variant in a seller's catalog.
// Price changes over time; order items freeze the price at order time.
type CookieType struct {
	ID           int             `json:"id"`
	SellerID     int             `json:"seller_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	Active       bool            `json:"active"`
	IsGlutenFree bool            `json:"is_gluten_free"`
	IsPeanutFree bool            `json:"is_peanut_free"`
	IsVegan      bool            `json:"is_vegan"`
	IsNew        bool            `json:"is_new"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Customer is a buyer record belonging to one seller.
type Customer struct {
	ID           int       `json:"id"`
	SellerID     int       `json:"seller_id"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Neighborhood *string   `json:"neighborhood,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CustomerInput holds the fields accepted when creating or updating a customer.
type CustomerInput struct {
	Name         string
	Phone        string
	Email        string
	Address      string
	Neighborhood string
	Notes        string
}
