package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerService manages a seller's customer records.
type CustomerService interface {
	// CreateCustomer inserts a new customer stamped with the seller's id.
	CreateCustomer(ctx context.Context, sellerID int, input CustomerInput) (*Customer, error)

	// UpdateCustomer replaces a customer's editable fields.
	UpdateCustomer(ctx context.Context, sellerID, customerID int, input CustomerInput) (*Customer, error)

	// DeleteCustomer removes a customer. The customer's orders and their
	// items go with it (cascade).
	DeleteCustomer(ctx context.Context, sellerID, customerID int) error

	// GetCustomer returns one customer by id, scoped to the seller.
	GetCustomer(ctx context.Context, sellerID, customerID int) (*Customer, error)

	// GetCustomers returns all of the seller's customers, grouped by
	// neighborhood then name.
	GetCustomers(ctx context.Context, sellerID int) ([]Customer, error)

	// Neighborhoods returns the distinct, sorted neighborhoods appearing on
	// the seller's customers and route locations.
	Neighborhoods(ctx context.Context, sellerID int) ([]string, error)
}

type customerService struct {
	pool *pgxpool.Pool
}

// NewCustomerService constructs a CustomerService backed by PostgreSQL.
func NewCustomerService(pool *pgxpool.Pool) CustomerService {
	return &customerService{pool: pool}
}

// toPtr maps empty strings to NULL for optional columns.
func toPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

const customerColumns = `id, seller_id, name, phone, email, address, neighborhood, notes, created_at`

func scanCustomer(row pgx.Row, c *Customer) error {
	return row.Scan(&c.ID, &c.SellerID, &c.Name, &c.Phone, &c.Email,
		&c.Address, &c.Neighborhood, &c.Notes, &c.CreatedAt)
}

func (s *customerService) CreateCustomer(ctx context.Context, sellerID int, input CustomerInput) (*Customer, error) {
	if input.Name == "" {
		return nil, validationf("customer name is required")
	}

	var c Customer
	err := scanCustomer(s.pool.QueryRow(ctx, `
		INSERT INTO customers (seller_id, name, phone, email, address, neighborhood, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+customerColumns,
		sellerID, input.Name, toPtr(input.Phone), toPtr(input.Email),
		toPtr(input.Address), toPtr(input.Neighborhood), toPtr(input.Notes),
	), &c)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &c, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, sellerID, customerID int, input CustomerInput) (*Customer, error) {
	if input.Name == "" {
		return nil, validationf("customer name is required")
	}

	var c Customer
	err := scanCustomer(s.pool.QueryRow(ctx, `
		UPDATE customers
		SET name = $1, phone = $2, email = $3, address = $4, neighborhood = $5, notes = $6
		WHERE id = $7 AND seller_id = $8
		RETURNING `+customerColumns,
		input.Name, toPtr(input.Phone), toPtr(input.Email), toPtr(input.Address),
		toPtr(input.Neighborhood), toPtr(input.Notes), customerID, sellerID,
	), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update customer %d: %w", customerID, err)
	}
	return &c, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, sellerID, customerID int) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM customers WHERE id = $1 AND seller_id = $2",
		customerID, sellerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *customerService) GetCustomer(ctx context.Context, sellerID, customerID int) (*Customer, error) {
	var c Customer
	err := scanCustomer(s.pool.QueryRow(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE id = $1 AND seller_id = $2
	`, customerID, sellerID), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer %d: %w", customerID, err)
	}
	return &c, nil
}

func (s *customerService) GetCustomers(ctx context.Context, sellerID int) ([]Customer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE seller_id = $1
		ORDER BY neighborhood NULLS LAST, name
	`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *customerService) Neighborhoods(ctx context.Context, sellerID int) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT DISTINCT neighborhood FROM (
			SELECT neighborhood FROM customers WHERE seller_id = $1 AND neighborhood IS NOT NULL
			UNION
			SELECT neighborhood FROM route_locations WHERE seller_id = $1 AND neighborhood IS NOT NULL
		) n
		ORDER BY neighborhood
	`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query neighborhoods: %w", err)
	}
	defer rows.Close()

	var neighborhoods []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan neighborhood: %w", err)
		}
		neighborhoods = append(neighborhoods, n)
	}
	return neighborhoods, rows.Err()
}
