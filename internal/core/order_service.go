package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// OrderService manages the order lifecycle: creation, set-replacement edits,
// payment and delivery flags, and deletion. Totals are always recomputed from
// the item list, never incrementally patched.
type OrderService interface {
	// CreateOrder prices the requested items against the seller's current
	// catalog and persists the order header and items as one atomic unit.
	CreateOrder(ctx context.Context, sellerID int, input OrderInput) (*Order, error)

	// ReplaceOrderItems deletes the order's existing items, reprices the new
	// list exactly as in CreateOrder, and updates the header. All three steps
	// commit together or roll back together. A zero input.CustomerID keeps
	// the existing customer; an empty input.Source keeps the existing source.
	ReplaceOrderItems(ctx context.Context, sellerID, orderID int, input OrderInput) (*Order, error)

	// MarkPaid sets or clears the paid flag. Paying sets paid_at to now and
	// amount_paid to the full total (full settlement only); unpaying clears
	// both. Re-applying the current state is a no-op.
	MarkPaid(ctx context.Context, sellerID, orderID int, paid bool) (*Order, error)

	// MarkDelivered flips the delivery flag. No monetary side effects.
	MarkDelivered(ctx context.Context, sellerID, orderID int, delivered bool) (*Order, error)

	// DeleteOrder removes an order and its items.
	DeleteOrder(ctx context.Context, sellerID, orderID int) error

	// GetOrder returns one order with its items, scoped to the seller.
	GetOrder(ctx context.Context, sellerID, orderID int) (*Order, error)

	// GetOrders returns all of the seller's orders, newest first, with items.
	GetOrders(ctx context.Context, sellerID int) ([]Order, error)
}

type orderService struct {
	pool *pgxpool.Pool
}

// NewOrderService constructs an OrderService backed by PostgreSQL.
func NewOrderService(pool *pgxpool.Pool) OrderService {
	return &orderService{pool: pool}
}

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, enabling shared
// query helpers inside and outside transactions.
type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func validateOrderEnums(input OrderInput) error {
	switch input.Source {
	case "", SourceDoorToDoor, SourceOnline, SourceBooth:
	default:
		return validationf("invalid order source %q", input.Source)
	}
	if input.PaymentMethod != nil {
		switch *input.PaymentMethod {
		case PayCash, PayCheck, PayVenmo, PayPaypal, PayOther:
		default:
			return validationf("invalid payment method %q", *input.PaymentMethod)
		}
	}
	return nil
}

// resolveCustomer confirms the customer exists and belongs to the seller.
// Foreign-tenant customers are reported as not found.
func resolveCustomer(ctx context.Context, q pgxQuerier, sellerID, customerID int) error {
	var id int
	err := q.QueryRow(ctx,
		"SELECT id FROM customers WHERE id = $1 AND seller_id = $2",
		customerID, sellerID,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to resolve customer %d: %w", customerID, err)
	}
	return nil
}

// loadPrices fetches the current catalog price for each distinct cookie type
// on the requested lines. Types outside the seller's catalog are simply
// absent from the map; PriceOrder rejects them.
func loadPrices(ctx context.Context, q pgxQuerier, sellerID int, items []OrderItemInput) (map[int]decimal.Decimal, error) {
	prices := make(map[int]decimal.Decimal, len(items))
	for _, item := range items {
		if _, ok := prices[item.CookieTypeID]; ok {
			continue
		}
		var price decimal.Decimal
		err := q.QueryRow(ctx,
			"SELECT price FROM cookie_types WHERE id = $1 AND seller_id = $2",
			item.CookieTypeID, sellerID,
		).Scan(&price)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cookie type %d: %w", item.CookieTypeID, err)
		}
		prices[item.CookieTypeID] = price
	}
	return prices, nil
}

func insertOrderItems(ctx context.Context, tx pgx.Tx, orderID int, lines []PricedLine) error {
	for i, line := range lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, cookie_type_id, quantity, price_per_box, subtotal)
			VALUES ($1, $2, $3, $4, $5)
		`, orderID, line.CookieTypeID, line.Quantity, line.PricePerBox, line.Subtotal)
		if err != nil {
			return fmt.Errorf("failed to insert order item %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *orderService) CreateOrder(ctx context.Context, sellerID int, input OrderInput) (*Order, error) {
	if err := validateOrderEnums(input); err != nil {
		return nil, err
	}
	source := input.Source
	if source == "" {
		source = SourceDoorToDoor
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := resolveCustomer(ctx, tx, sellerID, input.CustomerID); err != nil {
		return nil, err
	}

	prices, err := loadPrices(ctx, tx, sellerID, input.Items)
	if err != nil {
		return nil, err
	}
	lines, total, err := PriceOrder(input.Items, prices, input.Donation)
	if err != nil {
		return nil, err
	}

	var orderID int
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (seller_id, customer_id, total_amount, donation, source, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, sellerID, input.CustomerID, total, input.Donation, source, input.PaymentMethod, toPtr(input.Notes)).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	if err := insertOrderItems(ctx, tx, orderID, lines); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order creation: %w", err)
	}

	return s.GetOrder(ctx, sellerID, orderID)
}

func (s *orderService) ReplaceOrderItems(ctx context.Context, sellerID, orderID int, input OrderInput) (*Order, error) {
	if err := validateOrderEnums(input); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the order row for the duration of the replacement.
	var currentCustomerID int
	var currentSource OrderSource
	err = tx.QueryRow(ctx,
		"SELECT customer_id, source FROM orders WHERE id = $1 AND seller_id = $2 FOR UPDATE",
		orderID, sellerID,
	).Scan(&currentCustomerID, &currentSource)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}

	customerID := currentCustomerID
	if input.CustomerID != 0 && input.CustomerID != currentCustomerID {
		if err := resolveCustomer(ctx, tx, sellerID, input.CustomerID); err != nil {
			return nil, err
		}
		customerID = input.CustomerID
	}
	source := currentSource
	if input.Source != "" {
		source = input.Source
	}

	// Set replacement: all existing items go, the new list is priced from
	// scratch. Nothing is visible until the single commit below.
	if _, err := tx.Exec(ctx, "DELETE FROM order_items WHERE order_id = $1", orderID); err != nil {
		return nil, fmt.Errorf("failed to clear order items: %w", err)
	}

	prices, err := loadPrices(ctx, tx, sellerID, input.Items)
	if err != nil {
		return nil, err
	}
	lines, total, err := PriceOrder(input.Items, prices, input.Donation)
	if err != nil {
		return nil, err
	}

	if err := insertOrderItems(ctx, tx, orderID, lines); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE orders
		SET customer_id = $1, total_amount = $2, donation = $3, source = $4,
		    payment_method = $5, notes = $6
		WHERE id = $7
	`, customerID, total, input.Donation, source, input.PaymentMethod, toPtr(input.Notes), orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %d: %w", orderID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order replacement: %w", err)
	}

	return s.GetOrder(ctx, sellerID, orderID)
}

func (s *orderService) MarkPaid(ctx context.Context, sellerID, orderID int, paid bool) (*Order, error) {
	order, err := s.GetOrder(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid == paid {
		return order, nil
	}

	_, err = s.pool.Exec(ctx, `
		UPDATE orders
		SET is_paid     = $1,
		    paid_at     = CASE WHEN $1 THEN NOW() ELSE NULL END,
		    amount_paid = CASE WHEN $1 THEN total_amount ELSE 0 END
		WHERE id = $2 AND seller_id = $3
	`, paid, orderID, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment state for order %d: %w", orderID, err)
	}

	return s.GetOrder(ctx, sellerID, orderID)
}

func (s *orderService) MarkDelivered(ctx context.Context, sellerID, orderID int, delivered bool) (*Order, error) {
	tag, err := s.pool.Exec(ctx,
		"UPDATE orders SET is_delivered = $1 WHERE id = $2 AND seller_id = $3",
		delivered, orderID, sellerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update delivery state for order %d: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return s.GetOrder(ctx, sellerID, orderID)
}

func (s *orderService) DeleteOrder(ctx context.Context, sellerID, orderID int) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM orders WHERE id = $1 AND seller_id = $2",
		orderID, sellerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const orderColumns = `o.id, o.seller_id, o.customer_id, c.name, o.order_date,
       o.total_amount, o.donation, o.is_paid, o.paid_at, o.amount_paid,
       o.is_delivered, o.source, o.payment_method, o.notes, o.created_at`

func scanOrder(row pgx.Row, o *Order) error {
	return row.Scan(
		&o.ID, &o.SellerID, &o.CustomerID, &o.CustomerName, &o.OrderDate,
		&o.TotalAmount, &o.Donation, &o.IsPaid, &o.PaidAt, &o.AmountPaid,
		&o.IsDelivered, &o.Source, &o.PaymentMethod, &o.Notes, &o.CreatedAt,
	)
}

func (s *orderService) GetOrder(ctx context.Context, sellerID, orderID int) (*Order, error) {
	var o Order
	err := scanOrder(s.pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1 AND o.seller_id = $2
	`, orderID, sellerID), &o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch order %d: %w", orderID, err)
	}

	items, err := fetchOrderItemsQ(ctx, s.pool, orderID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (s *orderService) GetOrders(ctx context.Context, sellerID int) ([]Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.seller_id = $1
		ORDER BY o.order_date DESC, o.id DESC
	`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	byID := make(map[int]int) // order id → index in orders
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		byID[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := s.pool.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.cookie_type_id, ct.name, oi.quantity, oi.price_per_box, oi.subtotal
		FROM order_items oi
		JOIN cookie_types ct ON ct.id = oi.cookie_type_id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.seller_id = $1
		ORDER BY oi.order_id, oi.id
	`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.CookieTypeID,
			&item.CookieTypeName, &item.Quantity, &item.PricePerBox, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if idx, ok := byID[item.OrderID]; ok {
			orders[idx].Items = append(orders[idx].Items, item)
		}
	}
	return orders, itemRows.Err()
}

func fetchOrderItemsQ(ctx context.Context, q pgxQuerier, orderID int) ([]OrderItem, error) {
	rows, err := q.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.cookie_type_id, ct.name, oi.quantity, oi.price_per_box, oi.subtotal
		FROM order_items oi
		JOIN cookie_types ct ON ct.id = oi.cookie_type_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.CookieTypeID,
			&item.CookieTypeName, &item.Quantity, &item.PricePerBox, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
