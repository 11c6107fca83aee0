package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InventoryService maintains the append-only receipt ledger and derives
// availability from it. There is no cached stock counter anywhere: every
// level read recomputes from the transaction and order item tables, so the
// numbers can never drift from the source records.
type InventoryService interface {
	// RecordReceipt appends a RECEIVED transaction for a cookie type.
	// Quantity must be positive. Prior transactions are never touched.
	RecordReceipt(ctx context.Context, sellerID, cookieTypeID, quantity int, notes string) (*InventoryTransaction, error)

	// ListTransactions returns the seller's ledger entries, newest first.
	ListTransactions(ctx context.Context, sellerID int) ([]InventoryTransaction, error)

	// ComputeLevels returns received/sold/available for every active cookie
	// type, sorted by name. Orders count as sold the moment they exist,
	// regardless of payment or delivery. Available may be negative.
	ComputeLevels(ctx context.Context, sellerID int) ([]StockLevel, error)
}

type inventoryService struct {
	pool *pgxpool.Pool
}

// NewInventoryService constructs an InventoryService backed by PostgreSQL.
func NewInventoryService(pool *pgxpool.Pool) InventoryService {
	return &inventoryService{pool: pool}
}

func (s *inventoryService) RecordReceipt(ctx context.Context, sellerID, cookieTypeID, quantity int, notes string) (*InventoryTransaction, error) {
	if quantity <= 0 {
		return nil, validationf("receipt quantity must be positive, got %d", quantity)
	}

	// Confirm the cookie type belongs to this seller before writing.
	var name string
	err := s.pool.QueryRow(ctx,
		"SELECT name FROM cookie_types WHERE id = $1 AND seller_id = $2",
		cookieTypeID, sellerID,
	).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, validationf("cookie type %d not found", cookieTypeID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cookie type %d: %w", cookieTypeID, err)
	}

	var t InventoryTransaction
	err = s.pool.QueryRow(ctx, `
		INSERT INTO inventory_transactions (seller_id, cookie_type_id, quantity, type, notes)
		VALUES ($1, $2, $3, 'RECEIVED', $4)
		RETURNING id, seller_id, cookie_type_id, quantity, type, date, notes
	`, sellerID, cookieTypeID, quantity, toPtr(notes)).Scan(
		&t.ID, &t.SellerID, &t.CookieTypeID, &t.Quantity, &t.Type, &t.Date, &t.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert inventory transaction: %w", err)
	}
	t.CookieTypeName = name
	return &t, nil
}

func (s *inventoryService) ListTransactions(ctx context.Context, sellerID int) ([]InventoryTransaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT it.id, it.seller_id, it.cookie_type_id, ct.name, it.quantity, it.type, it.date, it.notes
		FROM inventory_transactions it
		JOIN cookie_types ct ON ct.id = it.cookie_type_id
		WHERE it.seller_id = $1
		ORDER BY it.date DESC, it.id DESC
	`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory transactions: %w", err)
	}
	defer rows.Close()

	var transactions []InventoryTransaction
	for rows.Next() {
		var t InventoryTransaction
		if err := rows.Scan(&t.ID, &t.SellerID, &t.CookieTypeID, &t.CookieTypeName,
			&t.Quantity, &t.Type, &t.Date, &t.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan inventory transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (s *inventoryService) ComputeLevels(ctx context.Context, sellerID int) ([]StockLevel, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ct.id, ct.name,
		       COALESCE((SELECT SUM(it.quantity)
		                 FROM inventory_transactions it
		                 WHERE it.cookie_type_id = ct.id AND it.type = 'RECEIVED'), 0) AS received,
		       COALESCE((SELECT SUM(oi.quantity)
		                 FROM order_items oi
		                 JOIN orders o ON o.id = oi.order_id
		                 WHERE oi.cookie_type_id = ct.id), 0) AS sold
		FROM cookie_types ct
		WHERE ct.seller_id = $1 AND ct.active = true
		ORDER BY ct.name
	`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock levels: %w", err)
	}
	defer rows.Close()

	var levels []StockLevel
	for rows.Next() {
		var sl StockLevel
		if err := rows.Scan(&sl.CookieTypeID, &sl.CookieTypeName, &sl.Received, &sl.Sold); err != nil {
			return nil, fmt.Errorf("failed to scan stock level: %w", err)
		}
		sl.Available = sl.Received - sl.Sold
		levels = append(levels, sl)
	}
	return levels, rows.Err()
}
