package core_test

import (
	"context"
	"errors"
	"testing"

	"cookie-ledger/internal/core"

	"github.com/shopspring/decimal"
)

func TestOrderService_CreateOrder(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seller := signupTestSeller(t, pool, "Maya", "maya@example.com")
	customer := createTestCustomer(t, pool, seller.ID, "Mrs. Alvarez", "Oakwood")
	thinMints := cookieTypeByName(t, pool, seller.ID, "Thin Mints")

	orderSvc := core.NewOrderService(pool)

	order, err := orderSvc.CreateOrder(ctx, seller.ID, core.OrderInput{
		CustomerID: customer.ID,
		Items:      []core.OrderItemInput{{CookieTypeID: thinMints.ID, Quantity: 5}},
		Donation:   decimal.RequireFromString("2.00"),
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	assertAmount(t, "total", "32.00", order.TotalAmount)
	assertAmount(t, "donation", "2.00", order.Donation)
	if order.Source != core.SourceDoorToDoor {
		t.Errorf("expected default source DOOR_TO_DOOR, got %s", order.Source)
	}
	if order.IsPaid || order.IsDelivered {
		t.Error("new order must start unpaid and undelivered")
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}
	assertAmount(t, "item price", "6.00", order.Items[0].PricePerBox)
	assertAmount(t, "item subtotal", "30.00", order.Items[0].Subtotal)
	if order.CustomerName != "Mrs. Alvarez" {
		t.Errorf("expected joined customer name, got %q", order.CustomerName)
	}
}

func TestOrderService_CreateOrder_Validation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seller := signupTestSeller(t, pool, "Maya", "maya@example.com")
	customer := createTestCustomer(t, pool, seller.ID, "Mr. Okafor", "")
	thinMints := cookieTypeByName(t, pool, seller.ID, "Thin Mints")

	orderSvc := core.NewOrderService(pool)

	// Unknown customer reads as not found.
	_, err := orderSvc.CreateOrder(ctx, seller.ID, core.OrderInput{
		CustomerID: customer.ID + 9999,
		Items:      []core.OrderItemInput{{CookieTypeID: thinMints.ID, Quantity: 1}},
	})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown customer, got %v", err)
	}

	// Empty item list, bad quantity, and unknown cookie type are all
	// rejected before any write.
	invalid := []core.OrderInput{
		{CustomerID: customer.ID, Items: nil},
		{CustomerID: customer.ID, Items: []core.OrderItemInput{{CookieTypeID: thinMints.ID, Quantity: 0}}},
		{CustomerID: customer.ID, Items: []core.OrderItemInput{{CookieTypeID: thinMints.ID + 9999, Quantity: 1}}},
	}
	for i, input := range invalid {
		if _, err := orderSvc.CreateOrder(ctx, seller.ID, input); !core.IsValidation(err) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}

	if n := countRows(t, pool, "SELECT COUNT(*) FROM orders WHERE seller_id = $1", seller.ID); n != 0 {
		t.Errorf("rejected orders must leave no rows, found %d", n)
	}
}

func TestOrderService_PriceFrozenAtOrderTime(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seller := signupTestSeller(t, pool, "Maya", "maya@example.com")
	customer := createTestCustomer(t, pool, seller.ID, "Mrs. Alvarez", "")
	thinMints := cookieTypeByName(t, pool, seller.ID, "Thin Mints")

	orderSvc := core.NewOrderService(pool)
	order, err := orderSvc.CreateOrder(ctx, seller.ID, core.OrderInput{
		CustomerID: customer.ID,
		Items:      []core.OrderItemInput{{CookieTypeID: thinMints.ID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// Raise the catalog price after the fact.
	if _, err := pool.Exec(ctx,
		"UPDATE cookie_types SET price = 9.50 WHERE id = $1", thinMints.ID); err != nil {
		t.Fatalf("price update failed: %v", err)
	}

	order, err = orderSvc.GetOrder(ctx, seller.ID, order.ID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	assertAmount(t, "frozen line price", "6.00", order.Items[0].PricePerBox)
	assertAmount(t, "frozen total", "18.00", order.TotalAmount)
}

func TestOrderService_ReplaceOrderItems(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seller := signupTestSeller(t, pool, "Maya", "maya@example.com")
	customer := createTestCustomer(t, pool, seller.ID, "Mrs. Alvarez", "")
	thinMints := cookieTypeByName(t, pool, seller.ID, "Thin Mints")
	caramel := cookieTypeByName(t, pool, seller.ID, "Caramel Chocolate Chip")

	orderSvc := core.NewOrderService(pool)
	order, err := orderSvc.CreateOrder(ctx, seller.ID, core.OrderInput{
		CustomerID: customer.ID,
		Items:      []core.OrderItemInput{{CookieTypeID: thinMints.ID, Quantity: 5}},
		Donation:   decimal.RequireFromString("2.00"),
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	replaced, err := orderSvc.ReplaceOrderItems(ctx, seller.ID, order.ID, core.OrderInput{
		Items: []core.OrderItemInput{
			{CookieTypeID: thinMints.ID, Quantity: 2},
			{CookieTypeID: caramel.ID, Quantity: 1},
		},
		Donation: decimal.RequireFromString("0.50"),
	})
	if err != nil {
		t.Fatalf("ReplaceOrderItems failed: %v", err)
	}

	// 2 × 6.00 + 1 × 7.00 + 0.50 donation
	assertAmount(t, "replaced total", "19.50", replaced.TotalAmount)
	if len(replaced.Items) != 2 {
		t.Fatalf("expected 2 items after replace, got %d", len(replaced.Items))
	}
	if replaced.CustomerID != customer.ID {
		t.Errorf("zero CustomerID must keep the existing customer")
	}

	// The old item set is gone, not merged.
	if n := countRows(t, pool, "SELECT COUNT(*) FROM order_items WHERE order_id = $1", order.ID); n != 2 {
		t.Errorf("expected exactly 2 item rows, found %d", n)
	}
}

func TestOrderService_ReplaceOrderItems_Atomic(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seller := signupTestSeller(t, pool, "Maya", "maya@example.com")
	customer := createTestCustomer(t, pool, seller.ID, "Mrs. Alvarez", "")
	thinMints := cookieTypeByName(t, pool, seller.ID, "Thin Mints")

	orderSvc := core.NewOrderService(pool)
	order, err := orderSvc.CreateOrder(ctx, seller.ID, core.OrderInput{
		CustomerID: customer.ID,
		Items:      []core.OrderItemInput{{CookieTypeID: thinMints.ID, Quantity: 5}},
		Donation:   decimal.RequireFromString("2.00"),
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// Force a failure after the delete step has already run inside the
	// transaction: the second line cannot be priced.
	_, err = orderSvc.ReplaceOrderItems(ctx, seller.ID, order.ID, core.OrderInput{
		Items: []core.OrderItemInput{
			{CookieTypeID: thinMints.ID, Quantity: 1},
			{CookieTypeID: 999999, Quantity: 1},
		},
	})
	if err == nil {
		t.Fatal("expected failure for unresolvable cookie type")
	}

	// The original order and its items must be fully intact.
	order, err = orderSvc.GetOrder(ctx, seller.ID, order.ID)
	if err != nil {
		t.Fatalf("GetOrder after failed replace: %v", err)
	}
	assertAmount(t, "total after rollback", "32.00", order.TotalAmount)
	if len(order.Items) != 1 || order.Items[0].Quantity != 5 {
		t.Errorf("expected original single item qty 5 after rollback, got %+v", order.Items)
	}
}

func TestOrderService_MarkPaidRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seller := signupTestSeller(t, pool, "Maya", "maya@example.com")
	customer := createTestCustomer(t, pool, seller.ID, "Mrs. Alvarez", "")
	thinMints := cookieTypeByName(t, pool, seller.ID, "Thin Mints")

	orderSvc := core.NewOrderService(pool)
	order, err := orderSvc.CreateOrder(ctx, seller.ID, core.OrderInput{
		CustomerID: customer.ID,
		Items:      []core.OrderItemInput{{CookieTypeID: thinMints.ID, Quantity: 5}},
		Donation:   decimal.RequireFromString("2.00"),
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	paid, err := orderSvc.MarkPaid(ctx, seller.ID, order.ID, true)
	if err != nil {
		t.Fatalf("MarkPaid(true) failed: %v", err)
	}
	if !paid.IsPaid || paid.PaidAt == nil {
		t.Error("paid order must have is_paid and paid_at set")
	}
	assertAmount(t, "amount paid", "32.00", paid.AmountPaid)

	// Re-applying the same state is a no-op.
	again, err := orderSvc.MarkPaid(ctx, seller.ID, order.ID, true)
	if err != nil {
		t.Fatalf("idempotent MarkPaid(true) failed: %v", err)
	}
	if again.PaidAt == nil || !again.PaidAt.Equal(*paid.PaidAt) {
		t.Error("re-applying paid must not move paid_at")
	}

	unpaid, err := orderSvc.MarkPaid(ctx, seller.ID, order.ID, false)
	if err != nil {
		t.Fatalf("MarkPaid(false) failed: %v", err)
	}
	if unpaid.IsPaid || unpaid.PaidAt != nil {
		t.Error("unpaid order must clear is_paid and paid_at")
	}
	assertAmount(t, "amount paid after unpay", "0.00", unpaid.AmountPaid)
}

func TestOrderService_MarkDeliveredIndependentOfPayment(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seller := signupTestSeller(t, pool, "Maya", "maya@example.com")
	customer := createTestCustomer(t, pool, seller.ID, "Mrs. Alvarez", "")
	thinMints := cookieTypeByName(t, pool, seller.ID, "Thin Mints")

	orderSvc := core.NewOrderService(pool)
	order, err := orderSvc.CreateOrder(ctx, seller.ID, core.OrderInput{
		CustomerID: customer.ID,
		Items:      []core.OrderItemInput{{CookieTypeID: thinMints.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	delivered, err := orderSvc.MarkDelivered(ctx, seller.ID, order.ID, true)
	if err != nil {
		t.Fatalf("MarkDelivered failed: %v", err)
	}
	if !delivered.IsDelivered {
		t.Error("expected is_delivered true")
	}
	if delivered.IsPaid {
		t.Error("delivery must not touch payment state")
	}
	assertAmount(t, "amount paid untouched", "0.00", delivered.AmountPaid)
}

func TestOrderService_DeleteOrderCascadesItems(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seller := signupTestSeller(t, pool, "Maya", "maya@example.com")
	customer := createTestCustomer(t, pool, seller.ID, "Mrs. Alvarez", "")
	thinMints := cookieTypeByName(t, pool, seller.ID, "Thin Mints")

	orderSvc := core.NewOrderService(pool)
	order, err := orderSvc.CreateOrder(ctx, seller.ID, core.OrderInput{
		CustomerID: customer.ID,
		Items:      []core.OrderItemInput{{CookieTypeID: thinMints.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if err := orderSvc.DeleteOrder(ctx, seller.ID, order.ID); err != nil {
		t.Fatalf("DeleteOrder failed: %v", err)
	}
	if n := countRows(t, pool, "SELECT COUNT(*) FROM order_items WHERE order_id = $1", order.ID); n != 0 {
		t.Errorf("expected items cascade-deleted, found %d", n)
	}
	if _, err := orderSvc.GetOrder(ctx, seller.ID, order.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestOrderService_GetOrdersNewestFirst(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seller := signupTestSeller(t, pool, "Maya", "maya@example.com")
	customer := createTestCustomer(t, pool, seller.ID, "Mrs. Alvarez", "")
	thinMints := cookieTypeByName(t, pool, seller.ID, "Thin Mints")

	orderSvc := core.NewOrderService(pool)
	first, _ := orderSvc.CreateOrder(ctx, seller.ID, core.OrderInput{
		CustomerID: customer.ID,
		Items:      []core.OrderItemInput{{CookieTypeID: thinMints.ID, Quantity: 1}},
	})
	second, err := orderSvc.CreateOrder(ctx, seller.ID, core.OrderInput{
		CustomerID: customer.ID,
		Items:      []core.OrderItemInput{{CookieTypeID: thinMints.ID, Quantity: 2}},
		Source:     core.SourceBooth,
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	orders, err := orderSvc.GetOrders(ctx, seller.ID)
	if err != nil {
		t.Fatalf("GetOrders failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != second.ID || orders[1].ID != first.ID {
		t.Error("expected newest order first")
	}
	for _, o := range orders {
		if len(o.Items) == 0 {
			t.Errorf("order %d: expected items populated in listing", o.ID)
		}
	}
}
