package core_test

import (
	"context"
	"os"
	"testing"

	"cookie-ledger/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE order_items, orders, inventory_transactions, route_locations,
		               customers, cookie_types, sellers CASCADE;
	`)
	if err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}

	return pool
}

// signupTestSeller creates a seller through the real signup path, which also
// seeds the default catalog.
func signupTestSeller(t *testing.T, pool *pgxpool.Pool, name, email string) *core.Seller {
	t.Helper()
	seller, err := core.NewUserService(pool).Signup(context.Background(), name, email, "hunter22")
	if err != nil {
		t.Fatalf("Signup failed for %s: %v", email, err)
	}
	return seller
}

func cookieTypeByName(t *testing.T, pool *pgxpool.Pool, sellerID int, name string) core.CookieType {
	t.Helper()
	var ct core.CookieType
	err := pool.QueryRow(context.Background(),
		"SELECT id, seller_id, name, price FROM cookie_types WHERE seller_id = $1 AND name = $2",
		sellerID, name,
	).Scan(&ct.ID, &ct.SellerID, &ct.Name, &ct.Price)
	if err != nil {
		t.Fatalf("cookie type %q not found for seller %d: %v", name, sellerID, err)
	}
	return ct
}

func createTestCustomer(t *testing.T, pool *pgxpool.Pool, sellerID int, name, neighborhood string) *core.Customer {
	t.Helper()
	c, err := core.NewCustomerService(pool).CreateCustomer(context.Background(), sellerID, core.CustomerInput{
		Name:         name,
		Neighborhood: neighborhood,
	})
	if err != nil {
		t.Fatalf("CreateCustomer %q failed: %v", name, err)
	}
	return c
}

func countRows(t *testing.T, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}

func assertAmount(t *testing.T, label, want string, got decimal.Decimal) {
	t.Helper()
	if got.StringFixed(2) != want {
		t.Errorf("%s: expected %s, got %s", label, want, got.StringFixed(2))
	}
}
