package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// CatalogService provides read access to a seller's cookie catalog.
type CatalogService interface {
	// ListActive returns the seller's active cookie types, alphabetical by name.
	ListActive(ctx context.Context, sellerID int) ([]CookieType, error)

	// Resolve returns a cookie type by id, scoped to the seller.
	Resolve(ctx context.Context, sellerID, cookieTypeID int) (*CookieType, error)
}

type catalogService struct {
	pool *pgxpool.Pool
}

// NewCatalogService constructs a CatalogService backed by PostgreSQL.
func NewCatalogService(pool *pgxpool.Pool) CatalogService {
	return &catalogService{pool: pool}
}

const cookieTypeColumns = `id, seller_id, name, price, description, active,
       is_gluten_free, is_peanut_free, is_vegan, is_new, created_at`

func scanCookieType(row pgx.Row, ct *CookieType) error {
	return row.Scan(
		&ct.ID, &ct.SellerID, &ct.Name, &ct.Price, &ct.Description, &ct.Active,
		&ct.IsGlutenFree, &ct.IsPeanutFree, &ct.IsVegan, &ct.IsNew, &ct.CreatedAt,
	)
}

func (s *catalogService) ListActive(ctx context.Context, sellerID int) ([]CookieType, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+cookieTypeColumns+`
		FROM cookie_types
		WHERE seller_id = $1 AND active = true
		ORDER BY name
	`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cookie types: %w", err)
	}
	defer rows.Close()

	var types []CookieType
	for rows.Next() {
		var ct CookieType
		if err := scanCookieType(rows, &ct); err != nil {
			return nil, fmt.Errorf("failed to scan cookie type: %w", err)
		}
		types = append(types, ct)
	}
	return types, rows.Err()
}

func (s *catalogService) Resolve(ctx context.Context, sellerID, cookieTypeID int) (*CookieType, error) {
	var ct CookieType
	err := scanCookieType(s.pool.QueryRow(ctx, `
		SELECT `+cookieTypeColumns+`
		FROM cookie_types
		WHERE id = $1 AND seller_id = $2
	`, cookieTypeID, sellerID), &ct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch cookie type %d: %w", cookieTypeID, err)
	}
	return &ct, nil
}

// defaultCookieType is one entry of the catalog seeded at signup.
type defaultCookieType struct {
	name         string
	price        string
	description  string
	isGlutenFree bool
	isPeanutFree bool
	isVegan      bool
	isNew        bool
}

// defaultCatalog is the fixed starting catalog every new seller receives.
var defaultCatalog = []defaultCookieType{
	{"Thin Mints", "6.00", "Crispy chocolate wafers dipped in a mint chocolate coating", false, false, true, false},
	{"Samoas/Caramel deLites", "6.00", "Crispy cookies topped with caramel, coconut, and chocolate stripes", false, false, false, false},
	{"Tagalongs/Peanut Butter Patties", "6.00", "Crispy cookies layered with peanut butter and covered with a chocolaty coating", false, false, true, false},
	{"Do-si-dos/Peanut Butter Sandwich", "6.00", "Crisp and crunchy oatmeal cookies with creamy peanut butter filling", false, false, false, false},
	{"Trefoils/Shortbread", "6.00", "Iconic shortbread cookies inspired by the original Girl Scout recipe", false, false, false, false},
	{"Lemonades", "6.00", "Savory slices of shortbread with a refreshingly tangy lemon-flavored icing", false, false, true, false},
	{"Adventurefuls", "6.00", "Indulgent brownie-inspired cookies with a caramel flavored creme and a hint of sea salt", false, false, false, false},
	{"Exploremores (New)", "6.00", "Rocky road ice cream-inspired cookies filled with flavors of chocolate, marshmallow, and toasted almond creme", false, false, false, true},
	{"Caramel Chocolate Chip", "7.00", "Caramel, semi-sweet chocolate chips, and a hint of sea salt baked into a delicious cookie", true, true, true, false},
}

// seedCatalogTx inserts the default catalog for a new seller within the
// caller's transaction. One-time bootstrap: runs only at signup.
func seedCatalogTx(ctx context.Context, tx pgx.Tx, sellerID int) error {
	for _, c := range defaultCatalog {
		price, err := decimal.NewFromString(c.price)
		if err != nil {
			return fmt.Errorf("invalid seed price for %s: %w", c.name, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO cookie_types (seller_id, name, price, description, active,
			                          is_gluten_free, is_peanut_free, is_vegan, is_new)
			VALUES ($1, $2, $3, $4, true, $5, $6, $7, $8)
		`, sellerID, c.name, price, c.description, c.isGlutenFree, c.isPeanutFree, c.isVegan, c.isNew)
		if err != nil {
			return fmt.Errorf("failed to seed cookie type %s: %w", c.name, err)
		}
	}
	return nil
}
