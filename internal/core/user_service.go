package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// UserService manages seller accounts.
type UserService interface {
	// Signup creates a seller account and seeds its default cookie catalog
	// in the same transaction.
	Signup(ctx context.Context, name, email, password string) (*Seller, error)

	// GetByEmail finds a seller by email.
	GetByEmail(ctx context.Context, email string) (*Seller, error)

	// GetByID returns a seller by primary key.
	GetByID(ctx context.Context, sellerID int) (*Seller, error)
}

type userService struct {
	pool *pgxpool.Pool
}

// NewUserService constructs a UserService backed by PostgreSQL.
func NewUserService(pool *pgxpool.Pool) UserService {
	return &userService{pool: pool}
}

func (s *userService) Signup(ctx context.Context, name, email, password string) (*Seller, error) {
	if email == "" || password == "" {
		return nil, validationf("email and password are required")
	}

	var existing int
	err := s.pool.QueryRow(ctx, "SELECT id FROM sellers WHERE email = $1", email).Scan(&existing)
	if err == nil {
		return nil, validationf("account with email %s already exists", email)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	seller := &Seller{}
	err = tx.QueryRow(ctx, `
		INSERT INTO sellers (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at
	`, name, email, string(hash)).Scan(
		&seller.ID, &seller.Name, &seller.Email, &seller.PasswordHash, &seller.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create seller: %w", err)
	}

	// Seller and starting catalog land together or not at all.
	if err := seedCatalogTx(ctx, tx, seller.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit signup: %w", err)
	}
	return seller, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*Seller, error) {
	seller := &Seller{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM sellers
		WHERE email = $1
	`, email).Scan(&seller.ID, &seller.Name, &seller.Email, &seller.PasswordHash, &seller.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch seller %q: %w", email, err)
	}
	return seller, nil
}

func (s *userService) GetByID(ctx context.Context, sellerID int) (*Seller, error) {
	seller := &Seller{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM sellers
		WHERE id = $1
	`, sellerID).Scan(&seller.ID, &seller.Name, &seller.Email, &seller.PasswordHash, &seller.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch seller id=%d: %w", sellerID, err)
	}
	return seller, nil
}
