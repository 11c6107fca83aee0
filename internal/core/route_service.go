package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouteService manages the seller's door-to-door route locations.
type RouteService interface {
	// CreateLocation adds an address to the seller's route.
	CreateLocation(ctx context.Context, sellerID int, input RouteLocationInput) (*RouteLocation, error)

	// ListLocations returns the seller's route, grouped by neighborhood.
	ListLocations(ctx context.Context, sellerID int) ([]RouteLocation, error)

	// MarkVisited sets or clears the visited flag; visiting stamps
	// visited_at, unvisiting clears it.
	MarkVisited(ctx context.Context, sellerID, locationID int, visited bool) (*RouteLocation, error)

	// SetStatus records the outcome of a visit.
	SetStatus(ctx context.Context, sellerID, locationID int, status RouteStatus) (*RouteLocation, error)

	// DeleteLocation removes an address from the route.
	DeleteLocation(ctx context.Context, sellerID, locationID int) error
}

type routeService struct {
	pool *pgxpool.Pool
}

// NewRouteService constructs a RouteService backed by PostgreSQL.
func NewRouteService(pool *pgxpool.Pool) RouteService {
	return &routeService{pool: pool}
}

const routeColumns = `id, seller_id, address, neighborhood, visited, visited_at, status, customer_id, notes, created_at`

func scanRouteLocation(row pgx.Row, l *RouteLocation) error {
	return row.Scan(&l.ID, &l.SellerID, &l.Address, &l.Neighborhood, &l.Visited,
		&l.VisitedAt, &l.Status, &l.CustomerID, &l.Notes, &l.CreatedAt)
}

func (s *routeService) CreateLocation(ctx context.Context, sellerID int, input RouteLocationInput) (*RouteLocation, error) {
	if input.Address == "" {
		return nil, validationf("route location address is required")
	}
	if input.CustomerID != nil {
		if err := resolveCustomer(ctx, s.pool, sellerID, *input.CustomerID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, validationf("customer %d not found", *input.CustomerID)
			}
			return nil, err
		}
	}

	var l RouteLocation
	err := scanRouteLocation(s.pool.QueryRow(ctx, `
		INSERT INTO route_locations (seller_id, address, neighborhood, customer_id, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+routeColumns,
		sellerID, input.Address, toPtr(input.Neighborhood), input.CustomerID, toPtr(input.Notes),
	), &l)
	if err != nil {
		return nil, fmt.Errorf("failed to create route location: %w", err)
	}
	return &l, nil
}

func (s *routeService) ListLocations(ctx context.Context, sellerID int) ([]RouteLocation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+routeColumns+`
		FROM route_locations
		WHERE seller_id = $1
		ORDER BY neighborhood NULLS LAST, address
	`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query route locations: %w", err)
	}
	defer rows.Close()

	var locations []RouteLocation
	for rows.Next() {
		var l RouteLocation
		if err := scanRouteLocation(rows, &l); err != nil {
			return nil, fmt.Errorf("failed to scan route location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (s *routeService) MarkVisited(ctx context.Context, sellerID, locationID int, visited bool) (*RouteLocation, error) {
	var l RouteLocation
	err := scanRouteLocation(s.pool.QueryRow(ctx, `
		UPDATE route_locations
		SET visited    = $1,
		    visited_at = CASE WHEN $1 THEN NOW() ELSE NULL END
		WHERE id = $2 AND seller_id = $3
		RETURNING `+routeColumns,
		visited, locationID, sellerID,
	), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update route location %d: %w", locationID, err)
	}
	return &l, nil
}

func (s *routeService) SetStatus(ctx context.Context, sellerID, locationID int, status RouteStatus) (*RouteLocation, error) {
	switch status {
	case RouteNotVisited, RouteOrdered, RouteDeclined, RouteCallback:
	default:
		return nil, validationf("invalid route status %q", status)
	}

	var l RouteLocation
	err := scanRouteLocation(s.pool.QueryRow(ctx, `
		UPDATE route_locations
		SET status = $1
		WHERE id = $2 AND seller_id = $3
		RETURNING `+routeColumns,
		status, locationID, sellerID,
	), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update route location %d: %w", locationID, err)
	}
	return &l, nil
}

func (s *routeService) DeleteLocation(ctx context.Context, sellerID, locationID int) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM route_locations WHERE id = $1 AND seller_id = $2",
		locationID, sellerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete route location %d: %w", locationID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
