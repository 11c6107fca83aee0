package core

import "time"

// RouteStatus is the outcome of a door-to-door visit.
type RouteStatus string

const (
	RouteNotVisited RouteStatus = "NOT_VISITED"
	RouteOrdered    RouteStatus = "ORDERED"
	RouteDeclined   RouteStatus = "DECLINED"
	RouteCallback   RouteStatus = "CALLBACK"
)

// RouteLocation is one address on a seller's walking route. It may be
// linked to a Customer once the household places an order.
type RouteLocation struct {
	ID           int         `json:"id"`
	SellerID     int         `json:"seller_id"`
	Address      string      `json:"address"`
	Neighborhood *string     `json:"neighborhood,omitempty"`
	Visited      bool        `json:"visited"`
	VisitedAt    *time.Time  `json:"visited_at,omitempty"`
	Status       RouteStatus `json:"status"`
	CustomerID   *int        `json:"customer_id,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// RouteLocationInput holds the fields accepted when creating a route location.
type RouteLocationInput struct {
	Address      string
	Neighborhood string
	CustomerID   *int
	Notes        string
}
