package web

import (
	"net/http"

	"cookie-ledger/internal/app"
)

// listRouteLocations handles GET /api/routes.
func (h *Handler) listRouteLocations(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListRouteLocations(r.Context(), sellerID(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createRouteLocation handles POST /api/routes.
func (h *Handler) createRouteLocation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Address      string `json:"address"`
		Neighborhood string `json:"neighborhood"`
		CustomerID   *int   `json:"customer_id"`
		Notes        string `json:"notes"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateRouteLocation(r.Context(), sellerID(r), app.RouteLocationRequest{
		Address:      body.Address,
		Neighborhood: body.Neighborhood,
		CustomerID:   body.CustomerID,
		Notes:        body.Notes,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

// setRouteVisited handles PATCH /api/routes/{id}/visited.
func (h *Handler) setRouteVisited(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var body struct {
		Visited bool `json:"visited"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.SetRouteVisited(r.Context(), sellerID(r), id, body.Visited)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// setRouteStatus handles PATCH /api/routes/{id}/status.
func (h *Handler) setRouteStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.SetRouteStatus(r.Context(), sellerID(r), id, body.Status)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// deleteRouteLocation handles DELETE /api/routes/{id}.
func (h *Handler) deleteRouteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteRouteLocation(r.Context(), sellerID(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
