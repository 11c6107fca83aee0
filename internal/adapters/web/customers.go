package web

import (
	"net/http"

	"cookie-ledger/internal/app"
)

type customerBody struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	Notes        string `json:"notes"`
}

func (b customerBody) toRequest() app.CustomerRequest {
	return app.CustomerRequest{
		Name:         b.Name,
		Phone:        b.Phone,
		Email:        b.Email,
		Address:      b.Address,
		Neighborhood: b.Neighborhood,
		Notes:        b.Notes,
	}
}

// listCookieTypes handles GET /api/cookie-types.
func (h *Handler) listCookieTypes(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCookieTypes(r.Context(), sellerID(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listCustomers handles GET /api/customers.
func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListCustomers(r.Context(), sellerID(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createCustomer handles POST /api/customers.
func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var body customerBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateCustomer(r.Context(), sellerID(r), body.toRequest())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

// updateCustomer handles PUT /api/customers/{id}.
func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var body customerBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateCustomer(r.Context(), sellerID(r), id, body.toRequest())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// deleteCustomer handles DELETE /api/customers/{id}. The customer's
// orders go with them.
func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteCustomer(r.Context(), sellerID(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listNeighborhoods handles GET /api/neighborhoods.
func (h *Handler) listNeighborhoods(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListNeighborhoods(r.Context(), sellerID(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
