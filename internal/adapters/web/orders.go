package web

import (
	"net/http"

	"cookie-ledger/internal/app"
)

// orderBody is the JSON request shape shared by create and update.
type orderBody struct {
	CustomerID    int     `json:"customer_id"`
	Donation      float64 `json:"donation"`
	Source        string  `json:"source"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
	Items         []struct {
		CookieTypeID int `json:"cookie_type_id"`
		Quantity     int `json:"quantity"`
	} `json:"items"`
}

func (b orderBody) toRequest() app.OrderRequest {
	items := make([]app.OrderItemRequest, len(b.Items))
	for i, it := range b.Items {
		items[i] = app.OrderItemRequest{CookieTypeID: it.CookieTypeID, Quantity: it.Quantity}
	}
	return app.OrderRequest{
		CustomerID:    b.CustomerID,
		Items:         items,
		Donation:      b.Donation,
		Source:        b.Source,
		PaymentMethod: b.PaymentMethod,
		Notes:         b.Notes,
	}
}

// listOrders handles GET /api/orders.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListOrders(r.Context(), sellerID(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// getOrder handles GET /api/orders/{id}.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	result, err := h.svc.GetOrder(r.Context(), sellerID(r), id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createOrder handles POST /api/orders.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var body orderBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateOrder(r.Context(), sellerID(r), body.toRequest())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

// updateOrder handles PUT /api/orders/{id} — replaces the item list
// wholesale and reprices the order.
func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var body orderBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateOrder(r.Context(), sellerID(r), id, body.toRequest())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// setOrderPaid handles PATCH /api/orders/{id}/paid.
func (h *Handler) setOrderPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var body struct {
		Paid bool `json:"paid"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.SetOrderPaid(r.Context(), sellerID(r), id, body.Paid)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// setOrderDelivered handles PATCH /api/orders/{id}/delivered.
func (h *Handler) setOrderDelivered(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	var body struct {
		Delivered bool `json:"delivered"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.SetOrderDelivered(r.Context(), sellerID(r), id, body.Delivered)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// deleteOrder handles DELETE /api/orders/{id}.
func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteOrder(r.Context(), sellerID(r), id); err != nil {
		serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
