package web

import (
	"net/http"

	"cookie-ledger/internal/app"
)

// stockLevels handles GET /api/inventory/levels.
func (h *Handler) stockLevels(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetStockLevels(r.Context(), sellerID(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listTransactions handles GET /api/inventory/transactions.
func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListInventoryTransactions(r.Context(), sellerID(r))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// recordReceipt handles POST /api/inventory/transactions — appends a
// RECEIVED entry to the ledger.
func (h *Handler) recordReceipt(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CookieTypeID int    `json:"cookie_type_id"`
		Quantity     int    `json:"quantity"`
		Notes        string `json:"notes"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.RecordInventoryReceipt(r.Context(), sellerID(r), app.ReceiptRequest{
		CookieTypeID: body.CookieTypeID,
		Quantity:     body.Quantity,
		Notes:        body.Notes,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}
