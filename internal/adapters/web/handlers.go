package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"cookie-ledger/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	// ── Public ────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Post("/api/auth/signup", h.signup)
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Protected (401 JSON if unauthenticated) ───────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Get("/api/auth/me", h.me)

		r.Get("/api/cookie-types", h.listCookieTypes)

		r.Get("/api/customers", h.listCustomers)
		r.Post("/api/customers", h.createCustomer)
		r.Put("/api/customers/{id}", h.updateCustomer)
		r.Delete("/api/customers/{id}", h.deleteCustomer)
		r.Get("/api/neighborhoods", h.listNeighborhoods)

		r.Get("/api/orders", h.listOrders)
		r.Post("/api/orders", h.createOrder)
		r.Get("/api/orders/{id}", h.getOrder)
		r.Put("/api/orders/{id}", h.updateOrder)
		r.Delete("/api/orders/{id}", h.deleteOrder)
		r.Patch("/api/orders/{id}/paid", h.setOrderPaid)
		r.Patch("/api/orders/{id}/delivered", h.setOrderDelivered)

		r.Get("/api/inventory/levels", h.stockLevels)
		r.Get("/api/inventory/transactions", h.listTransactions)
		r.Post("/api/inventory/transactions", h.recordReceipt)

		r.Get("/api/routes", h.listRouteLocations)
		r.Post("/api/routes", h.createRouteLocation)
		r.Patch("/api/routes/{id}/visited", h.setRouteVisited)
		r.Patch("/api/routes/{id}/status", h.setRouteStatus)
		r.Delete("/api/routes/{id}", h.deleteRouteLocation)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// sellerID returns the authenticated seller's id from the request context.
// Routes behind RequireAuth always have it.
func sellerID(r *http.Request) int {
	claims := authFromContext(r.Context())
	if claims == nil {
		return 0
	}
	return claims.SellerID
}

// urlID extracts and parses the numeric {id} URL parameter. Writes a 400
// response and returns false when the parameter is not a positive integer.
func urlID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, "invalid id", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into v; on failure it writes the
// error response and returns false. Returns HTTP 413 when the body exceeds
// the RequestBodyLimit; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
