package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cookie-ledger/internal/app"
	"cookie-ledger/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// stubService implements the handful of ApplicationService methods the
// handler tests exercise. The embedded interface is nil, so any call the
// test did not stub panics loudly.
type stubService struct {
	app.ApplicationService

	authenticateFn func(ctx context.Context, email, password string) (*app.SellerSession, error)
	signupFn       func(ctx context.Context, req app.SignupRequest) (*app.SellerSession, error)
	getSellerFn    func(ctx context.Context, sellerID int) (*app.SellerResult, error)
	getOrderFn     func(ctx context.Context, sellerID, orderID int) (*app.OrderResult, error)
	createOrderFn  func(ctx context.Context, sellerID int, req app.OrderRequest) (*app.OrderResult, error)
}

func (s *stubService) AuthenticateUser(ctx context.Context, email, password string) (*app.SellerSession, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubService) Signup(ctx context.Context, req app.SignupRequest) (*app.SellerSession, error) {
	return s.signupFn(ctx, req)
}

func (s *stubService) GetSeller(ctx context.Context, sellerID int) (*app.SellerResult, error) {
	return s.getSellerFn(ctx, sellerID)
}

func (s *stubService) GetOrder(ctx context.Context, sellerID, orderID int) (*app.OrderResult, error) {
	return s.getOrderFn(ctx, sellerID, orderID)
}

func (s *stubService) CreateOrder(ctx context.Context, sellerID int, req app.OrderRequest) (*app.OrderResult, error) {
	return s.createOrderFn(ctx, sellerID, req)
}

// loginAndGetCookie runs the login handler against the stub and returns the
// session cookie it set.
func loginAndGetCookie(t *testing.T, handler http.Handler) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"maya@example.com","password":"s3cret"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	t.Fatal("login did not set auth_token cookie")
	return nil
}

func newTestHandler(svc app.ApplicationService) http.Handler {
	return NewHandler(svc, "", testSecret)
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestIDMiddleware(t *testing.T) {
	handler := newTestHandler(&stubService{})

	// Absent ID gets a generated one.
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// A well-formed caller ID is echoed back.
	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	// A hostile one is replaced.
	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "bad id\nwith newline")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.NotEqual(t, "bad id\nwith newline", rec.Header().Get("X-Request-ID"))
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	handler := newTestHandler(&stubService{})

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/customers"},
		{http.MethodGet, "/api/inventory/levels"},
		{http.MethodGet, "/api/routes"},
		{http.MethodGet, "/api/auth/me"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestLoginAndMe(t *testing.T) {
	session := &app.SellerSession{SellerID: 7, Name: "Maya", Email: "maya@example.com"}
	svc := &stubService{
		authenticateFn: func(_ context.Context, email, password string) (*app.SellerSession, error) {
			if email != "maya@example.com" || password != "s3cret" {
				return nil, app.ErrInvalidCredentials
			}
			return session, nil
		},
		getSellerFn: func(_ context.Context, sellerID int) (*app.SellerResult, error) {
			require.Equal(t, 7, sellerID)
			return &app.SellerResult{ID: 7, Name: "Maya", Email: "maya@example.com"}, nil
		},
	}
	handler := newTestHandler(svc)

	cookie := loginAndGetCookie(t, handler)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"name":"Maya","email":"maya@example.com"}`, rec.Body.String())
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc := &stubService{
		authenticateFn: func(context.Context, string, string) (*app.SellerSession, error) {
			return nil, app.ErrInvalidCredentials
		},
	}
	handler := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"maya@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsTamperedToken(t *testing.T) {
	svc := &stubService{
		authenticateFn: func(context.Context, string, string) (*app.SellerSession, error) {
			return &app.SellerSession{SellerID: 7, Name: "Maya", Email: "maya@example.com"}, nil
		},
	}
	handler := newTestHandler(svc)

	cookie := loginAndGetCookie(t, handler)
	cookie.Value += "tampered"

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignupReturnsCreatedWithCookie(t *testing.T) {
	svc := &stubService{
		signupFn: func(_ context.Context, req app.SignupRequest) (*app.SellerSession, error) {
			require.Equal(t, "maya@example.com", req.Email)
			return &app.SellerSession{SellerID: 1, Name: req.Name, Email: req.Email}, nil
		},
	}
	handler := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"name":"Maya","email":"maya@example.com","password":"s3cret"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestSignupDuplicateEmailIs400(t *testing.T) {
	svc := &stubService{
		signupFn: func(context.Context, app.SignupRequest) (*app.SellerSession, error) {
			return nil, &core.ValidationError{Msg: "email already registered"}
		},
	}
	handler := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"name":"Maya","email":"maya@example.com","password":"s3cret"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestGetOrderErrorMapping(t *testing.T) {
	svc := &stubService{
		authenticateFn: func(context.Context, string, string) (*app.SellerSession, error) {
			return &app.SellerSession{SellerID: 7, Name: "Maya", Email: "maya@example.com"}, nil
		},
		getOrderFn: func(_ context.Context, _, orderID int) (*app.OrderResult, error) {
			return nil, core.ErrNotFound
		},
	}
	handler := newTestHandler(svc)
	cookie := loginAndGetCookie(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/42", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")

	// Non-numeric ids never reach the service.
	req = httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderPassesSellerScope(t *testing.T) {
	var gotSellerID int
	var gotReq app.OrderRequest
	svc := &stubService{
		authenticateFn: func(context.Context, string, string) (*app.SellerSession, error) {
			return &app.SellerSession{SellerID: 7, Name: "Maya", Email: "maya@example.com"}, nil
		},
		createOrderFn: func(_ context.Context, sellerID int, req app.OrderRequest) (*app.OrderResult, error) {
			gotSellerID = sellerID
			gotReq = req
			return &app.OrderResult{Order: app.OrderView{ID: 1, TotalAmount: 32}}, nil
		},
	}
	handler := newTestHandler(svc)
	cookie := loginAndGetCookie(t, handler)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(
		`{"customer_id":3,"donation":2.00,"items":[{"cookie_type_id":9,"quantity":5}]}`))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 7, gotSellerID, "seller scope must come from the session, not the body")
	require.Len(t, gotReq.Items, 1)
	assert.Equal(t, 9, gotReq.Items[0].CookieTypeID)
	assert.Equal(t, 5, gotReq.Items[0].Quantity)
	assert.InDelta(t, 2.00, gotReq.Donation, 1e-9)
}

func TestMalformedJSONIs400(t *testing.T) {
	svc := &stubService{
		authenticateFn: func(context.Context, string, string) (*app.SellerSession, error) {
			return &app.SellerSession{SellerID: 7, Name: "Maya", Email: "maya@example.com"}, nil
		},
	}
	handler := newTestHandler(svc)
	cookie := loginAndGetCookie(t, handler)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"customer_id":`))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestBodyLimit(t *testing.T) {
	svc := &stubService{
		authenticateFn: func(context.Context, string, string) (*app.SellerSession, error) {
			return &app.SellerSession{SellerID: 7, Name: "Maya", Email: "maya@example.com"}, nil
		},
	}
	handler := newTestHandler(svc)
	cookie := loginAndGetCookie(t, handler)

	huge := `{"notes":"` + strings.Repeat("x", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(huge))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
