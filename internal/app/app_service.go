package app

import (
	"context"
	"errors"

	"cookie-ledger/internal/core"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by AuthenticateUser for a bad
// email/password pair. It deliberately does not distinguish the two.
var ErrInvalidCredentials = errors.New("invalid email or password")

type appService struct {
	userService     core.UserService
	catalogService  core.CatalogService
	customerService core.CustomerService
	orderService    core.OrderService
	invService      core.InventoryService
	routeService    core.RouteService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	userService core.UserService,
	catalogService core.CatalogService,
	customerService core.CustomerService,
	orderService core.OrderService,
	invService core.InventoryService,
	routeService core.RouteService,
) ApplicationService {
	return &appService{
		userService:     userService,
		catalogService:  catalogService,
		customerService: customerService,
		orderService:    orderService,
		invService:      invService,
		routeService:    routeService,
	}
}

// Signup registers a new seller and seeds their catalog.
func (s *appService) Signup(ctx context.Context, req SignupRequest) (*SellerSession, error) {
	seller, err := s.userService.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &SellerSession{SellerID: seller.ID, Name: seller.Name, Email: seller.Email}, nil
}

// AuthenticateUser verifies credentials against the stored bcrypt hash.
func (s *appService) AuthenticateUser(ctx context.Context, email, password string) (*SellerSession, error) {
	seller, err := s.userService.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &SellerSession{SellerID: seller.ID, Name: seller.Name, Email: seller.Email}, nil
}

// GetSeller returns the seller profile by ID.
func (s *appService) GetSeller(ctx context.Context, sellerID int) (*SellerResult, error) {
	seller, err := s.userService.GetByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return &SellerResult{ID: seller.ID, Name: seller.Name, Email: seller.Email}, nil
}

// ListCookieTypes returns the seller's active catalog.
func (s *appService) ListCookieTypes(ctx context.Context, sellerID int) (*CookieTypeListResult, error) {
	types, err := s.catalogService.ListActive(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	views := make([]CookieTypeView, len(types))
	for i, ct := range types {
		views[i] = CookieTypeView{
			ID:           ct.ID,
			Name:         ct.Name,
			Description:  ct.Description,
			Price:        ct.Price.InexactFloat64(),
			IsGlutenFree: ct.IsGlutenFree,
			IsPeanutFree: ct.IsPeanutFree,
			IsVegan:      ct.IsVegan,
			IsNew:        ct.IsNew,
		}
	}
	return &CookieTypeListResult{CookieTypes: views}, nil
}

// ListCustomers returns all of the seller's customers.
func (s *appService) ListCustomers(ctx context.Context, sellerID int) (*CustomerListResult, error) {
	customers, err := s.customerService.GetCustomers(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return &CustomerListResult{Customers: customers}, nil
}

func (s *appService) CreateCustomer(ctx context.Context, sellerID int, req CustomerRequest) (*CustomerResult, error) {
	customer, err := s.customerService.CreateCustomer(ctx, sellerID, customerInput(req))
	if err != nil {
		return nil, err
	}
	return &CustomerResult{Customer: customer}, nil
}

func (s *appService) UpdateCustomer(ctx context.Context, sellerID, customerID int, req CustomerRequest) (*CustomerResult, error) {
	customer, err := s.customerService.UpdateCustomer(ctx, sellerID, customerID, customerInput(req))
	if err != nil {
		return nil, err
	}
	return &CustomerResult{Customer: customer}, nil
}

func (s *appService) DeleteCustomer(ctx context.Context, sellerID, customerID int) error {
	return s.customerService.DeleteCustomer(ctx, sellerID, customerID)
}

func (s *appService) ListNeighborhoods(ctx context.Context, sellerID int) (*NeighborhoodsResult, error) {
	neighborhoods, err := s.customerService.Neighborhoods(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return &NeighborhoodsResult{Neighborhoods: neighborhoods}, nil
}

// ListOrders returns the seller's orders, newest first.
func (s *appService) ListOrders(ctx context.Context, sellerID int) (*OrderListResult, error) {
	orders, err := s.orderService.GetOrders(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	views := make([]OrderView, len(orders))
	for i := range orders {
		views[i] = orderView(&orders[i])
	}
	return &OrderListResult{Orders: views}, nil
}

func (s *appService) GetOrder(ctx context.Context, sellerID, orderID int) (*OrderResult, error) {
	order, err := s.orderService.GetOrder(ctx, sellerID, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: orderView(order)}, nil
}

// CreateOrder prices and records a new order in one transaction.
func (s *appService) CreateOrder(ctx context.Context, sellerID int, req OrderRequest) (*OrderResult, error) {
	order, err := s.orderService.CreateOrder(ctx, sellerID, orderInput(req))
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: orderView(order)}, nil
}

// UpdateOrder replaces an order's items and reprices it.
func (s *appService) UpdateOrder(ctx context.Context, sellerID, orderID int, req OrderRequest) (*OrderResult, error) {
	order, err := s.orderService.ReplaceOrderItems(ctx, sellerID, orderID, orderInput(req))
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: orderView(order)}, nil
}

func (s *appService) SetOrderPaid(ctx context.Context, sellerID, orderID int, paid bool) (*OrderResult, error) {
	order, err := s.orderService.MarkPaid(ctx, sellerID, orderID, paid)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: orderView(order)}, nil
}

func (s *appService) SetOrderDelivered(ctx context.Context, sellerID, orderID int, delivered bool) (*OrderResult, error) {
	order, err := s.orderService.MarkDelivered(ctx, sellerID, orderID, delivered)
	if err != nil {
		return nil, err
	}
	return &OrderResult{Order: orderView(order)}, nil
}

func (s *appService) DeleteOrder(ctx context.Context, sellerID, orderID int) error {
	return s.orderService.DeleteOrder(ctx, sellerID, orderID)
}

func (s *appService) RecordInventoryReceipt(ctx context.Context, sellerID int, req ReceiptRequest) (*TransactionResult, error) {
	tx, err := s.invService.RecordReceipt(ctx, sellerID, req.CookieTypeID, req.Quantity, req.Notes)
	if err != nil {
		return nil, err
	}
	return &TransactionResult{Transaction: tx}, nil
}

func (s *appService) ListInventoryTransactions(ctx context.Context, sellerID int) (*TransactionListResult, error) {
	transactions, err := s.invService.ListTransactions(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return &TransactionListResult{Transactions: transactions}, nil
}

func (s *appService) GetStockLevels(ctx context.Context, sellerID int) (*StockResult, error) {
	levels, err := s.invService.ComputeLevels(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return &StockResult{Levels: levels}, nil
}

func (s *appService) ListRouteLocations(ctx context.Context, sellerID int) (*RouteListResult, error) {
	locations, err := s.routeService.ListLocations(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return &RouteListResult{Locations: locations}, nil
}

func (s *appService) CreateRouteLocation(ctx context.Context, sellerID int, req RouteLocationRequest) (*RouteLocationResult, error) {
	location, err := s.routeService.CreateLocation(ctx, sellerID, core.RouteLocationInput{
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		CustomerID:   req.CustomerID,
		Notes:        req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &RouteLocationResult{Location: location}, nil
}

func (s *appService) SetRouteVisited(ctx context.Context, sellerID, locationID int, visited bool) (*RouteLocationResult, error) {
	location, err := s.routeService.MarkVisited(ctx, sellerID, locationID, visited)
	if err != nil {
		return nil, err
	}
	return &RouteLocationResult{Location: location}, nil
}

func (s *appService) SetRouteStatus(ctx context.Context, sellerID, locationID int, status string) (*RouteLocationResult, error) {
	location, err := s.routeService.SetStatus(ctx, sellerID, locationID, core.RouteStatus(status))
	if err != nil {
		return nil, err
	}
	return &RouteLocationResult{Location: location}, nil
}

func (s *appService) DeleteRouteLocation(ctx context.Context, sellerID, locationID int) error {
	return s.routeService.DeleteLocation(ctx, sellerID, locationID)
}

func customerInput(req CustomerRequest) core.CustomerInput {
	return core.CustomerInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		Notes:        req.Notes,
	}
}

func orderInput(req OrderRequest) core.OrderInput {
	items := make([]core.OrderItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = core.OrderItemInput{CookieTypeID: it.CookieTypeID, Quantity: it.Quantity}
	}
	input := core.OrderInput{
		CustomerID: req.CustomerID,
		Items:      items,
		// JSON numbers arrive as float64; snap to cents before any math.
		Donation:   decimal.NewFromFloat(req.Donation).Round(2),
		Source:     core.OrderSource(req.Source),
		Notes:      req.Notes,
	}
	if req.PaymentMethod != "" {
		pm := core.PaymentMethod(req.PaymentMethod)
		input.PaymentMethod = &pm
	}
	return input
}

// orderView flattens a core order into the presentation shape, converting
// money from decimal to float64 at this boundary only.
func orderView(o *core.Order) OrderView {
	items := make([]OrderItemView, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemView{
			ID:             it.ID,
			CookieTypeID:   it.CookieTypeID,
			CookieTypeName: it.CookieTypeName,
			Quantity:       it.Quantity,
			PricePerBox:    it.PricePerBox.InexactFloat64(),
			Subtotal:       it.Subtotal.InexactFloat64(),
		}
	}
	view := OrderView{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		OrderDate:    o.OrderDate,
		TotalAmount:  o.TotalAmount.InexactFloat64(),
		Donation:     o.Donation.InexactFloat64(),
		IsPaid:       o.IsPaid,
		PaidAt:       o.PaidAt,
		AmountPaid:   o.AmountPaid.InexactFloat64(),
		IsDelivered:  o.IsDelivered,
		Source:       string(o.Source),
		Notes:        o.Notes,
		Items:        items,
		CreatedAt:    o.CreatedAt,
	}
	if o.PaymentMethod != nil {
		pm := string(*o.PaymentMethod)
		view.PaymentMethod = &pm
	}
	return view
}
