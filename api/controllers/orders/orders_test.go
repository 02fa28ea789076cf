package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stonefront-backend/api/middleware"
	checkoutsvc "github.com/angelmondragon/stonefront-backend/internal/checkout"
	internalorders "github.com/angelmondragon/stonefront-backend/internal/orders"
	"github.com/angelmondragon/stonefront-backend/internal/payments"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	"github.com/angelmondragon/stonefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
)

type stubCheckoutService struct {
	order *models.Order
	err   error
	input checkoutsvc.Input
}

func (s *stubCheckoutService) Execute(ctx context.Context, input checkoutsvc.Input) (*models.Order, error) {
	s.input = input
	return s.order, s.err
}

type stubOrdersService struct {
	list      []internalorders.OrderDTO
	detail    *internalorders.OrderDTO
	err       error
	lastUser  uint
	lastOrder uint
}

func (s *stubOrdersService) ListForUser(ctx context.Context, userID uint) ([]internalorders.OrderDTO, error) {
	s.lastUser = userID
	return s.list, s.err
}

func (s *stubOrdersService) GetForUser(ctx context.Context, userID, orderID uint) (*internalorders.OrderDTO, error) {
	s.lastUser, s.lastOrder = userID, orderID
	return s.detail, s.err
}

func (s *stubOrdersService) MarkPaid(ctx context.Context, orderID uint) error    { return nil }
func (s *stubOrdersService) MarkPending(ctx context.Context, orderID uint) error { return nil }

type stubPayments struct {
	orderID uint
	session *payments.SessionDTO
	err     error
}

func (s *stubPayments) CreateSession(ctx context.Context, orderID uint) (*payments.SessionDTO, error) {
	s.orderID = orderID
	return s.session, s.err
}

func TestCheckoutCreatesOrderForGuest(t *testing.T) {
	svc := &stubCheckoutService{order: &models.Order{
		ID:          11,
		OrderNumber: "ORD-1700000000000-4821",
		Status:      enums.OrderStatusPending,
		Items: []models.OrderItem{{
			ID: 1, ProductID: 7, ProductName: "Raj Green", VariationID: "101",
			Quantity: 2, UnitPrice: decimal.RequireFromString("30.60"), Subtotal: decimal.RequireFromString("61.20"),
		}},
	}}
	req := httptest.NewRequest(http.MethodPost, "/api/orders/checkout", strings.NewReader(`{"items":[{"product":7,"variation_id":101,"quantity":2,"price":1}]}`))
	req.Header.Set("X-Forwarded-For", "203.0.113.8")
	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.input.UserID != nil || svc.input.ClientIP != "203.0.113.8" || len(svc.input.Items) != 1 {
		t.Fatalf("unexpected checkout input %+v", svc.input)
	}
	var envelope struct {
		Data internalorders.OrderDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderNumber != "ORD-1700000000000-4821" || envelope.Data.Items[0].Subtotal != 61.2 {
		t.Fatalf("unexpected order %+v", envelope.Data)
	}
}

func TestCheckoutAttachesAuthenticatedUser(t *testing.T) {
	svc := &stubCheckoutService{order: &models.Order{ID: 2}}
	req := httptest.NewRequest(http.MethodPost, "/api/orders/checkout", strings.NewReader(`{"items":[]}`))
	req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{UserID: 31}))
	Checkout(svc, nil).ServeHTTP(httptest.NewRecorder(), req)
	if svc.input.UserID == nil || *svc.input.UserID != 31 {
		t.Fatalf("expected user 31 attached, got %v", svc.input.UserID)
	}
}

func TestCheckoutSurfacesStockConflict(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeInsufficientStock, "Not enough stock for product Raj Green. Requested: 3, Available: 1.").
		WithDetails(map[string]int{"requested": 3, "available": 1})}
	resp := httptest.NewRecorder()
	Checkout(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/orders/checkout", strings.NewReader(`{"items":[{"product":7}]}`)))
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"available":1`) {
		t.Fatalf("expected stock details, got %s", resp.Body.String())
	}
}

func TestStripeSessionParsesOrderID(t *testing.T) {
	svc := &stubPayments{session: &payments.SessionDTO{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}}
	resp := httptest.NewRecorder()
	StripeSession(svc, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/orders/stripe-session", strings.NewReader(`{"orderId":"15"}`)))
	if resp.Code != http.StatusOK || svc.orderID != 15 {
		t.Fatalf("expected session for order 15, got code=%d order=%d", resp.Code, svc.orderID)
	}
	if !strings.Contains(resp.Body.String(), `"id":"cs_test_1"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestListRequiresAuth(t *testing.T) {
	resp := httptest.NewRecorder()
	List(&stubOrdersService{}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestDetailForwardsOwnershipError(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "You are not the owner of this order.")}
	req := httptest.NewRequest(http.MethodGet, "/api/orders/8", nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("id", "8")
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rc)
	req = req.WithContext(middleware.WithIdentity(ctx, middleware.Identity{UserID: 4}))

	resp := httptest.NewRecorder()
	Detail(svc, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized || svc.lastOrder != 8 || svc.lastUser != 4 {
		t.Fatalf("unexpected result code=%d order=%d user=%d", resp.Code, svc.lastOrder, svc.lastUser)
	}
	if !strings.Contains(resp.Body.String(), "You are not the owner of this order.") {
		t.Fatalf("expected ownership message, got %s", resp.Body.String())
	}
}
