package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/prakashthakuri/Happy-Hours/api/middleware"
	cartsvc "github.com/prakashthakuri/Happy-Hours/internal/cart"
	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
)

type stubCartService struct {
	order    *models.Order
	err      error
	lastUser uuid.UUID
	lastSlug string
	lastOp   string
}

func (s *stubCartService) record(op string, userID uuid.UUID, slug string) (*models.Order, error) {
	s.lastOp, s.lastUser, s.lastSlug = op, userID, slug
	return s.order, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, userID uuid.UUID, slug string) (*models.Order, error) {
	return s.record("add", userID, slug)
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID uuid.UUID, slug string) (*models.Order, error) {
	return s.record("remove", userID, slug)
}

func (s *stubCartService) DecrementItem(ctx context.Context, userID uuid.UUID, slug string) (*models.Order, error) {
	return s.record("decrement", userID, slug)
}

func (s *stubCartService) GetOpenOrder(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	return s.record("get", userID, "")
}

func sampleOrder(userID uuid.UUID) *models.Order {
	itemID := uuid.New()
	return &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Items: []models.LineItem{{
			ID:       uuid.New(),
			ItemID:   itemID,
			Quantity: 2,
			Item: models.Item{
				ID:            itemID,
				Slug:          "old-forester",
				Title:         "Old Forester",
				Price:         decimal.RequireFromString("25.00"),
				DiscountPrice: decimal.NewNullDecimal(decimal.RequireFromString("20.00")),
			},
		}},
	}
}

func withSlug(r *http.Request, slug string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCartAddItemReturnsPricedOrder(t *testing.T) {
	userID := uuid.New()
	svc := &stubCartService{order: sampleOrder(userID)}
	handler := CartAddItem(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items/old-forester", nil)
	req = withSlug(req, " old-forester ")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastOp != "add" || svc.lastUser != userID || svc.lastSlug != "old-forester" {
		t.Fatalf("unexpected call %s %s %q", svc.lastOp, svc.lastUser, svc.lastSlug)
	}

	var envelope struct {
		Data cartsvc.OrderDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != "40.00" {
		t.Fatalf("expected total 40.00 got %s", envelope.Data.Total)
	}
	if envelope.Data.TotalSaved != "10.00" {
		t.Fatalf("expected saved 10.00 got %s", envelope.Data.TotalSaved)
	}
}

func TestCartRemoveItemNotInCart(t *testing.T) {
	userID := uuid.New()
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "This item was not in your cart")}
	handler := CartRemoveItem(svc, nil)

	req := withSlug(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/x", nil), "x")
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartSummaryWithoutOpenOrder(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNoActiveOrder, "no open order")}
	handler := CartSummary(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartDecrementMissingUserContext(t *testing.T) {
	handler := CartDecrementItem(&stubCartService{}, nil)
	req := withSlug(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items/x/decrement", nil), "x")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
