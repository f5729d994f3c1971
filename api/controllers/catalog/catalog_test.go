package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogsvc "github.com/prakashthakuri/Happy-Hours/internal/catalog"
	"github.com/prakashthakuri/Happy-Hours/pkg/db/models"
	"github.com/prakashthakuri/Happy-Hours/pkg/enums"
	pkgerrors "github.com/prakashthakuri/Happy-Hours/pkg/errors"
	"github.com/prakashthakuri/Happy-Hours/pkg/pagination"
)

type stubCatalogService struct {
	item        *models.Item
	err         error
	lastFilters catalogsvc.ListFilters
	lastParams  pagination.Params
}

func (s *stubCatalogService) FindBySlug(ctx context.Context, slug string) (*models.Item, error) {
	return s.item, s.err
}

func (s *stubCatalogService) List(ctx context.Context, filters catalogsvc.ListFilters, params pagination.Params) (*catalogsvc.ListResult, error) {
	s.lastFilters = filters
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	return &catalogsvc.ListResult{Items: []catalogsvc.ItemDTO{}, Page: pagination.NewPage(params, 0)}, nil
}

func TestItemListParsesFiltersAndPage(t *testing.T) {
	svc := &stubCatalogService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items?category=Whiskey&type=staff_pick&page=3", nil)
	resp := httptest.NewRecorder()
	ItemList(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastFilters.Category == nil || *svc.lastFilters.Category != enums.ItemCategoryWhiskey {
		t.Fatalf("expected whiskey filter, got %v", svc.lastFilters.Category)
	}
	if svc.lastFilters.Type == nil || *svc.lastFilters.Type != enums.ItemTypeStaffPick {
		t.Fatalf("expected staff pick filter, got %v", svc.lastFilters.Type)
	}
	if svc.lastParams.Page != 3 || svc.lastParams.Limit != pagination.DefaultLimit {
		t.Fatalf("unexpected params %+v", svc.lastParams)
	}
}

func TestItemListRejectsUnknownType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items?type=cheap", nil)
	resp := httptest.NewRecorder()
	ItemList(&stubCatalogService{}, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestItemDetail(t *testing.T) {
	item := &models.Item{
		ID:       uuid.New(),
		Slug:     "old-forester",
		Title:    "Old Forester",
		Price:    decimal.RequireFromString("25"),
		Category: enums.ItemCategoryWhiskey,
		Label:    enums.ItemLabelPrimary,
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/old-forester", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", "old-forester")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	resp := httptest.NewRecorder()
	ItemDetail(&stubCatalogService{item: item}, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data catalogsvc.ItemDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Price != "25.00" {
		t.Fatalf("expected price 25.00 got %s", envelope.Data.Price)
	}
}

func TestItemDetailNotFound(t *testing.T) {
	svc := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "item not found")}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/missing", nil)
	resp := httptest.NewRecorder()
	ItemDetail(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
