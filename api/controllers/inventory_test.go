package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	invsvc "github.com/sricodings/balashop/internal/inventory"
	"github.com/sricodings/balashop/pkg/db/models"
	pkgerrors "github.com/sricodings/balashop/pkg/errors"
)

type stubInventoryService struct {
	product   *models.Product
	products  []models.Product
	err       error
	deletedID int64
	lastInput invsvc.ProductInput
}

func (s *stubInventoryService) Create(ctx context.Context, input invsvc.ProductInput) (*models.Product, error) {
	s.lastInput = input
	return s.product, s.err
}

func (s *stubInventoryService) Get(ctx context.Context, id int64) (*models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func (s *stubInventoryService) List(ctx context.Context) ([]models.Product, error) {
	return s.products, s.err
}

func (s *stubInventoryService) Search(ctx context.Context, query string) ([]models.Product, error) {
	return s.products, s.err
}

func (s *stubInventoryService) Update(ctx context.Context, id int64, input invsvc.ProductInput) (*models.Product, error) {
	s.lastInput = input
	return s.product, s.err
}

func (s *stubInventoryService) Delete(ctx context.Context, id int64) error {
	s.deletedID = id
	return s.err
}

func requestWithIDParam(method, target, id string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateProduct(t *testing.T) {
	stub := &stubInventoryService{product: &models.Product{ID: 7, Name: "Blue Shirt", PriceSellCents: 45000, StockQuantity: 10}}

	req := httptest.NewRequest(http.MethodPost, "/api/inventory", strings.NewReader(`{"name":"Blue Shirt","price_cost":300,"price_sell":450,"stock_quantity":10}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	CreateProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.lastInput.PriceSellCents != 45000 {
		t.Fatalf("expected sell price in cents 45000, got %d", stub.lastInput.PriceSellCents)
	}
	var view map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view["price_sell"] != float64(450) {
		t.Fatalf("expected price_sell 450, got %v", view["price_sell"])
	}
}

func TestCreateProductMissingName(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/inventory", strings.NewReader(`{"price_sell":450}`))
	req.Header.Set("Content-Type", "application/json")
	CreateProduct(&stubInventoryService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeMessage(t, rec); body["message"] != "Missing required fields" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestSearchProductsRequiresQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/inventory/search", nil)
	rec := httptest.NewRecorder()
	SearchProducts(&stubInventoryService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without q, got %d", rec.Code)
	}
	if body := decodeMessage(t, rec); body["message"] != "Query required" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestGetProductNotFound(t *testing.T) {
	stub := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")}

	req := requestWithIDParam(http.MethodGet, "/api/inventory/99", "99", "")
	rec := httptest.NewRecorder()
	GetProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetProductInvalidID(t *testing.T) {
	req := requestWithIDParam(http.MethodGet, "/api/inventory/abc", "abc", "")
	rec := httptest.NewRecorder()
	GetProduct(&stubInventoryService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestDeleteProduct(t *testing.T) {
	stub := &stubInventoryService{}

	req := requestWithIDParam(http.MethodDelete, "/api/inventory/4", "4", "")
	rec := httptest.NewRecorder()
	DeleteProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeMessage(t, rec); body["message"] != "Product deleted successfully" {
		t.Fatalf("unexpected message %q", body["message"])
	}
	if stub.deletedID != 4 {
		t.Fatalf("expected delete of id 4, got %d", stub.deletedID)
	}
}
