package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sricodings/balashop/api/responses"
	"github.com/sricodings/balashop/api/validators"
	invsvc "github.com/sricodings/balashop/internal/inventory"
	pkgerrors "github.com/sricodings/balashop/pkg/errors"
	"github.com/sricodings/balashop/pkg/logger"
)

type productRequest struct {
	Name           string   `json:"name" validate:"required"`
	Type           string   `json:"type"`
	Gender         string   `json:"gender"`
	Size           string   `json:"size"`
	Color          string   `json:"color"`
	PriceCost      float64  `json:"price_cost" validate:"gte=0"`
	PriceSell      float64  `json:"price_sell" validate:"gte=0"`
	StockQuantity  int      `json:"stock_quantity" validate:"gte=0"`
	ImageURL       *string  `json:"image_url"`
	LocationInShop *string  `json:"location_in_shop"`
	Description    *string  `json:"description"`
	Images         []string `json:"images"`
}

func (p productRequest) toInput() invsvc.ProductInput {
	return invsvc.ProductInput{
		Name:           p.Name,
		Type:           p.Type,
		Gender:         p.Gender,
		Size:           p.Size,
		Color:          p.Color,
		PriceCostCents: centsFromAmount(p.PriceCost),
		PriceSellCents: centsFromAmount(p.PriceSell),
		StockQuantity:  p.StockQuantity,
		ImageURL:       p.ImageURL,
		LocationInShop: p.LocationInShop,
		Description:    p.Description,
		ImageURLs:      p.Images,
	}
}

func productIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	return id, nil
}

// ListProducts handles GET /api/inventory.
func ListProducts(svc invsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProductViews(products))
	}
}

// SearchProducts handles GET /api/inventory/search?q=...
func SearchProducts(svc invsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Query required"))
			return
		}
		products, err := svc.Search(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProductViews(products))
	}
}

// GetProduct handles GET /api/inventory/{id}.
func GetProduct(svc invsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProductView(product))
	}
}

// CreateProduct handles POST /api/inventory.
func CreateProduct(svc invsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toProductView(product))
	}
}

// UpdateProduct handles PUT /api/inventory/{id}.
func UpdateProduct(svc invsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProductView(product))
	}
}

// DeleteProduct handles DELETE /api/inventory/{id}.
func DeleteProduct(svc invsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Product deleted successfully")
	}
}
