package controllers

import (
	"net/http"

	"github.com/sricodings/balashop/api/responses"
	"github.com/sricodings/balashop/api/validators"
	salesvc "github.com/sricodings/balashop/internal/sales"
	"github.com/sricodings/balashop/pkg/logger"
)

type recordSaleRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	SalePrice float64 `json:"sale_price" validate:"required,gt=0"`
}

type recordSaleResponse struct {
	Message string  `json:"message"`
	Profit  float64 `json:"profit"`
}

// RecordSale handles POST /api/sales.
func RecordSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload recordSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RecordSale(r.Context(), salesvc.RecordSaleInput{
			ProductID:      payload.ProductID,
			Quantity:       payload.Quantity,
			SalePriceCents: centsFromAmount(payload.SalePrice),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, recordSaleResponse{
			Message: "Sale recorded successfully",
			Profit:  amount(result.ProfitCents),
		})
	}
}

// ListSales handles GET /api/sales.
func ListSales(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.List(r.Context(), salesvc.ListFilters{})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSaleViews(entries))
	}
}
