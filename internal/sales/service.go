package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/sricodings/balashop/pkg/db/models"
	pkgerrors "github.com/sricodings/balashop/pkg/errors"
	"github.com/sricodings/balashop/pkg/metrics"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo    Repository
	tx      txRunner
	metrics *metrics.SalesMetrics
}

// NewService builds a sales service with the required dependencies. Metrics
// may be nil.
func NewService(repo Repository, tx txRunner, m *metrics.SalesMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, metrics: m}, nil
}

// RecordSale decrements stock and appends a ledger row in one transaction.
// The decrement carries its own stock guard, so concurrent sales of the last
// unit cannot drive stock negative.
func (s *service) RecordSale(ctx context.Context, input RecordSaleInput) (*RecordSaleResult, error) {
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.SalePriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price must not be negative")
	}

	var result *RecordSaleResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		product, err := repo.FindProduct(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		updated, err := repo.DecrementStock(ctx, input.ProductID, input.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
		}
		if !updated {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "Insufficient stock")
		}

		qty := int64(input.Quantity)
		sale := &models.Sale{
			ProductID:        product.ID,
			Quantity:         input.Quantity,
			SalePriceCents:   input.SalePriceCents,
			TotalAmountCents: input.SalePriceCents * qty,
			ProfitCents:      (input.SalePriceCents - product.PriceCostCents) * qty,
		}
		if _, err := repo.CreateSale(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append sale")
		}
		result = &RecordSaleResult{Sale: sale, ProfitCents: sale.ProfitCents}
		return nil
	})
	if err != nil {
		s.countRejection(err)
		return nil, err
	}
	s.metrics.IncRecorded()
	return result, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]LedgerEntry, error) {
	entries, err := s.repo.ListSales(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return entries, nil
}

func (s *service) countRejection(err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		s.metrics.IncRejected("internal")
		return
	}
	switch typed.Code() {
	case pkgerrors.CodeInsufficientStock:
		s.metrics.IncRejected("insufficient_stock")
	case pkgerrors.CodeNotFound:
		s.metrics.IncRejected("product_not_found")
	case pkgerrors.CodeValidation:
		s.metrics.IncRejected("validation")
	default:
		s.metrics.IncRejected("internal")
	}
}
