package sales

import (
	"context"
	"time"

	"github.com/sricodings/balashop/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the sale ledger and the
// stock side of recording a sale.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindProduct(ctx context.Context, productID int64) (*models.Product, error)
	// DecrementStock subtracts qty from the product's stock only when enough
	// stock remains. It reports whether a row was updated.
	DecrementStock(ctx context.Context, productID int64, qty int) (bool, error)
	CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	ListSales(ctx context.Context, filters ListFilters) ([]LedgerEntry, error)
	SalesBetween(ctx context.Context, from, to time.Time) ([]LedgerEntry, error)
}

// Service coordinates the transactional sale flow.
type Service interface {
	RecordSale(ctx context.Context, input RecordSaleInput) (*RecordSaleResult, error)
	List(ctx context.Context, filters ListFilters) ([]LedgerEntry, error)
}
