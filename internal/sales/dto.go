package sales

import (
	"time"

	"github.com/sricodings/balashop/pkg/db/models"
)

// RecordSaleInput carries a trusted sale request. SalePriceCents is taken as
// given so the counter can apply discounts at the till.
type RecordSaleInput struct {
	ProductID      int64
	Quantity       int
	SalePriceCents int64
}

// RecordSaleResult is the outcome of a recorded sale.
type RecordSaleResult struct {
	Sale        *models.Sale
	ProfitCents int64
}

// ListFilters narrows the ledger listing.
type ListFilters struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// LedgerEntry is a sale row joined with the product's current name. Deleted
// products leave ProductName nil.
type LedgerEntry struct {
	ID               int64     `gorm:"column:id"`
	ProductID        int64     `gorm:"column:product_id"`
	ProductName      *string   `gorm:"column:product_name"`
	Quantity         int       `gorm:"column:quantity"`
	SalePriceCents   int64     `gorm:"column:sale_price_cents"`
	TotalAmountCents int64     `gorm:"column:total_amount_cents"`
	ProfitCents      int64     `gorm:"column:profit_cents"`
	SaleDate         time.Time `gorm:"column:sale_date"`
}

// DisplayName renders the joined product name, falling back for orphans.
func (e LedgerEntry) DisplayName() string {
	if e.ProductName == nil || *e.ProductName == "" {
		return "Unknown"
	}
	return *e.ProductName
}
