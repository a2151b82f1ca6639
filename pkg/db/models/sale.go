package models

import "time"

// Sale is an append-only ledger row. ProductID is indexed but carries no
// foreign-key constraint: deleting a product keeps its sales history, which
// reports render with an "Unknown" product name.
type Sale struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID        int64     `gorm:"column:product_id;not null;index"`
	Quantity         int       `gorm:"column:quantity;not null"`
	SalePriceCents   int64     `gorm:"column:sale_price_cents;not null"`
	TotalAmountCents int64     `gorm:"column:total_amount_cents;not null"`
	ProfitCents      int64     `gorm:"column:profit_cents;not null"`
	SaleDate         time.Time `gorm:"column:sale_date;not null;index;autoCreateTime"`
}
