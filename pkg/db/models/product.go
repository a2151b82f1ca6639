package models

import "time"

// Product is a catalog item tracked by the shop. Prices are stored in cents;
// StockQuantity must never go negative (the sale path enforces this with a
// guarded decrement).
type Product struct {
	ID             int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name           string         `gorm:"column:name;not null;index"`
	Type           string         `gorm:"column:type"`
	Gender         string         `gorm:"column:gender"`
	Size           string         `gorm:"column:size"`
	Color          string         `gorm:"column:color"`
	PriceCostCents int64          `gorm:"column:price_cost_cents;not null"`
	PriceSellCents int64          `gorm:"column:price_sell_cents;not null"`
	StockQuantity  int            `gorm:"column:stock_quantity;not null;default:0"`
	ImageURL       *string        `gorm:"column:image_url"`
	LocationInShop *string        `gorm:"column:location_in_shop"`
	Description    *string        `gorm:"column:description"`
	Images         []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
