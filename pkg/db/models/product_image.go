package models

import "time"

// ProductImage stores additional image references for a product. Rows are
// owned by the product and removed with it.
type ProductImage struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64     `gorm:"column:product_id;not null;index"`
	ImageURL  string    `gorm:"column:image_url;not null"`
	Position  int       `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
