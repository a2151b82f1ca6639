package reports

import (
	"context"

	"github.com/sricodings/balashop/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes the catalog read used by the stock report.
type Repository interface {
	StockAscending(ctx context.Context) ([]models.Product, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reports repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) StockAscending(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Order("stock_quantity ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
