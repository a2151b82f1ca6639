package inventory

import (
	"context"

	"github.com/sricodings/balashop/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the product catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Find(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	ReplaceImages(ctx context.Context, productID int64, urls []string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// Service exposes catalog management to the API layer.
type Service interface {
	Create(ctx context.Context, input ProductInput) (*models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}
