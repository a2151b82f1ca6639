package inventory

import (
	"context"
	"strconv"

	"github.com/sricodings/balashop/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) Find(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Order("id DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) Search(ctx context.Context, query string) ([]models.Product, error) {
	like := "%" + query + "%"
	tx := r.db.WithContext(ctx).
		Preload("Images").
		Where("name LIKE ? OR type LIKE ? OR color LIKE ?", like, like, like)
	// A purely numeric query also matches the product id.
	if id, err := strconv.ParseInt(query, 10, 64); err == nil {
		tx = tx.Or("id = ?", id)
	}
	var products []models.Product
	err := tx.Order("name ASC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ReplaceImages(ctx context.Context, productID int64, urls []string) error {
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	if len(urls) == 0 {
		return nil
	}
	images := make([]models.ProductImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, models.ProductImage{
			ProductID: productID,
			ImageURL:  url,
			Position:  i,
		})
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Select("Images").
		Delete(&models.Product{ID: id})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
