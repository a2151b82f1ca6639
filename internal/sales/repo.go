package sales

import (
	"context"
	"time"

	"github.com/sricodings/balashop/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sales repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindProduct(ctx context.Context, productID int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) DecrementStock(ctx context.Context, productID int64, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, qty).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *repository) ListSales(ctx context.Context, filters ListFilters) ([]LedgerEntry, error) {
	query := r.ledgerQuery(ctx)
	if filters.From != nil {
		query = query.Where("sales.sale_date >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("sales.sale_date < ?", *filters.To)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	var entries []LedgerEntry
	if err := query.Order("sales.sale_date DESC").Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) SalesBetween(ctx context.Context, from, to time.Time) ([]LedgerEntry, error) {
	var entries []LedgerEntry
	err := r.ledgerQuery(ctx).
		Where("sales.sale_date >= ? AND sales.sale_date < ?", from, to).
		Order("sales.sale_date ASC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ledgerQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("sales.id, sales.product_id, products.name AS product_name, sales.quantity, sales.sale_price_cents, sales.total_amount_cents, sales.profit_cents, sales.sale_date").
		Joins("LEFT JOIN products ON products.id = sales.product_id")
}
