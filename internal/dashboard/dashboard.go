package dashboard

import (
	"context"
	"fmt"

	"github.com/sricodings/balashop/pkg/db/models"
	pkgerrors "github.com/sricodings/balashop/pkg/errors"
	"gorm.io/gorm"
)

// Stats aggregates the numbers shown on the dashboard landing page.
type Stats struct {
	TotalStock           int64           `json:"total_stock"`
	TotalRevenueCents    int64           `json:"-"`
	TotalProfitCents     int64           `json:"-"`
	LowStockAlerts       int64           `json:"low_stock_alerts"`
	RecentSales          []DailyRevenue  `json:"recent_sales"`
	CategoryDistribution []CategoryShare `json:"category_distribution"`
}

// DailyRevenue is one day's revenue for the trend chart.
type DailyRevenue struct {
	Date         string `gorm:"column:date" json:"date"`
	RevenueCents int64  `gorm:"column:revenue_cents" json:"-"`
}

// CategoryShare is the per-type product count for the distribution chart.
type CategoryShare struct {
	Type  string `gorm:"column:type" json:"type"`
	Count int64  `gorm:"column:count" json:"count"`
}

// Service computes dashboard aggregates.
type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	db                *gorm.DB
	lowStockThreshold int
	recentDays        int
}

// NewService builds a dashboard service over the shared DB handle.
func NewService(db *gorm.DB, lowStockThreshold int) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	if lowStockThreshold <= 0 {
		lowStockThreshold = 5
	}
	return &service{db: db, lowStockThreshold: lowStockThreshold, recentDays: 7}, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		RecentSales:          []DailyRevenue{},
		CategoryDistribution: []CategoryShare{},
	}

	var totalStock *int64
	err := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("SUM(stock_quantity)").
		Scan(&totalStock).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum stock")
	}
	if totalStock != nil {
		stats.TotalStock = *totalStock
	}

	var moneyRow struct {
		RevenueCents *int64 `gorm:"column:revenue_cents"`
		ProfitCents  *int64 `gorm:"column:profit_cents"`
	}
	err = s.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("SUM(total_amount_cents) AS revenue_cents, SUM(profit_cents) AS profit_cents").
		Scan(&moneyRow).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum sales")
	}
	if moneyRow.RevenueCents != nil {
		stats.TotalRevenueCents = *moneyRow.RevenueCents
	}
	if moneyRow.ProfitCents != nil {
		stats.TotalProfitCents = *moneyRow.ProfitCents
	}

	err = s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("stock_quantity < ?", s.lowStockThreshold).
		Count(&stats.LowStockAlerts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count low stock")
	}

	var recent []DailyRevenue
	err = s.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("DATE(sale_date) AS date, SUM(total_amount_cents) AS revenue_cents").
		Group("DATE(sale_date)").
		Order("date DESC").
		Limit(s.recentDays).
		Scan(&recent).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recent revenue")
	}
	// oldest first for the chart
	for i := len(recent) - 1; i >= 0; i-- {
		stats.RecentSales = append(stats.RecentSales, recent[i])
	}

	err = s.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Scan(&stats.CategoryDistribution).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "category distribution")
	}

	return stats, nil
}
