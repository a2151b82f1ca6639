package controllers

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sricodings/balashop/internal/dashboard"
	"github.com/sricodings/balashop/internal/sales"
	"github.com/sricodings/balashop/pkg/db/models"
	"github.com/sricodings/balashop/pkg/money"
)

// amount renders cents as a JSON number with two decimal places.
func amount(cents int64) float64 {
	return money.DecimalFromCents(cents).InexactFloat64()
}

func centsFromAmount(value float64) int64 {
	return money.CentsFromDecimal(decimal.NewFromFloat(value))
}

type productView struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Gender         string    `json:"gender"`
	Size           string    `json:"size"`
	Color          string    `json:"color"`
	PriceCost      float64   `json:"price_cost"`
	PriceSell      float64   `json:"price_sell"`
	StockQuantity  int       `json:"stock_quantity"`
	ImageURL       *string   `json:"image_url"`
	LocationInShop *string   `json:"location_in_shop"`
	Description    *string   `json:"description"`
	Images         []string  `json:"images"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toProductView(p *models.Product) productView {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.ImageURL)
	}
	return productView{
		ID:             p.ID,
		Name:           p.Name,
		Type:           p.Type,
		Gender:         p.Gender,
		Size:           p.Size,
		Color:          p.Color,
		PriceCost:      amount(p.PriceCostCents),
		PriceSell:      amount(p.PriceSellCents),
		StockQuantity:  p.StockQuantity,
		ImageURL:       p.ImageURL,
		LocationInShop: p.LocationInShop,
		Description:    p.Description,
		Images:         images,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toProductViews(products []models.Product) []productView {
	views := make([]productView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(&products[i]))
	}
	return views
}

type saleView struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	SalePrice   float64   `json:"sale_price"`
	TotalAmount float64   `json:"total_amount"`
	Profit      float64   `json:"profit"`
	SaleDate    time.Time `json:"sale_date"`
}

func toSaleViews(entries []sales.LedgerEntry) []saleView {
	views := make([]saleView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, saleView{
			ID:          entry.ID,
			ProductID:   entry.ProductID,
			ProductName: entry.DisplayName(),
			Quantity:    entry.Quantity,
			SalePrice:   amount(entry.SalePriceCents),
			TotalAmount: amount(entry.TotalAmountCents),
			Profit:      amount(entry.ProfitCents),
			SaleDate:    entry.SaleDate,
		})
	}
	return views
}

type statsView struct {
	TotalStock           int64                     `json:"total_stock"`
	TotalRevenue         float64                   `json:"total_revenue"`
	TotalProfit          float64                   `json:"total_profit"`
	LowStockAlerts       int64                     `json:"low_stock_alerts"`
	RecentSales          []recentRevenueView       `json:"recent_sales"`
	CategoryDistribution []dashboard.CategoryShare `json:"category_distribution"`
}

type recentRevenueView struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

func toStatsView(stats *dashboard.Stats) statsView {
	recent := make([]recentRevenueView, 0, len(stats.RecentSales))
	for _, day := range stats.RecentSales {
		recent = append(recent, recentRevenueView{Date: day.Date, Revenue: amount(day.RevenueCents)})
	}
	return statsView{
		TotalStock:           stats.TotalStock,
		TotalRevenue:         amount(stats.TotalRevenueCents),
		TotalProfit:          amount(stats.TotalProfitCents),
		LowStockAlerts:       stats.LowStockAlerts,
		RecentSales:          recent,
		CategoryDistribution: stats.CategoryDistribution,
	}
}
