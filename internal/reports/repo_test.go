package reports

import (
	"context"
	"testing"

	"github.com/sricodings/balashop/pkg/db/models"
)

func TestStockAscendingOrdersByStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	for _, p := range []models.Product{
		{Name: "Hoodie", StockQuantity: 40, PriceCostCents: 2000},
		{Name: "Cap", StockQuantity: 1, PriceCostCents: 500},
		{Name: "Scarf", StockQuantity: 7, PriceCostCents: 900},
	} {
		row := p
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	repo := NewRepository(db)
	products, err := repo.StockAscending(context.Background())
	if err != nil {
		t.Fatalf("stock ascending: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected all products, got %d", len(products))
	}
	for i := 1; i < len(products); i++ {
		if products[i].StockQuantity < products[i-1].StockQuantity {
			t.Fatalf("products out of order at %d: %d before %d", i, products[i-1].StockQuantity, products[i].StockQuantity)
		}
	}
	if products[0].Name != "Cap" {
		t.Fatalf("lowest stock first, got %q", products[0].Name)
	}
}
