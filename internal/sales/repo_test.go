package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrementStockGuard(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, 10000, 15000, 3)

	ok, err := repo.DecrementStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementStock(ctx, product.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok, "decrement past remaining stock must not apply")

	fresh, err := repo.FindProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.StockQuantity)
}

func TestSalesBetweenBounds(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, 10000, 15000, 10)

	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{-48 * time.Hour, 0, 47 * time.Hour} {
		err := db.Exec(
			"INSERT INTO sales (product_id, quantity, sale_price_cents, total_amount_cents, profit_cents, sale_date) VALUES (?, ?, ?, ?, ?, ?)",
			product.ID, i+1, int64(15000), int64(15000*(i+1)), int64(5000*(i+1)), base.Add(offset),
		).Error
		require.NoError(t, err)
	}

	from := base.Add(-24 * time.Hour)
	to := base.Add(48 * time.Hour)
	entries, err := repo.SalesBetween(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.True(t, entries[0].SaleDate.Before(entries[1].SaleDate), "entries must be oldest first")
	for _, entry := range entries {
		assert.Equal(t, "Cotton Shirt", entry.DisplayName())
	}
}

func TestListSalesNewestFirstWithLimit(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, 10000, 15000, 10)

	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := db.Exec(
			"INSERT INTO sales (product_id, quantity, sale_price_cents, total_amount_cents, profit_cents, sale_date) VALUES (?, ?, ?, ?, ?, ?)",
			product.ID, 1, int64(15000), int64(15000), int64(5000), base.Add(time.Duration(i)*time.Hour),
		).Error
		require.NoError(t, err)
	}

	entries, err := repo.ListSales(ctx, ListFilters{Limit: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].SaleDate.After(entries[1].SaleDate), "listing must be newest first")
}
