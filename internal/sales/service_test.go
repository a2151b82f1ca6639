package sales

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sricodings/balashop/pkg/db/models"
	pkgerrors "github.com/sricodings/balashop/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:sales_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductImage{}, &models.Sale{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), testTxRunner{db: db}, nil)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func seedProduct(t *testing.T, db *gorm.DB, costCents, sellCents int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:           "Cotton Shirt",
		Type:           "shirt",
		PriceCostCents: costCents,
		PriceSellCents: sellCents,
		StockQuantity:  stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestRecordSaleComputesProfitAndDecrementsStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	product := seedProduct(t, db, 5000, 8000, 10)

	result, err := svc.RecordSale(ctx, RecordSaleInput{
		ProductID:      product.ID,
		Quantity:       3,
		SalePriceCents: 8000,
	})
	if err != nil {
		t.Fatalf("record sale: %v", err)
	}
	if result.ProfitCents != 9000 {
		t.Fatalf("expected profit 9000, got %d", result.ProfitCents)
	}
	if result.Sale.TotalAmountCents != 24000 {
		t.Fatalf("expected total 24000, got %d", result.Sale.TotalAmountCents)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.StockQuantity != 7 {
		t.Fatalf("expected stock 7, got %d", reloaded.StockQuantity)
	}

	var count int64
	if err := db.Model(&models.Sale{}).Count(&count).Error; err != nil {
		t.Fatalf("count sales: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one ledger row, got %d", count)
	}
}

func TestRecordSaleInsufficientStockLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	product := seedProduct(t, db, 5000, 8000, 2)

	_, err := svc.RecordSale(ctx, RecordSaleInput{
		ProductID:      product.ID,
		Quantity:       5,
		SalePriceCents: 8000,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.StockQuantity != 2 {
		t.Fatalf("stock must be unchanged, got %d", reloaded.StockQuantity)
	}
	var count int64
	if err := db.Model(&models.Sale{}).Count(&count).Error; err != nil {
		t.Fatalf("count sales: %v", err)
	}
	if count != 0 {
		t.Fatalf("no ledger row should exist, got %d", count)
	}
}

func TestRecordSaleLastUnitWinsOnce(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	product := seedProduct(t, db, 5000, 8000, 1)

	input := RecordSaleInput{ProductID: product.ID, Quantity: 1, SalePriceCents: 8000}
	if _, err := svc.RecordSale(ctx, input); err != nil {
		t.Fatalf("first sale of last unit: %v", err)
	}
	_, err := svc.RecordSale(ctx, input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock on second sale, got %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.StockQuantity != 0 {
		t.Fatalf("expected stock 0, got %d", reloaded.StockQuantity)
	}
	var count int64
	if err := db.Model(&models.Sale{}).Count(&count).Error; err != nil {
		t.Fatalf("count sales: %v", err)
	}
	if count != 1 {
		t.Fatalf("exactly one sale should exist, got %d", count)
	}
}

func TestRecordSaleConcurrentCallersWinLastUnitOnce(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	// sqlite allows a single writer at a time.
	sqlDB.SetMaxOpenConns(1)

	svc := newTestService(t, db)
	product := seedProduct(t, db, 5000, 8000, 1)

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RecordSale(context.Background(), RecordSaleInput{
				ProductID:      product.ID,
				Quantity:       1,
				SalePriceCents: 8000,
			})
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
			t.Fatalf("losing caller must see insufficient stock, got %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("the last unit must sell exactly once, got %d winners", won)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.StockQuantity != 0 {
		t.Fatalf("stock must end at zero, got %d", reloaded.StockQuantity)
	}
	var count int64
	if err := db.Model(&models.Sale{}).Count(&count).Error; err != nil {
		t.Fatalf("count sales: %v", err)
	}
	if count != 1 {
		t.Fatalf("exactly one ledger row should exist, got %d", count)
	}
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.RecordSale(context.Background(), RecordSaleInput{
		ProductID:      9999,
		Quantity:       1,
		SalePriceCents: 100,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRecordSaleValidatesInput(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	cases := []RecordSaleInput{
		{ProductID: 0, Quantity: 1, SalePriceCents: 100},
		{ProductID: 1, Quantity: 0, SalePriceCents: 100},
		{ProductID: 1, Quantity: -2, SalePriceCents: 100},
		{ProductID: 1, Quantity: 1, SalePriceCents: -100},
	}
	for _, input := range cases {
		_, err := svc.RecordSale(ctx, input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
}

func TestListJoinsProductNameAndMarksOrphans(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	kept := seedProduct(t, db, 1000, 2000, 5)
	doomed := seedProduct(t, db, 1000, 2000, 5)

	for _, id := range []int64{kept.ID, doomed.ID} {
		if _, err := svc.RecordSale(ctx, RecordSaleInput{ProductID: id, Quantity: 1, SalePriceCents: 2000}); err != nil {
			t.Fatalf("record sale: %v", err)
		}
	}
	if err := db.Delete(&models.Product{}, doomed.ID).Error; err != nil {
		t.Fatalf("delete product: %v", err)
	}

	entries, err := svc.List(ctx, ListFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected both ledger rows to survive, got %d", len(entries))
	}

	names := map[int64]string{}
	for _, entry := range entries {
		names[entry.ProductID] = entry.DisplayName()
	}
	if names[kept.ID] != "Cotton Shirt" {
		t.Fatalf("expected joined name, got %q", names[kept.ID])
	}
	if names[doomed.ID] != "Unknown" {
		t.Fatalf("orphaned sale should render Unknown, got %q", names[doomed.ID])
	}
}
