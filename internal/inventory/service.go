package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sricodings/balashop/pkg/db/models"
	pkgerrors "github.com/sricodings/balashop/pkg/errors"
	"gorm.io/gorm"
)

// LowStockThreshold marks products that need restocking in reports.
const LowStockThreshold = 5

// ProductInput carries the writable fields of a product. Prices arrive in
// cents from the API layer.
type ProductInput struct {
	Name           string
	Type           string
	Gender         string
	Size           string
	Color          string
	PriceCostCents int64
	PriceSellCents int64
	StockQuantity  int
	ImageURL       *string
	LocationInShop *string
	Description    *string
	ImageURLs      []string
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an inventory service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	var created *models.Product
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		product := &models.Product{
			Name:           strings.TrimSpace(input.Name),
			Type:           input.Type,
			Gender:         input.Gender,
			Size:           input.Size,
			Color:          input.Color,
			PriceCostCents: input.PriceCostCents,
			PriceSellCents: input.PriceSellCents,
			StockQuantity:  input.StockQuantity,
			ImageURL:       input.ImageURL,
			LocationInShop: input.LocationInShop,
			Description:    input.Description,
		}
		if _, err := repo.Create(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
		}
		if len(input.ImageURLs) > 0 {
			if err := repo.ReplaceImages(ctx, product.ID, input.ImageURLs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach images")
			}
		}
		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, created.ID)
}

func (s *service) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) Search(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}
	products, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	return products, nil
}

func (s *service) Update(ctx context.Context, id int64, input ProductInput) (*models.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Find(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		updates := map[string]any{
			"name":             strings.TrimSpace(input.Name),
			"type":             input.Type,
			"gender":           input.Gender,
			"size":             input.Size,
			"color":            input.Color,
			"price_cost_cents": input.PriceCostCents,
			"price_sell_cents": input.PriceSellCents,
			"stock_quantity":   input.StockQuantity,
			"location_in_shop": input.LocationInShop,
			"description":      input.Description,
		}
		// Keep the existing main image unless a new one is supplied.
		if input.ImageURL != nil {
			updates["image_url"] = input.ImageURL
		}
		if err := repo.Update(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
		}
		if input.ImageURLs != nil {
			if err := repo.ReplaceImages(ctx, id, input.ImageURLs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace images")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the product and its images. Sale history is intentionally
// left behind.
func (s *service) Delete(ctx context.Context, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		deleted, err := repo.Delete(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
		}
		if !deleted {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil
	})
}

func validateInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.PriceCostCents < 0 || input.PriceSellCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "prices must not be negative")
	}
	if input.StockQuantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	return nil
}
