package settings

import (
	"context"

	"github.com/sricodings/balashop/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the key/value settings table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindAll(ctx context.Context) ([]models.Setting, error)
	Find(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, key, value string) error
}

// Service exposes settings reads and writes to controllers and the scheduler.
type Service interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Update(ctx context.Context, values map[string]string) error
	Snapshot(ctx context.Context) (*Snapshot, error)
	SeedDefaults(ctx context.Context) error
}
