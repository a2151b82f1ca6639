package settings

import (
	"context"

	"github.com/sricodings/balashop/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a settings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindAll(ctx context.Context) ([]models.Setting, error) {
	var rows []models.Setting
	err := r.db.WithContext(ctx).
		Order("key_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Find(ctx context.Context, key string) (*models.Setting, error) {
	var row models.Setting
	err := r.db.WithContext(ctx).
		Where("key_name = ?", key).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) Upsert(ctx context.Context, key, value string) error {
	row := models.Setting{KeyName: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}
