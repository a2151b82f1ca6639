package models

import "time"

// Setting is one key/value pair of process-wide configuration. The store does
// not validate value shapes.
type Setting struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	KeyName   string    `gorm:"column:key_name;not null;uniqueIndex"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
