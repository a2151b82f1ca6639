package models

// Tables lists every model for AutoMigrate-based setups (sqlite dev mode and
// package tests). Postgres schemas are managed by goose.
var Tables = []any{
	&Product{},
	&ProductImage{},
	&Sale{},
	&Setting{},
	&User{},
}
