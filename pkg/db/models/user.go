package models

import "time"

// User is a dashboard login. Passwords are stored and compared as plaintext;
// the login surface is a boundary contract, not a security layer.
type User struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Username  string    `gorm:"column:username;not null;uniqueIndex"`
	Password  string    `gorm:"column:password;not null"`
	Role      string    `gorm:"column:role;not null;default:admin"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
