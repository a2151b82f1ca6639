package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sricodings/balashop/pkg/db/models"
	pkgerrors "github.com/sricodings/balashop/pkg/errors"
	"gorm.io/gorm"
)

// Identity is the public projection of an authenticated user.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Service checks dashboard credentials. Passwords are compared as stored;
// there is no token issuance on this surface.
type Service interface {
	Login(ctx context.Context, username, password string) (*Identity, error)
}

type service struct {
	db *gorm.DB
}

// NewService builds an auth service over the shared DB handle.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{db: db}, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*Identity, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password required")
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if user.Password != password {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid credentials")
	}
	return &Identity{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}
