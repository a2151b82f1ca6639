package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sricodings/balashop/pkg/db/models"
	pkgerrors "github.com/sricodings/balashop/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	dsn := "file:auth_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&models.User{Username: "owner", Password: "letmein", Role: "admin"}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	identity, err := svc.Login(context.Background(), "owner", "letmein")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if identity.Username != "owner" || identity.Role != "admin" {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	for _, tc := range []struct{ username, password string }{
		{"owner", "wrong"},
		{"nobody", "letmein"},
	} {
		_, err := svc.Login(ctx, tc.username, tc.password)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized for %+v, got %v", tc, err)
		}
	}

	_, err := svc.Login(ctx, " ", "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
