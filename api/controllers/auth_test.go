package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authsvc "github.com/sricodings/balashop/internal/auth"
	pkgerrors "github.com/sricodings/balashop/pkg/errors"
)

type stubAuthService struct {
	identity *authsvc.Identity
	err      error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*authsvc.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func postLogin(t *testing.T, svc authsvc.Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	Login(svc, testLogger()).ServeHTTP(rec, req)
	return rec
}

func TestLoginSuccess(t *testing.T) {
	stub := &stubAuthService{identity: &authsvc.Identity{ID: 1, Username: "admin", Role: "admin"}}

	rec := postLogin(t, stub, `{"username":"admin","password":"secret"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeMessage(t, rec)
	if body["message"] != "Login successful" {
		t.Fatalf("unexpected message %q", body["message"])
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["username"] != "admin" {
		t.Fatalf("unexpected user payload %v", body["user"])
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	stub := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid credentials")}

	rec := postLogin(t, stub, `{"username":"admin","password":"wrong"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := decodeMessage(t, rec); body["message"] != "Invalid credentials" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestLoginMissingFields(t *testing.T) {
	rec := postLogin(t, &stubAuthService{}, `{"username":"admin"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeMessage(t, rec); body["message"] != "Missing required fields" {
		t.Fatalf("unexpected message %q", body["message"])
	}
}
