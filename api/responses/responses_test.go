package responses

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/sricodings/balashop/pkg/errors"
	"github.com/sricodings/balashop/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) MessagePayload {
	t.Helper()
	var payload MessagePayload
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return payload
}

func TestWriteMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteMessage(rec, http.StatusOK, "Settings updated successfully")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if got := decodeBody(t, rec); got.Message != "Settings updated successfully" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}

func TestWriteErrorTypedMessagePassthrough(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInsufficientStock, "Insufficient stock")
	WriteError(context.Background(), testLogger(), rec, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decodeBody(t, rec); got.Message != "Insufficient stock" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}

func TestWriteErrorInternalHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), rec, errors.New("pq: relation does not exist"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	got := decodeBody(t, rec)
	if got.Message != "internal server error" {
		t.Fatalf("raw error leaked to the client: %q", got.Message)
	}
}

func TestWriteErrorMailDispatchUsesPublicMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeMailDispatch, "smtp handshake rejected")
	WriteError(context.Background(), testLogger(), rec, err)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if got := decodeBody(t, rec); got.Message != "report dispatch failed" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}
