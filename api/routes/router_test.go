package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authsvc "github.com/sricodings/balashop/internal/auth"
	dashsvc "github.com/sricodings/balashop/internal/dashboard"
	invsvc "github.com/sricodings/balashop/internal/inventory"
	"github.com/sricodings/balashop/internal/reports"
	salesvc "github.com/sricodings/balashop/internal/sales"
	settingsvc "github.com/sricodings/balashop/internal/settings"
	"github.com/sricodings/balashop/pkg/config"
	"github.com/sricodings/balashop/pkg/db/models"
	"github.com/sricodings/balashop/pkg/logger"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

type stubAuth struct{}

func (stubAuth) Login(ctx context.Context, username, password string) (*authsvc.Identity, error) {
	return &authsvc.Identity{ID: 1, Username: username, Role: "admin"}, nil
}

type stubInventory struct{}

func (stubInventory) Create(ctx context.Context, input invsvc.ProductInput) (*models.Product, error) {
	panic("unimplemented")
}

func (stubInventory) Get(ctx context.Context, id int64) (*models.Product, error) {
	panic("unimplemented")
}

func (stubInventory) List(ctx context.Context) ([]models.Product, error) {
	return nil, nil
}

func (stubInventory) Search(ctx context.Context, query string) ([]models.Product, error) {
	return nil, nil
}

func (stubInventory) Update(ctx context.Context, id int64, input invsvc.ProductInput) (*models.Product, error) {
	panic("unimplemented")
}

func (stubInventory) Delete(ctx context.Context, id int64) error {
	return nil
}

type stubSales struct{}

func (stubSales) RecordSale(ctx context.Context, input salesvc.RecordSaleInput) (*salesvc.RecordSaleResult, error) {
	return &salesvc.RecordSaleResult{ProfitCents: 100}, nil
}

func (stubSales) List(ctx context.Context, filters salesvc.ListFilters) ([]salesvc.LedgerEntry, error) {
	return nil, nil
}

type stubDashboard struct{}

func (stubDashboard) Stats(ctx context.Context) (*dashsvc.Stats, error) {
	return &dashsvc.Stats{}, nil
}

type stubSettings struct{}

func (stubSettings) GetAll(ctx context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

func (stubSettings) Update(ctx context.Context, values map[string]string) error {
	return nil
}

func (stubSettings) Snapshot(ctx context.Context) (*settingsvc.Snapshot, error) {
	panic("unimplemented")
}

func (stubSettings) SeedDefaults(ctx context.Context) error {
	return nil
}

type stubReports struct{}

func (stubReports) Dispatch(ctx context.Context, reportType reports.ReportType) error {
	return nil
}

func (stubReports) DailyReportPDF(ctx context.Context, date time.Time) ([]byte, error) {
	return []byte("%PDF-1.3"), nil
}

func (stubReports) StockReportPDF(ctx context.Context) ([]byte, error) {
	return []byte("%PDF-1.3"), nil
}

func newTestRouter(dbErr error) http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRouter(Deps{
		Config:    cfg,
		Logger:    logg,
		DB:        stubPinger{err: dbErr},
		Auth:      stubAuth{},
		Inventory: stubInventory{},
		Sales:     stubSales{},
		Dashboard: stubDashboard{},
		Settings:  stubSettings{},
		Reports:   stubReports{},
	})
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(nil)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health/live", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodPost, "/api/auth/login", `{"username":"admin","password":"pw"}`, http.StatusOK},
		{http.MethodGet, "/api/inventory", "", http.StatusOK},
		{http.MethodPost, "/api/sales", `{"product_id":1,"quantity":1,"sale_price":10}`, http.StatusCreated},
		{http.MethodGet, "/api/sales", "", http.StatusOK},
		{http.MethodGet, "/api/dashboard/stats", "", http.StatusOK},
		{http.MethodGet, "/api/settings", "", http.StatusOK},
		{http.MethodPost, "/api/settings/send-test", `{}`, http.StatusOK},
		{http.MethodGet, "/api/settings/download-stock-pdf", "", http.StatusOK},
		{http.MethodGet, "/api/nope", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var req *http.Request
			if tc.body == "" {
				req = httptest.NewRequest(tc.method, tc.path, nil)
			} else {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d (body %s)", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouterReadyReportsDependencyFailure(t *testing.T) {
	router := newTestRouter(context.DeadlineExceeded)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the database is down, got %d", rec.Code)
	}
}
