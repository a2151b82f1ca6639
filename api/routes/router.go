package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sricodings/balashop/api/controllers"
	"github.com/sricodings/balashop/api/middleware"
	authsvc "github.com/sricodings/balashop/internal/auth"
	dashsvc "github.com/sricodings/balashop/internal/dashboard"
	invsvc "github.com/sricodings/balashop/internal/inventory"
	"github.com/sricodings/balashop/internal/reports"
	salesvc "github.com/sricodings/balashop/internal/sales"
	settingsvc "github.com/sricodings/balashop/internal/settings"
	"github.com/sricodings/balashop/pkg/config"
	"github.com/sricodings/balashop/pkg/logger"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        controllers.Pinger
	Redis     controllers.Pinger
	Auth      authsvc.Service
	Inventory invsvc.Service
	Sales     salesvc.Service
	Dashboard dashsvc.Service
	Settings  settingsvc.Service
	Reports   reports.Service
	Metrics   prometheus.Gatherer
}

// NewRouter wires the API routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		}),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB, deps.Redis))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.Login(deps.Auth, deps.Logger))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Inventory, deps.Logger))
			r.Post("/", controllers.CreateProduct(deps.Inventory, deps.Logger))
			r.Get("/search", controllers.SearchProducts(deps.Inventory, deps.Logger))
			r.Get("/{id}", controllers.GetProduct(deps.Inventory, deps.Logger))
			r.Put("/{id}", controllers.UpdateProduct(deps.Inventory, deps.Logger))
			r.Delete("/{id}", controllers.DeleteProduct(deps.Inventory, deps.Logger))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Post("/", controllers.RecordSale(deps.Sales, deps.Logger))
			r.Get("/", controllers.ListSales(deps.Sales, deps.Logger))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", controllers.DashboardStats(deps.Dashboard, deps.Logger))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.GetSettings(deps.Settings, deps.Logger))
			r.Post("/update", controllers.UpdateSettings(deps.Settings, deps.Logger))
			r.Post("/send-test", controllers.SendTestReport(deps.Reports, deps.Logger))
			r.Get("/download-stock-pdf", controllers.DownloadStockPDF(deps.Reports, deps.Logger))
		})
	})

	return r
}
