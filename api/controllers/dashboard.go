package controllers

import (
	"net/http"

	"github.com/sricodings/balashop/api/responses"
	dashsvc "github.com/sricodings/balashop/internal/dashboard"
	"github.com/sricodings/balashop/pkg/logger"
)

// DashboardStats handles GET /api/dashboard/stats.
func DashboardStats(svc dashsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toStatsView(stats))
	}
}
