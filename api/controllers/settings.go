package controllers

import (
	"net/http"

	"github.com/sricodings/balashop/api/responses"
	"github.com/sricodings/balashop/api/validators"
	"github.com/sricodings/balashop/internal/reports"
	settingsvc "github.com/sricodings/balashop/internal/settings"
	"github.com/sricodings/balashop/pkg/logger"
)

// GetSettings handles GET /api/settings.
func GetSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := svc.GetAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, values)
	}
}

// UpdateSettings handles POST /api/settings/update with a flat key/value body.
func UpdateSettings(svc settingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Update(r.Context(), payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Settings updated successfully")
	}
}

type sendTestRequest struct {
	Type string `json:"type"`
}

// SendTestReport handles POST /api/settings/send-test. The dispatch runs in
// the request but incomplete settings are not an error: the call always
// acknowledges the trigger.
func SendTestReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sendTestRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reportType := reports.ReportType(payload.Type)
		if payload.Type == "" {
			reportType = reports.ReportDaily
		}
		if err := svc.Dispatch(r.Context(), reportType); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "Report email triggered")
	}
}

// DownloadStockPDF handles GET /api/settings/download-stock-pdf.
func DownloadStockPDF(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pdf, err := svc.StockReportPDF(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=stock-report.pdf")
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)
	}
}
