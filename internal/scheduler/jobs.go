package scheduler

import (
	"context"

	"github.com/sricodings/balashop/internal/reports"
)

// Job represents a scheduled task that runs inside the report worker.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type reportJob struct {
	name       string
	reportType reports.ReportType
	svc        reports.Service
}

func (j reportJob) Name() string {
	return j.name
}

func (j reportJob) Run(ctx context.Context) error {
	return j.svc.Dispatch(ctx, j.reportType)
}

// NewDailyReportJob dispatches the daily sales report.
func NewDailyReportJob(svc reports.Service) Job {
	return reportJob{name: "daily-sales-report", reportType: reports.ReportDaily, svc: svc}
}

// NewMonthlyReportJob dispatches the monthly stock report.
func NewMonthlyReportJob(svc reports.Service) Job {
	return reportJob{name: "monthly-stock-report", reportType: reports.ReportMonthly, svc: svc}
}
