package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/sricodings/balashop/internal/sales"
	"github.com/sricodings/balashop/internal/settings"
	pkgerrors "github.com/sricodings/balashop/pkg/errors"
	"github.com/sricodings/balashop/pkg/logger"
	"github.com/sricodings/balashop/pkg/mailer"
)

// ReportType selects which report a dispatch produces.
type ReportType string

const (
	ReportDaily   ReportType = "daily"
	ReportMonthly ReportType = "monthly"
)

// Service builds report PDFs and emails them to the configured recipient.
type Service interface {
	// Dispatch builds and emails the report. Incomplete email settings skip
	// the send without error.
	Dispatch(ctx context.Context, reportType ReportType) error
	DailyReportPDF(ctx context.Context, date time.Time) ([]byte, error)
	StockReportPDF(ctx context.Context) ([]byte, error)
}

type salesLedger interface {
	SalesBetween(ctx context.Context, from, to time.Time) ([]sales.LedgerEntry, error)
}

type settingsReader interface {
	Snapshot(ctx context.Context) (*settings.Snapshot, error)
}

type service struct {
	repo     Repository
	ledger   salesLedger
	settings settingsReader
	mail     mailer.Mailer
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds a reports service with the required dependencies.
func NewService(repo Repository, ledger salesLedger, settingsSvc settingsReader, mail mailer.Mailer, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("sales ledger required")
	}
	if settingsSvc == nil {
		return nil, fmt.Errorf("settings reader required")
	}
	if mail == nil {
		return nil, fmt.Errorf("mailer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		ledger:   ledger,
		settings: settingsSvc,
		mail:     mail,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) DailyReportPDF(ctx context.Context, date time.Time) ([]byte, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)
	entries, err := s.ledger.SalesBetween(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load day's sales")
	}
	pdf, err := BuildDailySalesReport(date, entries)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build daily report")
	}
	return pdf, nil
}

func (s *service) StockReportPDF(ctx context.Context) ([]byte, error) {
	products, err := s.repo.StockAscending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock")
	}
	pdf, err := BuildStockReport(s.now(), products)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build stock report")
	}
	return pdf, nil
}

func (s *service) Dispatch(ctx context.Context, reportType ReportType) error {
	if reportType != ReportDaily && reportType != ReportMonthly {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown report type %q", reportType))
	}

	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return err
	}
	if !snap.Complete() {
		s.logg.Warn(ctx, "email settings incomplete, skipping report")
		return nil
	}

	now := s.now()
	var (
		pdf      []byte
		subject  string
		filename string
	)
	switch reportType {
	case ReportDaily:
		pdf, err = s.DailyReportPDF(ctx, now)
		subject = fmt.Sprintf("Daily Sales Report - %s", now.Format("Mon Jan 2 2006"))
		filename = fmt.Sprintf("sales-report-%d.pdf", now.UnixMilli())
	case ReportMonthly:
		pdf, err = s.StockReportPDF(ctx)
		subject = fmt.Sprintf("Monthly Stock Report - %s", now.Format("Mon Jan 2 2006"))
		filename = fmt.Sprintf("stock-report-%d.pdf", now.UnixMilli())
	}
	if err != nil {
		return err
	}

	msg := mailer.Message{
		From:    snap.EmailUser,
		To:      []string{snap.ReportRecipient},
		Subject: subject,
		Body:    fmt.Sprintf("Please find attached the %s report.", reportType),
		Attachments: []mailer.Attachment{{
			Filename:    filename,
			ContentType: "application/pdf",
			Data:        pdf,
		}},
	}
	if err := s.mail.Send(ctx, snap.Credentials(), msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeMailDispatch, err, "send report email")
	}

	s.logg.Info(s.logg.WithField(ctx, "recipient", snap.ReportRecipient), fmt.Sprintf("%s report sent", reportType))
	return nil
}
