package settings

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	pkgerrors "github.com/sricodings/balashop/pkg/errors"
	"github.com/sricodings/balashop/pkg/mailer"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Setting keys understood by the report pipeline. Unknown keys are stored
// verbatim so the dashboard can add its own without a schema change.
const (
	KeyEmailService      = "email_service"
	KeyEmailUser         = "email_user"
	KeyEmailPass         = "email_pass"
	KeyReportRecipient   = "report_recipient"
	KeyDailyReportTime   = "daily_report_time"
	KeyMonthlyReportTime = "monthly_report_time"
	KeySMTPHost          = "smtp_host"
	KeySMTPPort          = "smtp_port"
)

const (
	DefaultDailyReportTime   = "23:00"
	DefaultMonthlyReportTime = "07:00"
)

var defaults = map[string]string{
	KeyEmailService:      "gmail",
	KeyEmailUser:         "",
	KeyEmailPass:         "",
	KeyReportRecipient:   "",
	KeyDailyReportTime:   DefaultDailyReportTime,
	KeyMonthlyReportTime: DefaultMonthlyReportTime,
}

var timeOfDayRe = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// Snapshot is a point-in-time read of the email and schedule settings.
type Snapshot struct {
	EmailService      string
	EmailUser         string
	EmailPass         string
	ReportRecipient   string
	DailyReportTime   string
	MonthlyReportTime string
	SMTPHost          string
	SMTPPort          int
}

// Complete reports whether the email settings allow dispatching reports.
func (s *Snapshot) Complete() bool {
	return s.EmailService != "" && s.EmailUser != "" && s.EmailPass != "" && s.ReportRecipient != ""
}

// Credentials maps the snapshot onto the mailer's SMTP account shape.
func (s *Snapshot) Credentials() mailer.Credentials {
	return mailer.Credentials{
		Service:  s.EmailService,
		Host:     s.SMTPHost,
		Port:     s.SMTPPort,
		Username: s.EmailUser,
		Password: s.EmailPass,
	}
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a settings service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load settings")
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.KeyName] = row.Value
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no settings provided")
	}
	var invalid []error
	for key, value := range values {
		if strings.TrimSpace(key) == "" {
			invalid = append(invalid, fmt.Errorf("setting key must not be empty"))
			continue
		}
		if key == KeyDailyReportTime || key == KeyMonthlyReportTime {
			if !timeOfDayRe.MatchString(value) {
				invalid = append(invalid, fmt.Errorf("%s must be HH:MM", key))
			}
		}
	}
	if combined := multierr.Combine(invalid...); combined != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, combined, combined.Error())
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for key, value := range values {
			if err := repo.Upsert(ctx, key, value); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert setting")
			}
		}
		return nil
	})
}

func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		EmailService:      all[KeyEmailService],
		EmailUser:         all[KeyEmailUser],
		EmailPass:         all[KeyEmailPass],
		ReportRecipient:   all[KeyReportRecipient],
		DailyReportTime:   all[KeyDailyReportTime],
		MonthlyReportTime: all[KeyMonthlyReportTime],
		SMTPHost:          all[KeySMTPHost],
	}
	if raw := all[KeySMTPPort]; raw != "" {
		port, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "smtp_port must be numeric")
		}
		snap.SMTPPort = port
	}
	if !timeOfDayRe.MatchString(snap.DailyReportTime) {
		snap.DailyReportTime = DefaultDailyReportTime
	}
	if !timeOfDayRe.MatchString(snap.MonthlyReportTime) {
		snap.MonthlyReportTime = DefaultMonthlyReportTime
	}
	return snap, nil
}

// SeedDefaults inserts the known keys that are missing. Existing values are
// never overwritten, so it is safe to run on every boot.
func (s *service) SeedDefaults(ctx context.Context) error {
	all, err := s.GetAll(ctx)
	if err != nil {
		return err
	}
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for key, value := range defaults {
			if _, exists := all[key]; exists {
				continue
			}
			if err := repo.Upsert(ctx, key, value); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed setting")
			}
		}
		return nil
	})
}
