package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sricodings/balashop/internal/settings"
	"github.com/sricodings/balashop/pkg/logger"
	"github.com/sricodings/balashop/pkg/metrics"
)

// ServiceParams configure the report scheduler.
type ServiceParams struct {
	Logger   *logger.Logger
	Lock     Lock
	Metrics  *metrics.ReportJobMetrics
	Daily    Job
	Monthly  Job
	Snapshot *settings.Snapshot
	Location *time.Location
}

// Service runs the report jobs on cron schedules derived from settings.
// Schedules are read once at startup; changing the report times takes
// effect on the next restart.
type Service struct {
	logg        *logger.Logger
	lock        Lock
	metrics     *metrics.ReportJobMetrics
	cron        *cron.Cron
	daily       Job
	monthly     Job
	dailySpec   string
	monthlySpec string
}

// NewService builds a scheduler from the settings snapshot.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Lock == nil {
		return nil, fmt.Errorf("lock required")
	}
	if params.Daily == nil || params.Monthly == nil {
		return nil, fmt.Errorf("report jobs required")
	}
	if params.Snapshot == nil {
		return nil, fmt.Errorf("settings snapshot required")
	}

	dailySpec, err := DailySpec(params.Snapshot.DailyReportTime)
	if err != nil {
		return nil, err
	}
	monthlySpec, err := MonthlySpec(params.Snapshot.MonthlyReportTime)
	if err != nil {
		return nil, err
	}

	location := params.Location
	if location == nil {
		location = time.Local
	}

	return &Service{
		logg:        params.Logger,
		lock:        params.Lock,
		metrics:     params.Metrics,
		cron:        cron.New(cron.WithLocation(location)),
		daily:       params.Daily,
		monthly:     params.Monthly,
		dailySpec:   dailySpec,
		monthlySpec: monthlySpec,
	}, nil
}

// DailySpec converts an HH:MM time of day into a daily cron expression.
func DailySpec(timeOfDay string) (string, error) {
	hour, minute, err := parseTimeOfDay(timeOfDay)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}

// MonthlySpec converts an HH:MM time of day into a first-of-month cron
// expression.
func MonthlySpec(timeOfDay string) (string, error) {
	hour, minute, err := parseTimeOfDay(timeOfDay)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d 1 * *", minute, hour), nil
}

func parseTimeOfDay(value string) (int, int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time of day %q (expected HH:MM)", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
}

// Start registers both jobs and begins the cron loop. It returns once the
// loop is running.
func (s *Service) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.dailySpec, func() { s.runJob(ctx, s.daily) }); err != nil {
		return fmt.Errorf("schedule daily report: %w", err)
	}
	if _, err := s.cron.AddFunc(s.monthlySpec, func() { s.runJob(ctx, s.monthly) }); err != nil {
		return fmt.Errorf("schedule monthly report: %w", err)
	}

	fields := map[string]any{"daily_spec": s.dailySpec, "monthly_spec": s.monthlySpec}
	s.logg.Info(s.logg.WithFields(ctx, fields), "report scheduler started")
	s.cron.Start()
	return nil
}

// Stop halts the cron loop and waits for in-flight jobs to finish.
func (s *Service) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) runJob(ctx context.Context, job Job) {
	jobCtx := s.logg.WithJob(ctx, job.Name())

	locked, err := s.lock.Acquire(jobCtx)
	if err != nil {
		s.logg.Error(jobCtx, "lock acquire failed", err)
		s.recordFailure(job.Name())
		return
	}
	if !locked {
		s.logg.Info(jobCtx, "another instance is dispatching; skipping")
		return
	}
	defer func() {
		if relErr := s.lock.Release(jobCtx); relErr != nil {
			s.logg.Error(jobCtx, "failed to release dispatch lock", relErr)
		}
	}()

	s.logg.Info(jobCtx, "job start")
	start := time.Now()
	err = job.Run(jobCtx)
	duration := time.Since(start)
	s.metrics.ObserveDuration(job.Name(), duration)
	jobCtx = s.logg.WithField(jobCtx, "duration_ms", duration.Milliseconds())
	if err != nil {
		s.logg.Error(jobCtx, "job failed", err)
		s.recordFailure(job.Name())
		return
	}
	s.logg.Info(jobCtx, "job completed")
	s.metrics.IncSuccess(job.Name())
}

func (s *Service) recordFailure(job string) {
	s.metrics.IncFailure(job)
}
