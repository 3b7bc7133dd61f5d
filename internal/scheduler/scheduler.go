package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// ReportRunner generates and publishes a report.
type ReportRunner interface {
	Run(ctx context.Context) (models.InventoryReport, error)
}

// Notifier delivers the report summary to the stock manager.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	reports   ReportRunner
	notifier  Notifier
	managerID string
	logger    *zap.Logger
}

// NewScheduler creates a scheduler that runs the inventory report on the
// configured cron expression and timezone. notifier may be nil, in which
// case reports are only published to their sinks.
func NewScheduler(cfg config.Config, reports ReportRunner, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.Reporting.Location()
	if err != nil {
		return nil, fmt.Errorf("load report timezone: %w", err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		schedule:  cfg.Reporting.CronSchedule,
		reports:   reports,
		notifier:  notifier,
		managerID: cfg.WhatsApp.ManagerID,
		logger:    logger,
	}, nil
}

// Start registers the report job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runReport); err != nil {
		return fmt.Errorf("schedule inventory report %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runReport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("scheduled inventory report failed", zap.Error(err))
	}
}

// RunOnce generates and publishes one report, then sends its summary to the
// manager when a notifier and recipient are configured. The summary is sent
// even if a sink failed.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.logger.Info("generating inventory report")

	report, runErr := s.reports.Run(ctx)

	if s.notifier == nil || s.managerID == "" {
		return runErr
	}

	req := models.OutboundMessageRequest{
		To:      s.managerID,
		Message: reporting.Summary(report),
	}
	if err := s.notifier.SendOutbound(ctx, req); err != nil {
		if runErr != nil {
			return fmt.Errorf("%w; send report: %v", runErr, err)
		}
		return fmt.Errorf("send report: %w", err)
	}

	s.logger.Info("inventory report sent", zap.String("to", s.managerID))
	return runErr
}
