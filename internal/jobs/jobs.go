// Package jobs runs the console's scheduled maintenance.
package jobs

import (
	"context"
	"fmt"
	"time"

	"forpharma-console/config"
	"forpharma-console/internal/usecase"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const retentionTimeout = time.Minute

type Scheduler struct {
	cron          *cron.Cron
	log           *logrus.Logger
	reportUsecase usecase.SubmissionReportUsecase
	retention     time.Duration
}

func NewScheduler(log *logrus.Logger, reportUsecase usecase.SubmissionReportUsecase) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		log:           log,
		reportUsecase: reportUsecase,
	}
}

// Start registers the jobs and starts the cron loop. A non-positive retention
// disables report purging.
func (s *Scheduler) Start(cfg config.ReportConfig) error {
	if cfg.RetentionDays > 0 {
		s.retention = time.Duration(cfg.RetentionDays) * 24 * time.Hour
		if _, err := s.cron.AddFunc(cfg.RetentionCron, s.PurgeReports); err != nil {
			return fmt.Errorf("invalid report retention schedule %q: %w", cfg.RetentionCron, err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// PurgeReports deletes submission reports past the retention period.
func (s *Scheduler) PurgeReports() {
	ctx, cancel := context.WithTimeout(context.Background(), retentionTimeout)
	defer cancel()

	s.log.Info("Running submission report retention...")
	deleted, err := s.reportUsecase.PurgeOlderThan(ctx, s.retention)
	if err != nil {
		s.log.Warnf("Failed to purge submission reports: %+v", err)
		return
	}
	s.log.WithField("deleted", deleted).Info("Submission report retention finished")
}
