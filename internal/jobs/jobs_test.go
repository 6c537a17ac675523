package jobs

import (
	"context"
	"io"
	"testing"
	"time"

	"forpharma-console/config"
	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReports struct {
	ages []time.Duration
}

func (r *recordingReports) List(ctx context.Context, session entity.Session, req *dto.SubmissionReportListRequest) ([]dto.SubmissionReportResponse, int64, error) {
	return nil, 0, nil
}

func (r *recordingReports) Get(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.SubmissionReportResponse, error) {
	return nil, nil
}

func (r *recordingReports) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	r.ages = append(r.ages, age)
	return 3, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestPurgeReportsUsesRetention(t *testing.T) {
	reports := &recordingReports{}
	s := NewScheduler(quietLogger(), reports)
	require.NoError(t, s.Start(config.ReportConfig{RetentionDays: 30, RetentionCron: "5 0 * * *"}))
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 1)
	s.PurgeReports()
	assert.Equal(t, []time.Duration{30 * 24 * time.Hour}, reports.ages)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(quietLogger(), &recordingReports{})
	err := s.Start(config.ReportConfig{RetentionDays: 30, RetentionCron: "every day"})
	assert.Error(t, err)
}

func TestRetentionDisabled(t *testing.T) {
	s := NewScheduler(quietLogger(), &recordingReports{})
	require.NoError(t, s.Start(config.ReportConfig{RetentionDays: 0, RetentionCron: "5 0 * * *"}))
	defer s.Stop()
	assert.Empty(t, s.cron.Entries())
}
