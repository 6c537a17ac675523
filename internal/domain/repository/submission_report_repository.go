package repository

import (
	"context"
	"time"

	"forpharma-console/internal/domain/entity"

	"github.com/google/uuid"
)

type SubmissionReportRepository interface {
	Create(ctx context.Context, report *entity.SubmissionReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SubmissionReport, error)
	FindByWizardID(ctx context.Context, wizardID uuid.UUID) (*entity.SubmissionReport, error)
	FindAll(ctx context.Context, filter *entity.SubmissionReportFilter, limit, offset int) ([]entity.SubmissionReport, int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
