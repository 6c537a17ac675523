package repository

import (
	"context"
	"errors"
	"time"

	"forpharma-console/internal/domain/entity"
	domainRepo "forpharma-console/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type submissionReportRepository struct {
	db *gorm.DB
}

func NewSubmissionReportRepository(db *gorm.DB) domainRepo.SubmissionReportRepository {
	return &submissionReportRepository{db: db}
}

func (r *submissionReportRepository) Create(ctx context.Context, report *entity.SubmissionReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *submissionReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SubmissionReport, error) {
	var report entity.SubmissionReport
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *submissionReportRepository) FindByWizardID(ctx context.Context, wizardID uuid.UUID) (*entity.SubmissionReport, error) {
	var report entity.SubmissionReport
	err := r.db.WithContext(ctx).Where("wizard_id = ?", wizardID).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *submissionReportRepository) FindAll(ctx context.Context, filter *entity.SubmissionReportFilter, limit, offset int) ([]entity.SubmissionReport, int64, error) {
	var reports []entity.SubmissionReport
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SubmissionReport{})
	if filter != nil {
		if filter.OrganizationID != "" {
			query = query.Where("organization_id = ?", filter.OrganizationID)
		}
		if filter.UserID != "" {
			query = query.Where("user_id = ?", filter.UserID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.From != nil {
			query = query.Where("created_at >= ?", *filter.From)
		}
		if filter.To != nil {
			query = query.Where("created_at < ?", *filter.To)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Limit(limit).Offset(offset).Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *submissionReportRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&entity.SubmissionReport{})
	return result.RowsAffected, result.Error
}
