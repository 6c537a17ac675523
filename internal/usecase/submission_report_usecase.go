package usecase

import (
	"context"
	"errors"
	"time"

	"forpharma-console/internal/converter"
	"forpharma-console/internal/delivery/dto"
	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSubmissionReportNotFound = errors.New("submission report not found")
	ErrInvalidDateFormat        = errors.New("invalid date format, use YYYY-MM-DD")
)

type SubmissionReportUsecase interface {
	List(ctx context.Context, session entity.Session, req *dto.SubmissionReportListRequest) ([]dto.SubmissionReportResponse, int64, error)
	Get(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.SubmissionReportResponse, error)
	PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

type submissionReportUsecase struct {
	log        *logrus.Logger
	reportRepo repository.SubmissionReportRepository
}

func NewSubmissionReportUsecase(log *logrus.Logger, reportRepo repository.SubmissionReportRepository) SubmissionReportUsecase {
	return &submissionReportUsecase{log: log, reportRepo: reportRepo}
}

// List returns the organization's reports. Only admins see other users' reports.
func (u *submissionReportUsecase) List(ctx context.Context, session entity.Session, req *dto.SubmissionReportListRequest) ([]dto.SubmissionReportResponse, int64, error) {
	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	filter := &entity.SubmissionReportFilter{
		OrganizationID: session.OrganizationID,
		Status:         entity.SubmissionStatus(req.Status),
	}
	if !session.IsAdmin() {
		filter.UserID = session.UserID
	}

	if req.From != "" {
		from, err := time.Parse("2006-01-02", req.From)
		if err != nil {
			return nil, 0, ErrInvalidDateFormat
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := time.Parse("2006-01-02", req.To)
		if err != nil {
			return nil, 0, ErrInvalidDateFormat
		}
		// Inclusive of the whole end day.
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}

	reports, total, err := u.reportRepo.FindAll(ctx, filter, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find submission reports: %+v", err)
		return nil, 0, err
	}

	return converter.SubmissionReportsToResponses(reports), total, nil
}

func (u *submissionReportUsecase) Get(ctx context.Context, session entity.Session, id uuid.UUID) (*dto.SubmissionReportResponse, error) {
	report, err := u.reportRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find submission report: %+v", err)
		return nil, err
	}
	if report == nil || report.OrganizationID != session.OrganizationID {
		return nil, ErrSubmissionReportNotFound
	}
	if !session.IsAdmin() && report.UserID != session.UserID {
		return nil, ErrSubmissionReportNotFound
	}

	return converter.SubmissionReportToResponse(report), nil
}

// PurgeOlderThan deletes reports created before now minus age.
func (u *submissionReportUsecase) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	deleted, err := u.reportRepo.DeleteOlderThan(ctx, time.Now().Add(-age))
	if err != nil {
		u.log.Warnf("Failed to purge submission reports: %+v", err)
		return 0, err
	}
	return deleted, nil
}
