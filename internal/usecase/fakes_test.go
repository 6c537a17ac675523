package usecase

import (
	"context"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

var testSession = entity.Session{
	UserID:         "user-1",
	Email:          "staff@acme.com",
	FullName:       "Staff Member",
	Role:           entity.RoleManager,
	OrganizationID: "org-1",
	TokenID:        "tok-1",
	UpstreamToken:  "upstream",
}

type auditEntry struct {
	Action   string
	EntityID string
}

// fakeAuditService keeps audit entries in memory.
type fakeAuditService struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (s *fakeAuditService) add(action, entityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, auditEntry{Action: action, EntityID: entityID})
	return nil
}

func (s *fakeAuditService) LogAction(ctx context.Context, session entity.Session, action string, metadata entity.JSON) error {
	return s.add(action, "")
}

func (s *fakeAuditService) LogCreate(ctx context.Context, session entity.Session, action string, entityName string, entityID string, newValue interface{}) error {
	return s.add(action, entityID)
}

func (s *fakeAuditService) LogUpdate(ctx context.Context, session entity.Session, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.add(action, entityID)
}

func (s *fakeAuditService) LogDelete(ctx context.Context, session entity.Session, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.add(action, entityID)
}

func (s *fakeAuditService) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Action
	}
	return out
}

// fakeReportRepository enforces the wizard_id unique index like the database does.
type fakeReportRepository struct {
	mu      sync.Mutex
	reports []entity.SubmissionReport
	filter  *entity.SubmissionReportFilter
}

var _ repository.SubmissionReportRepository = (*fakeReportRepository)(nil)

func (r *fakeReportRepository) Create(ctx context.Context, report *entity.SubmissionReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reports {
		if existing.WizardID == report.WizardID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_submission_reports_wizard_id"}
		}
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	r.reports = append(r.reports, *report)
	return nil
}

func (r *fakeReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SubmissionReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reports {
		if r.reports[i].ID == id {
			report := r.reports[i]
			return &report, nil
		}
	}
	return nil, nil
}

func (r *fakeReportRepository) FindByWizardID(ctx context.Context, wizardID uuid.UUID) (*entity.SubmissionReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reports {
		if r.reports[i].WizardID == wizardID {
			report := r.reports[i]
			return &report, nil
		}
	}
	return nil, nil
}

func (r *fakeReportRepository) FindAll(ctx context.Context, filter *entity.SubmissionReportFilter, limit, offset int) ([]entity.SubmissionReport, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = filter

	var matched []entity.SubmissionReport
	for _, report := range r.reports {
		if filter.OrganizationID != "" && report.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.UserID != "" && report.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && report.Status != filter.Status {
			continue
		}
		matched = append(matched, report)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if offset >= len(matched) {
		return []entity.SubmissionReport{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeReportRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.reports[:0]
	var deleted int64
	for _, report := range r.reports {
		if report.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, report)
	}
	r.reports = kept
	return deleted, nil
}
