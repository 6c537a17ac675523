package repository

import (
	"context"
	"time"

	"forpharma-console/internal/domain/entity"

	"github.com/google/uuid"
)

// WizardRepository keeps open wizards between requests.
type WizardRepository interface {
	Save(ctx context.Context, state *entity.WizardState, ttl time.Duration) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WizardState, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AcquireSubmitLock returns false when another submission of the wizard is in flight.
	AcquireSubmitLock(ctx context.Context, id uuid.UUID, owner string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, id uuid.UUID, owner string) error
}
