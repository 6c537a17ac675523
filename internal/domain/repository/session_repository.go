package repository

import (
	"context"
	"time"

	"forpharma-console/internal/domain/entity"
)

type SessionTokenKind string

const (
	SessionAccessToken  SessionTokenKind = "access_token"
	SessionRefreshToken SessionTokenKind = "refresh_token"
)

// SessionRepository is the registry of issued console tokens. A token is valid
// while its entry exists; the entry carries the session, upstream token included.
type SessionRepository interface {
	Save(ctx context.Context, kind SessionTokenKind, tokenID string, session entity.Session, ttl time.Duration) error
	Find(ctx context.Context, kind SessionTokenKind, userID, tokenID string) (*entity.Session, error)
	Delete(ctx context.Context, kind SessionTokenKind, userID, tokenID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
