package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"forpharma-console/internal/domain/entity"
	domainRepo "forpharma-console/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

type sessionRepository struct {
	redisClient *redis.Client
}

func NewSessionRepository(redisClient *redis.Client) domainRepo.SessionRepository {
	return &sessionRepository{redisClient: redisClient}
}

func sessionKey(kind domainRepo.SessionTokenKind, userID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", kind, userID, tokenID)
}

func (r *sessionRepository) Save(ctx context.Context, kind domainRepo.SessionTokenKind, tokenID string, session entity.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, sessionKey(kind, session.UserID, tokenID), payload, ttl).Err()
}

func (r *sessionRepository) Find(ctx context.Context, kind domainRepo.SessionTokenKind, userID, tokenID string) (*entity.Session, error) {
	payload, err := r.redisClient.Get(ctx, sessionKey(kind, userID, tokenID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, kind domainRepo.SessionTokenKind, userID, tokenID string) error {
	return r.redisClient.Del(ctx, sessionKey(kind, userID, tokenID)).Err()
}

// DeleteAllForUser revokes every access and refresh token of the user.
func (r *sessionRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	for _, kind := range []domainRepo.SessionTokenKind{domainRepo.SessionAccessToken, domainRepo.SessionRefreshToken} {
		keys, err := r.redisClient.Keys(ctx, sessionKey(kind, userID, "*")).Result()
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			continue
		}
		if err := r.redisClient.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return nil
}
