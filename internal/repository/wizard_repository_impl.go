package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"forpharma-console/internal/domain/entity"
	domainRepo "forpharma-console/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	wizardStateKeyPrefix  = "wizard:state:"
	wizardSubmitKeyPrefix = "wizard:submit:"
)

// releaseLockScript deletes the lock only when it is still held by the caller, so a
// submission that outlived its lock TTL cannot release a newer holder's lock.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

type wizardRepository struct {
	redisClient *redis.Client
}

func NewWizardRepository(redisClient *redis.Client) domainRepo.WizardRepository {
	return &wizardRepository{redisClient: redisClient}
}

func (r *wizardRepository) Save(ctx context.Context, state *entity.WizardState, ttl time.Duration) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.redisClient.Set(ctx, wizardStateKeyPrefix+state.ID.String(), payload, ttl).Err()
}

func (r *wizardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WizardState, error) {
	payload, err := r.redisClient.Get(ctx, wizardStateKeyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var state entity.WizardState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decode wizard %s: %w", id, err)
	}
	return &state, nil
}

func (r *wizardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.redisClient.Del(ctx, wizardStateKeyPrefix+id.String()).Err()
}

func (r *wizardRepository) AcquireSubmitLock(ctx context.Context, id uuid.UUID, owner string, ttl time.Duration) (bool, error) {
	return r.redisClient.SetNX(ctx, wizardSubmitKeyPrefix+id.String(), owner, ttl).Result()
}

func (r *wizardRepository) ReleaseSubmitLock(ctx context.Context, id uuid.UUID, owner string) error {
	return releaseLockScript.Run(ctx, r.redisClient, []string{wizardSubmitKeyPrefix + id.String()}, owner).Err()
}
