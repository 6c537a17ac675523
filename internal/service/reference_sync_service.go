package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"forpharma-console/internal/domain/entity"
	"forpharma-console/internal/domain/gateway"
	"forpharma-console/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// =============================================================================
// Types
// =============================================================================

// ReferenceSyncService serves the organization's reference lists (doctors, hospitals,
// chemists, drugs) from the Redis cache and fills the cache from the platform backend
// on a miss.
//
// Concurrency: a per organization+kind mutex lets only one request fetch a missing list;
// the others wait and then read it from the cache.
type ReferenceSyncService struct {
	gateway gateway.ForPharmaGateway
	cache   repository.ReferenceCache
	log     *logrus.Logger
	ttl     time.Duration

	// Per-key mutex, key is "<organizationID>:<kind>"
	keyMu sync.Map // map[string]*mutexWithTimestamp

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// =============================================================================
// Constructor
// =============================================================================

// NewReferenceSyncService starts the background mutex cleanup.
// Call Stop() during graceful shutdown.
func NewReferenceSyncService(gw gateway.ForPharmaGateway, cache repository.ReferenceCache, log *logrus.Logger, ttl time.Duration) *ReferenceSyncService {
	svc := &ReferenceSyncService{
		gateway:  gw,
		cache:    cache,
		log:      log,
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// =============================================================================
// Lifecycle Methods
// =============================================================================

// Stop gracefully shuts down the service.
// Safe to call multiple times.
func (s *ReferenceSyncService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("ReferenceSyncService stopped")
	}
}

// =============================================================================
// Public Methods
// =============================================================================

func (s *ReferenceSyncService) Doctors(ctx context.Context, session entity.Session) ([]entity.Doctor, error) {
	return loadReference(ctx, s, session, repository.ReferenceDoctors, s.gateway.ListDoctors)
}

func (s *ReferenceSyncService) Hospitals(ctx context.Context, session entity.Session) ([]entity.Hospital, error) {
	return loadReference(ctx, s, session, repository.ReferenceHospitals, s.gateway.ListHospitals)
}

func (s *ReferenceSyncService) Chemists(ctx context.Context, session entity.Session) ([]entity.Chemist, error) {
	return loadReference(ctx, s, session, repository.ReferenceChemists, s.gateway.ListChemists)
}

func (s *ReferenceSyncService) Drugs(ctx context.Context, session entity.Session) ([]entity.Drug, error) {
	return loadReference(ctx, s, session, repository.ReferenceDrugs, s.gateway.ListDrugs)
}

// Invalidate drops cached lists so the next read goes to the backend.
func (s *ReferenceSyncService) Invalidate(ctx context.Context, organizationID string, kinds ...string) error {
	for _, kind := range kinds {
		mt := s.getKeyMutex(organizationID + ":" + kind)
		mt.mu.Lock()
		err := s.cache.Invalidate(ctx, organizationID, kind)
		mt.mu.Unlock()
		if err != nil {
			s.log.Warnf("Failed to invalidate %s cache for organization %s: %+v", kind, organizationID, err)
			return fmt.Errorf("invalidate %s cache: %w", kind, err)
		}
	}
	return nil
}

// RefreshDoctors reloads the doctor list, used after a submission changed it.
func (s *ReferenceSyncService) RefreshDoctors(ctx context.Context, session entity.Session) ([]entity.Doctor, error) {
	if err := s.Invalidate(ctx, session.OrganizationID, repository.ReferenceDoctors); err != nil {
		return nil, err
	}
	return s.Doctors(ctx, session)
}

// =============================================================================
// Private Helper Methods
// =============================================================================

func loadReference[T any](ctx context.Context, s *ReferenceSyncService, session entity.Session, kind string, fetch func(context.Context, entity.Session) ([]T, error)) ([]T, error) {
	mt := s.getKeyMutex(session.OrganizationID + ":" + kind)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var items []T
	hit, err := s.cache.Get(ctx, session.OrganizationID, kind, &items)
	if err != nil {
		// A broken cache must not break the console, fall through to the backend.
		s.log.Warnf("Failed to read %s cache: %+v", kind, err)
	}
	if hit {
		return items, nil
	}

	items, err = fetch(ctx, session)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	if err := s.cache.Set(ctx, session.OrganizationID, kind, items, s.ttl); err != nil {
		s.log.Warnf("Failed to cache %s: %+v", kind, err)
	}
	s.log.Debugf("Loaded %d %s for organization %s", len(items), kind, session.OrganizationID)
	return items, nil
}

// getKeyMutex returns mutex for a specific cache key
func (s *ReferenceSyncService) getKeyMutex(key string) *mutexWithTimestamp {
	mt, _ := s.keyMu.LoadOrStore(key, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

// cleanupMutexMapLoop runs in background to clean stale mutexes
func (s *ReferenceSyncService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes(time.Now().Add(-mutexStaleThreshold))
		}
	}
}

// cleanupStaleMutexes removes mutexes unused since cutoff. TryLock skips the ones in use,
// and lastUsed is read under the lock so a concurrent getKeyMutex is never lost.
func (s *ReferenceSyncService) cleanupStaleMutexes(cutoff time.Time) int {
	cutoffTime := cutoff.Unix()
	var cleaned int

	s.keyMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				s.keyMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale mutexes", cleaned)
	}
	return cleaned
}
