package repository

import (
	"context"
	"sync"
	"time"

	"hospital-admin/internal/domain/entity"
	domainRepo "hospital-admin/internal/domain/repository"
)

type memoryDraft struct {
	data      entity.DoctorFormData
	expiresAt time.Time
}

func (d memoryDraft) expired(now time.Time) bool {
	return !d.expiresAt.IsZero() && now.After(d.expiresAt)
}

type memoryDraftRepository struct {
	mu     sync.Mutex
	drafts map[string]memoryDraft
	now    func() time.Time
}

// NewMemoryDraftRepository keeps drafts in process memory. Used when no
// Redis is configured and in tests.
func NewMemoryDraftRepository() domainRepo.DraftRepository {
	return &memoryDraftRepository{
		drafts: make(map[string]memoryDraft),
		now:    time.Now,
	}
}

func (r *memoryDraftRepository) Find(ctx context.Context, sessionID string) (*entity.DoctorFormData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	draft, ok := r.drafts[sessionID]
	if !ok {
		return nil, nil
	}
	if draft.expired(r.now()) {
		delete(r.drafts, sessionID)
		return nil, nil
	}
	data := draft.data
	return &data, nil
}

func (r *memoryDraftRepository) Save(ctx context.Context, sessionID string, data entity.DoctorFormData, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.purgeExpired(now)

	draft := memoryDraft{data: data}
	if ttl > 0 {
		draft.expiresAt = now.Add(ttl)
	}
	r.drafts[sessionID] = draft
	return nil
}

func (r *memoryDraftRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, sessionID)
	return nil
}

// purgeExpired drops drafts of sessions that will never be looked up again.
// Callers hold r.mu.
func (r *memoryDraftRepository) purgeExpired(now time.Time) {
	for sessionID, draft := range r.drafts {
		if draft.expired(now) {
			delete(r.drafts, sessionID)
		}
	}
}
