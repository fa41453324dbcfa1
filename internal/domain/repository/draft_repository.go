package repository

import (
	"context"
	"time"

	"hospital-admin/internal/domain/entity"
)

// DraftRepository keeps unsaved form values per session. Find returns
// nil, nil when the session has no draft.
type DraftRepository interface {
	Find(ctx context.Context, sessionID string) (*entity.DoctorFormData, error)
	Save(ctx context.Context, sessionID string, data entity.DoctorFormData, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
