package service

import (
	"context"
	"errors"
	"testing"

	"hospital-admin/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService(t *testing.T) {
	t.Run("upload outcomes", func(t *testing.T) {
		repo := &mockAuditLogRepo{}
		s := NewAuditService(nil, quietLogger(), repo)

		require.NoError(t, s.LogUpload(context.Background(), "sid", "me.png", "https://cdn/me.png", nil))
		require.NoError(t, s.LogUpload(context.Background(), "sid", "me.png", "", ErrUploadFailed))

		require.Len(t, repo.created, 2)
		assert.Equal(t, entity.AuditActionPhotoUpload, repo.created[0].Action)
		assert.Equal(t, "https://cdn/me.png", repo.created[0].Metadata["url"])
		assert.Equal(t, entity.AuditActionPhotoUploadFailed, repo.created[1].Action)
		assert.Equal(t, ErrUploadFailed.Error(), repo.created[1].Metadata["error"])
	})

	t.Run("submit outcomes", func(t *testing.T) {
		repo := &mockAuditLogRepo{}
		s := NewAuditService(nil, quietLogger(), repo)

		require.NoError(t, s.LogSubmit(context.Background(), "sid", "MD123", nil))
		require.NoError(t, s.LogSubmit(context.Background(), "sid", "MD123", ErrSaveFailed))

		require.Len(t, repo.created, 2)
		assert.Equal(t, entity.AuditActionDoctorSubmit, repo.created[0].Action)
		assert.Equal(t, "MD123", repo.created[0].Metadata["license_number"])
		assert.Equal(t, "sid", repo.created[0].SessionID)
		assert.Equal(t, entity.AuditActionDoctorSubmitFail, repo.created[1].Action)
	})

	t.Run("repository errors are returned", func(t *testing.T) {
		repo := &mockAuditLogRepo{err: errors.New("db down")}
		s := NewAuditService(nil, quietLogger(), repo)

		assert.Error(t, s.LogReset(context.Background(), "sid"))
	})

	t.Run("noop records nothing", func(t *testing.T) {
		s := NewNoopAuditService()
		assert.NoError(t, s.LogReset(context.Background(), "sid"))
		assert.NoError(t, s.LogSubmit(context.Background(), "sid", "MD123", nil))
	})
}
