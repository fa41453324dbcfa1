package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"hospital-admin/internal/domain/entity"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockAuditLogRepo struct {
	FindAllFunc  func(ctx context.Context, db *gorm.DB) ([]entity.AuditLog, error)
	FindByIDFunc func(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error)
}

func (m *mockAuditLogRepo) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	return nil
}

func (m *mockAuditLogRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.AuditLog, error) {
	return m.FindAllFunc(ctx, db)
}

func (m *mockAuditLogRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	return m.FindByIDFunc(ctx, db, id)
}

func TestAuditLogUsecase(t *testing.T) {
	ctx := context.Background()
	log := logrus.New()
	log.SetOutput(io.Discard)

	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := &mockAuditLogRepo{
		FindAllFunc: func(context.Context, *gorm.DB) ([]entity.AuditLog, error) {
			return []entity.AuditLog{
				{ID: 2, SessionID: "sid", Action: entity.AuditActionDoctorSubmit, Metadata: entity.JSON{"license_number": "MD123"}, CreatedAt: createdAt},
				{ID: 1, SessionID: "sid", Action: entity.AuditActionPhotoUpload, CreatedAt: createdAt},
			}, nil
		},
		FindByIDFunc: func(_ context.Context, _ *gorm.DB, id int64) (*entity.AuditLog, error) {
			switch id {
			case 1:
				return &entity.AuditLog{ID: 1, Action: entity.AuditActionFormReset}, nil
			case 2:
				return nil, errors.New("db down")
			}
			return nil, nil
		},
	}

	t.Run("disabled without a database", func(t *testing.T) {
		uc := NewAuditLogUsecase(nil, log, repo)

		_, err := uc.GetAllAuditLogs(ctx)
		assert.ErrorIs(t, err, ErrAuditDisabled)
		_, err = uc.GetAuditLog(ctx, 1)
		assert.ErrorIs(t, err, ErrAuditDisabled)
	})

	uc := NewAuditLogUsecase(&gorm.DB{}, log, repo)

	t.Run("lists logs", func(t *testing.T) {
		list, err := uc.GetAllAuditLogs(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, list.Total)
		assert.Equal(t, entity.AuditActionDoctorSubmit, list.Logs[0].Action)
		assert.Equal(t, "MD123", list.Logs[0].Metadata["license_number"])
	})

	t.Run("finds one", func(t *testing.T) {
		got, err := uc.GetAuditLog(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, entity.AuditActionFormReset, got.Action)
	})

	t.Run("not found", func(t *testing.T) {
		hookLog, hook := logtest.NewNullLogger()
		uc := NewAuditLogUsecase(&gorm.DB{}, hookLog, repo)

		_, err := uc.GetAuditLog(ctx, 99)
		assert.ErrorIs(t, err, ErrAuditLogNotFound)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, "Audit log not found", entry.Message)
		assert.Equal(t, int64(99), entry.Data["id"])
	})

	t.Run("repository error", func(t *testing.T) {
		_, err := uc.GetAuditLog(ctx, 2)
		assert.EqualError(t, err, "db down")
	})
}
