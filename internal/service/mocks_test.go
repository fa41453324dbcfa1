package service

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"hospital-admin/internal/delivery/dto"
	"hospital-admin/internal/domain/entity"
	"hospital-admin/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type mockUploader struct {
	UploadFunc func(ctx context.Context, file *entity.StagedFile, folder string) (*dto.UploadResult, error)
	calls      atomic.Int32
}

func (m *mockUploader) Upload(ctx context.Context, file *entity.StagedFile, folder string) (*dto.UploadResult, error) {
	m.calls.Add(1)
	return m.UploadFunc(ctx, file, folder)
}

type mockRecorder struct {
	CreateFunc func(ctx context.Context, payload *dto.DoctorPayload) (*dto.DoctorRecordResult, error)
	calls      atomic.Int32
}

func (m *mockRecorder) Create(ctx context.Context, payload *dto.DoctorPayload) (*dto.DoctorRecordResult, error) {
	m.calls.Add(1)
	return m.CreateFunc(ctx, payload)
}

type mockAuditLogRepo struct {
	mu      sync.Mutex
	created []*entity.AuditLog
	err     error
}

var _ repository.AuditLogRepository = (*mockAuditLogRepo)(nil)

func (m *mockAuditLogRepo) Create(ctx context.Context, db *gorm.DB, auditLog *entity.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, auditLog)
	return nil
}

func (m *mockAuditLogRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.AuditLog, error) {
	return nil, nil
}

func (m *mockAuditLogRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	return nil, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
