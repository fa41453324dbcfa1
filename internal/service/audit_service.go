package service

import (
	"context"

	"hospital-admin/internal/domain/entity"
	"hospital-admin/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogUpload(ctx context.Context, sessionID string, fileName string, url string, uploadErr error) error
	LogSubmit(ctx context.Context, sessionID string, licenseNumber string, submitErr error) error
	LogReset(ctx context.Context, sessionID string) error
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogUpload logs the outcome of a photo upload
func (s *auditService) LogUpload(ctx context.Context, sessionID string, fileName string, url string, uploadErr error) error {
	action := entity.AuditActionPhotoUpload
	metadata := entity.JSON{
		"file": fileName,
		"url":  url,
	}
	if uploadErr != nil {
		action = entity.AuditActionPhotoUploadFailed
		metadata["error"] = uploadErr.Error()
	}
	return s.create(ctx, sessionID, action, metadata)
}

// LogSubmit logs the outcome of a doctor record submission
func (s *auditService) LogSubmit(ctx context.Context, sessionID string, licenseNumber string, submitErr error) error {
	action := entity.AuditActionDoctorSubmit
	metadata := entity.JSON{
		"license_number": licenseNumber,
	}
	if submitErr != nil {
		action = entity.AuditActionDoctorSubmitFail
		metadata["error"] = submitErr.Error()
	}
	return s.create(ctx, sessionID, action, metadata)
}

// LogReset logs an explicit form reset
func (s *auditService) LogReset(ctx context.Context, sessionID string) error {
	return s.create(ctx, sessionID, entity.AuditActionFormReset, nil)
}

func (s *auditService) create(ctx context.Context, sessionID string, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		SessionID: sessionID,
		Action:    action,
		Metadata:  metadata,
	}

	if err := s.auditRepo.Create(ctx, s.db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

type noopAuditService struct{}

// NewNoopAuditService returns an AuditService that records nothing, used
// when no audit database is configured
func NewNoopAuditService() AuditService {
	return noopAuditService{}
}

func (noopAuditService) LogUpload(context.Context, string, string, string, error) error { return nil }
func (noopAuditService) LogSubmit(context.Context, string, string, error) error         { return nil }
func (noopAuditService) LogReset(context.Context, string) error                         { return nil }
