package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"hospital-admin/internal/delivery/dto"
	"hospital-admin/internal/domain/entity"
	"hospital-admin/internal/domain/repository"
	"hospital-admin/internal/service"
	"hospital-admin/pkg/validator"

	"github.com/sirupsen/logrus"
)

var (
	ErrSessionRequired = errors.New("session id is required")
	ErrPreviewNotFound = errors.New("preview not found")
)

const (
	// Timeout for draft writes triggered outside a request
	draftWriteTimeout = 5 * time.Second

	defaultIdleTimeout     = 30 * time.Minute
	defaultJanitorInterval = 5 * time.Minute
)

type DoctorRegistrationUsecase interface {
	GetForm(ctx context.Context, sessionID string) (*dto.DoctorFormResponse, error)
	SetField(ctx context.Context, sessionID string, req *dto.SetFieldRequest) (*dto.DoctorFormResponse, error)
	SetFields(ctx context.Context, sessionID string, reqs []dto.SetFieldRequest) (*dto.DoctorFormResponse, error)
	StagePhoto(ctx context.Context, sessionID string, file *entity.StagedFile) (*dto.DoctorFormResponse, error)
	UploadPhoto(ctx context.Context, sessionID string) (*dto.PhotoUploadResponse, error)
	Validate(ctx context.Context, sessionID string) (*dto.ValidationResponse, error)
	BuildPayload(ctx context.Context, sessionID string) (*dto.DoctorPayload, error)
	Save(ctx context.Context, sessionID string) error
	Reset(ctx context.Context, sessionID string) error
	OpenPreview(ctx context.Context, previewID string) (*entity.StagedFile, error)
	Stop()
}

// RegistrationConfig tunes session handling
type RegistrationConfig struct {
	DraftTTL        time.Duration
	IdleTimeout     time.Duration
	JanitorInterval time.Duration
}

type formSession struct {
	form     *service.DoctorForm
	lastUsed atomic.Int64 // Unix timestamp
}

func (s *formSession) touch() {
	s.lastUsed.Store(time.Now().Unix())
}

// doctorRegistrationUsecase keeps one live DoctorForm per browser session.
// Field values are mirrored to the draft repository so they survive an
// eviction or a restart; staged photos and in-flight flags do not.
type doctorRegistrationUsecase struct {
	log          *logrus.Logger
	draftRepo    repository.DraftRepository
	auditService service.AuditService
	uploader     service.PhotoUploader
	recorder     service.DoctorRecorder
	previews     *service.PreviewRegistry
	validator    *validator.CustomValidator
	cfg          RegistrationConfig

	mu       sync.Mutex
	sessions map[string]*formSession

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewDoctorRegistrationUsecase starts a background janitor that evicts idle
// sessions. Call Stop() during graceful shutdown.
func NewDoctorRegistrationUsecase(
	log *logrus.Logger,
	draftRepo repository.DraftRepository,
	auditService service.AuditService,
	uploader service.PhotoUploader,
	recorder service.DoctorRecorder,
	previews *service.PreviewRegistry,
	validator *validator.CustomValidator,
	cfg RegistrationConfig,
) DoctorRegistrationUsecase {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}
	if cfg.JanitorInterval <= 0 {
		cfg.JanitorInterval = defaultJanitorInterval
	}

	u := &doctorRegistrationUsecase{
		log:          log,
		draftRepo:    draftRepo,
		auditService: auditService,
		uploader:     uploader,
		recorder:     recorder,
		previews:     previews,
		validator:    validator,
		cfg:          cfg,
		sessions:     make(map[string]*formSession),
		stopChan:     make(chan struct{}),
	}

	u.wg.Add(1)
	go u.janitor()

	return u
}

func (u *doctorRegistrationUsecase) GetForm(ctx context.Context, sessionID string) (*dto.DoctorFormResponse, error) {
	form, err := u.form(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toFormResponse(form.Snapshot()), nil
}

func (u *doctorRegistrationUsecase) SetField(ctx context.Context, sessionID string, req *dto.SetFieldRequest) (*dto.DoctorFormResponse, error) {
	return u.SetFields(ctx, sessionID, []dto.SetFieldRequest{*req})
}

// SetFields applies updates in order and stops at the first rejected one;
// updates before it stay applied
func (u *doctorRegistrationUsecase) SetFields(ctx context.Context, sessionID string, reqs []dto.SetFieldRequest) (*dto.DoctorFormResponse, error) {
	form, err := u.form(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var setErr error
	for _, req := range reqs {
		if setErr = form.SetField(entity.Section(req.Section), req.Key, req.Value); setErr != nil {
			u.log.Warnf("Failed to set field %s.%s: %+v", req.Section, req.Key, setErr)
			break
		}
	}

	u.persistDraft(ctx, sessionID, form.Data())
	if setErr != nil {
		return nil, setErr
	}
	return toFormResponse(form.Snapshot()), nil
}

func (u *doctorRegistrationUsecase) StagePhoto(ctx context.Context, sessionID string, file *entity.StagedFile) (*dto.DoctorFormResponse, error) {
	form, err := u.form(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := form.HandleFileChange(file); err != nil {
		u.log.Warnf("Failed to stage photo: %+v", err)
		return nil, err
	}
	return toFormResponse(form.Snapshot()), nil
}

func (u *doctorRegistrationUsecase) UploadPhoto(ctx context.Context, sessionID string) (*dto.PhotoUploadResponse, error) {
	form, err := u.form(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fileName := form.Snapshot().StagedFileName
	url, err := form.HandleUpload(ctx)
	if errors.Is(err, service.ErrNoFileSelected) || errors.Is(err, service.ErrUploadInFlight) {
		return nil, err
	}

	if auditErr := u.auditService.LogUpload(ctx, sessionID, fileName, url, err); auditErr != nil {
		u.log.Warnf("Failed to create audit log: %+v", auditErr)
	}
	if err != nil {
		return nil, err
	}

	return &dto.PhotoUploadResponse{URL: url}, nil
}

func (u *doctorRegistrationUsecase) Validate(ctx context.Context, sessionID string) (*dto.ValidationResponse, error) {
	form, err := u.form(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	err = form.ValidateForm()
	if err == nil {
		return &dto.ValidationResponse{Valid: true}, nil
	}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return &dto.ValidationResponse{
			Valid:   false,
			Field:   validationErr.Field,
			Message: validationErr.Message,
		}, nil
	}
	return nil, err
}

func (u *doctorRegistrationUsecase) BuildPayload(ctx context.Context, sessionID string) (*dto.DoctorPayload, error) {
	form, err := u.form(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return form.BuildPayload(), nil
}

func (u *doctorRegistrationUsecase) Save(ctx context.Context, sessionID string) error {
	form, err := u.form(ctx, sessionID)
	if err != nil {
		return err
	}

	license := form.BuildPayload().Professional.MedicalLicenseNumber
	err = form.HandleSave(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) || errors.Is(err, service.ErrSaveInFlight) {
		return err
	}

	if auditErr := u.auditService.LogSubmit(ctx, sessionID, license, err); auditErr != nil {
		u.log.Warnf("Failed to create audit log: %+v", auditErr)
	}
	if err != nil {
		return err
	}

	if err := u.draftRepo.Delete(ctx, sessionID); err != nil {
		u.log.Warnf("Failed to delete draft: %+v", err)
	}
	return nil
}

func (u *doctorRegistrationUsecase) Reset(ctx context.Context, sessionID string) error {
	form, err := u.form(ctx, sessionID)
	if err != nil {
		return err
	}

	form.Reset()
	if err := u.draftRepo.Delete(ctx, sessionID); err != nil {
		u.log.Warnf("Failed to delete draft: %+v", err)
	}
	if err := u.auditService.LogReset(ctx, sessionID); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}
	return nil
}

func (u *doctorRegistrationUsecase) OpenPreview(ctx context.Context, previewID string) (*entity.StagedFile, error) {
	file, ok := u.previews.Open(previewID)
	if !ok {
		return nil, ErrPreviewNotFound
	}
	return file, nil
}

// Stop halts the janitor and releases every live session
func (u *doctorRegistrationUsecase) Stop() {
	if !u.stopped.CompareAndSwap(false, true) {
		return
	}
	close(u.stopChan)
	u.wg.Wait()

	u.mu.Lock()
	defer u.mu.Unlock()
	for id, s := range u.sessions {
		s.form.Release()
		delete(u.sessions, id)
	}
}

// form returns the live form of a session, restoring its draft on first use
func (u *doctorRegistrationUsecase) form(ctx context.Context, sessionID string) (*service.DoctorForm, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	u.mu.Lock()
	if s, ok := u.sessions[sessionID]; ok {
		s.touch()
		u.mu.Unlock()
		return s.form, nil
	}
	u.mu.Unlock()

	draft, err := u.draftRepo.Find(ctx, sessionID)
	if err != nil {
		u.log.Warnf("Failed to load draft: %+v", err)
		draft = nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	// Another request may have created the session while the draft loaded
	if s, ok := u.sessions[sessionID]; ok {
		s.touch()
		return s.form, nil
	}

	s := &formSession{}
	opts := []service.DoctorFormOption{
		service.WithUploadedHook(func(url string) {
			ctx, cancel := context.WithTimeout(context.Background(), draftWriteTimeout)
			defer cancel()
			u.persistDraft(ctx, sessionID, s.form.Data())
		}),
	}
	if draft != nil {
		opts = append(opts, service.WithInitialData(*draft))
	}
	s.form = service.NewDoctorForm(u.uploader, u.recorder, u.previews, u.validator, u.log, opts...)
	s.touch()
	u.sessions[sessionID] = s

	return s.form, nil
}

func (u *doctorRegistrationUsecase) persistDraft(ctx context.Context, sessionID string, data entity.DoctorFormData) {
	if err := u.draftRepo.Save(ctx, sessionID, data, u.cfg.DraftTTL); err != nil {
		u.log.Warnf("Failed to save draft: %+v", err)
	}
}

func (u *doctorRegistrationUsecase) janitor() {
	defer u.wg.Done()

	ticker := time.NewTicker(u.cfg.JanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-u.stopChan:
			return
		case <-ticker.C:
			u.evictIdle(time.Now())
		}
	}
}

// evictIdle drops sessions unused for longer than the idle timeout. Sessions
// with an upload or save in flight are kept.
func (u *doctorRegistrationUsecase) evictIdle(now time.Time) int {
	threshold := now.Add(-u.cfg.IdleTimeout).Unix()

	u.mu.Lock()
	defer u.mu.Unlock()

	evicted := 0
	for id, s := range u.sessions {
		if s.lastUsed.Load() > threshold {
			continue
		}
		snap := s.form.Snapshot()
		if snap.Uploading || snap.Saving {
			continue
		}
		s.form.Release()
		delete(u.sessions, id)
		evicted++
	}

	if evicted > 0 {
		u.log.WithField("evicted", evicted).Info("Evicted idle form sessions")
	}
	return evicted
}

func toFormResponse(s service.DoctorFormSnapshot) *dto.DoctorFormResponse {
	return &dto.DoctorFormResponse{
		Data:           s.Data,
		StagedFileName: s.StagedFileName,
		PreviewURL:     s.PreviewURL,
		PhotoURL:       s.Data.Personal.PhotoURL,
		Uploading:      s.Uploading,
		Saving:         s.Saving,
	}
}
