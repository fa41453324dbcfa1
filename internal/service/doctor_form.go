package service

import (
	"context"
	"strings"
	"sync"

	"hospital-admin/internal/converter"
	"hospital-admin/internal/delivery/dto"
	"hospital-admin/internal/domain/entity"
	"hospital-admin/pkg/validator"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

const (
	// UploadFolder is the folder tag sent with every profile photo
	UploadFolder = "doctor/profile"

	// MaxPhotoBytes is the largest photo accepted for staging (2 MiB)
	MaxPhotoBytes int64 = 2 * 1024 * 1024
)

// PhotoUploader sends a staged photo to the upload endpoint
type PhotoUploader interface {
	Upload(ctx context.Context, file *entity.StagedFile, folder string) (*dto.UploadResult, error)
}

// DoctorRecorder submits a doctor payload to the doctor record endpoint
type DoctorRecorder interface {
	Create(ctx context.Context, payload *dto.DoctorPayload) (*dto.DoctorRecordResult, error)
}

// PreviewStore hands out local preview references for staged photos
type PreviewStore interface {
	Create(file *entity.StagedFile) string
	Revoke(url string)
}

// requiredFields lists the mandatory inputs in the order they are checked
type requiredFields struct {
	FirstName             string `validate:"required"`
	LastName              string `validate:"required"`
	Email                 string `validate:"required"`
	Phone                 string `validate:"required"`
	PrimarySpecialization string `validate:"required"`
	MedicalLicenseNumber  string `validate:"required"`
}

var requiredFieldMessages = map[string]struct {
	key     string
	message string
}{
	"FirstName":             {entity.FieldFirstName, "First name is required"},
	"LastName":              {entity.FieldLastName, "Last name is required"},
	"Email":                 {entity.FieldEmail, "Email address is required"},
	"Phone":                 {entity.FieldPhone, "Phone number is required"},
	"PrimarySpecialization": {entity.FieldPrimarySpecialization, "Primary specialization is required"},
	"MedicalLicenseNumber":  {entity.FieldMedicalLicenseNumber, "Medical license number is required"},
}

// DoctorFormSnapshot is a read-only view of the form for rendering
type DoctorFormSnapshot struct {
	Data           entity.DoctorFormData
	StagedFileName string
	PreviewURL     string
	Uploading      bool
	Saving         bool
}

// DoctorForm owns the state of one doctor registration form: the field
// values, the staged photo with its preview, and the upload/save in-flight
// flags. All methods are safe for concurrent use; upload and save may run at
// the same time but never twice each.
type DoctorForm struct {
	mu        sync.Mutex
	data      entity.DoctorFormData
	staged    *entity.StagedFile
	preview   string
	uploading bool
	saving    bool

	uploader   PhotoUploader
	recorder   DoctorRecorder
	previews   PreviewStore
	validator  *validator.CustomValidator
	log        *logrus.Logger
	onUploaded func(url string)
}

type DoctorFormOption func(*DoctorForm)

// WithUploadedHook registers a callback invoked with the hosted URL after a
// successful upload
func WithUploadedHook(hook func(url string)) DoctorFormOption {
	return func(f *DoctorForm) {
		f.onUploaded = hook
	}
}

// WithInitialData starts the form from a previously saved draft
func WithInitialData(data entity.DoctorFormData) DoctorFormOption {
	return func(f *DoctorForm) {
		f.data = data
	}
}

func NewDoctorForm(
	uploader PhotoUploader,
	recorder DoctorRecorder,
	previews PreviewStore,
	validator *validator.CustomValidator,
	log *logrus.Logger,
	opts ...DoctorFormOption,
) *DoctorForm {
	f := &DoctorForm{
		data:      entity.DefaultDoctorFormData(),
		uploader:  uploader,
		recorder:  recorder,
		previews:  previews,
		validator: validator,
		log:       log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Snapshot returns the current state
func (f *DoctorForm) Snapshot() DoctorFormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := DoctorFormSnapshot{
		Data:       f.data,
		PreviewURL: f.preview,
		Uploading:  f.uploading,
		Saving:     f.saving,
	}
	if f.staged != nil {
		s.StagedFileName = f.staged.Name
	}
	return s
}

// Data returns the current field values
func (f *DoctorForm) Data() entity.DoctorFormData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

// SetField merges one field update into its section
func (f *DoctorForm) SetField(section entity.Section, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := f.data.With(section, key, value)
	if err != nil {
		return err
	}
	f.data = next
	return nil
}

// Reset restores the default field values and drops any staged photo
func (f *DoctorForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data = entity.DefaultDoctorFormData()
	f.staged = nil
	f.releasePreviewLocked()
}

// Release frees the preview held by the form
func (f *DoctorForm) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releasePreviewLocked()
}

// HandleFileChange stages a photo for upload. A nil file is ignored. Files
// that are not images or exceed MaxPhotoBytes are rejected and leave the
// staged photo untouched.
func (f *DoctorForm) HandleFileChange(file *entity.StagedFile) error {
	if file == nil {
		return nil
	}

	contentType := detectContentType(file)
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotImage
	}
	if file.EffectiveSize() > MaxPhotoBytes {
		return ErrFileTooLarge
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.uploading {
		return ErrUploadInFlight
	}

	staged := *file
	staged.ContentType = contentType

	f.releasePreviewLocked()
	f.staged = &staged
	if f.previews != nil {
		f.preview = f.previews.Create(&staged)
	}
	return nil
}

// HandleUpload sends the staged photo to the upload endpoint and stores the
// hosted URL into personal.photoUrl. The staged photo and its preview are
// cleared only on success.
func (f *DoctorForm) HandleUpload(ctx context.Context) (string, error) {
	f.mu.Lock()
	if f.staged == nil {
		f.mu.Unlock()
		return "", ErrNoFileSelected
	}
	if f.uploading {
		f.mu.Unlock()
		return "", ErrUploadInFlight
	}
	f.uploading = true
	file := f.staged
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.uploading = false
		f.mu.Unlock()
	}()

	f.log.WithFields(logrus.Fields{"file": file.Name, "folder": UploadFolder}).Info("Photo upload started")
	result, err := f.uploader.Upload(ctx, file, UploadFolder)
	if err != nil {
		f.log.Warnf("Failed to upload photo: %+v", err)
		return "", ErrUploadFailed
	}
	if result.Error != "" {
		f.log.Warnf("Failed to upload photo: %s", result.Error)
		return "", ErrUploadFailed
	}

	url := resolveUploadURL(result)
	if url == "" {
		f.log.Warn("Photo upload succeeded without a url")
		return "", ErrUploadURLMissing
	}
	f.log.WithField("url", url).Info("Photo upload completed")

	f.mu.Lock()
	f.data.Personal.PhotoURL = url
	f.staged = nil
	f.releasePreviewLocked()
	hook := f.onUploaded
	f.mu.Unlock()

	if hook != nil {
		hook(url)
	}
	return url, nil
}

// ValidateForm returns a *ValidationError for the first missing required
// field, or nil when all required fields are present
func (f *DoctorForm) ValidateForm() error {
	return f.validate(f.Data())
}

// BuildPayload produces the trimmed submission body
func (f *DoctorForm) BuildPayload() *dto.DoctorPayload {
	return converter.DoctorFormToPayload(f.Data())
}

// HandleSave validates the form and submits it to the doctor record
// endpoint. The form is reset to defaults only when the endpoint accepts the
// record; on every failure the entered values are kept.
func (f *DoctorForm) HandleSave(ctx context.Context) error {
	f.mu.Lock()
	if err := f.validate(f.data); err != nil {
		f.mu.Unlock()
		return err
	}
	if f.saving {
		f.mu.Unlock()
		return ErrSaveInFlight
	}
	f.saving = true
	payload := converter.DoctorFormToPayload(f.data)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.saving = false
		f.mu.Unlock()
	}()

	f.log.WithField("license", payload.Professional.MedicalLicenseNumber).Info("Saving doctor data")
	result, err := f.recorder.Create(ctx, payload)
	if err != nil {
		f.log.Warnf("Failed to save doctor data: %+v", err)
		return ErrSaveFailed
	}
	if result.Error != "" {
		f.log.Warnf("Doctor record rejected: %s", result.Error)
		return &RejectedError{Message: result.Error}
	}

	f.mu.Lock()
	f.data = entity.DefaultDoctorFormData()
	f.mu.Unlock()
	return nil
}

func (f *DoctorForm) validate(data entity.DoctorFormData) error {
	req := requiredFields{
		FirstName:             strings.TrimSpace(data.Personal.FirstName),
		LastName:              strings.TrimSpace(data.Personal.LastName),
		Email:                 strings.TrimSpace(data.Personal.Email),
		Phone:                 strings.TrimSpace(data.Personal.Phone),
		PrimarySpecialization: data.Professional.PrimarySpecialization,
		MedicalLicenseNumber:  strings.TrimSpace(data.Professional.MedicalLicenseNumber),
	}

	err := f.validator.Validate(&req)
	if err == nil {
		return nil
	}
	field, ok := f.validator.FirstInvalidField(err)
	if !ok {
		return err
	}
	rule := requiredFieldMessages[field]
	return &ValidationError{Field: rule.key, Message: rule.message}
}

func (f *DoctorForm) releasePreviewLocked() {
	if f.preview != "" && f.previews != nil {
		f.previews.Revoke(f.preview)
	}
	f.preview = ""
}

// resolveUploadURL prefers url and falls back to secure_url
func resolveUploadURL(result *dto.UploadResult) string {
	if result.URL != "" {
		return result.URL
	}
	return result.SecureURL
}

// detectContentType trusts the declared type unless it is missing or
// generic, in which case the content is sniffed
func detectContentType(file *entity.StagedFile) string {
	declared := strings.ToLower(strings.TrimSpace(file.ContentType))
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(file.Data).String()
}
