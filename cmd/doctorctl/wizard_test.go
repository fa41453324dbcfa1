package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"hospital-admin/internal/domain/entity"
	"hospital-admin/internal/infrastructure/collaborator"
	"hospital-admin/internal/service"
	"hospital-admin/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswersUpdates(t *testing.T) {
	a := &answers{FirstName: "Ann", Position: "intern"}
	updates := a.updates()

	assert.Len(t, updates, len(entity.FieldKeys(entity.SectionPersonal))-1+len(entity.FieldKeys(entity.SectionProfessional)),
		"every field but the photo url is asked")
	for _, u := range updates {
		assert.True(t, entity.HasField(u.section, u.key), "%s.%s", u.section, u.key)
	}
	assert.Equal(t, fieldUpdate{entity.SectionPersonal, entity.FieldFirstName, "Ann"}, updates[0])
}

func TestSelectOptions(t *testing.T) {
	opts := selectOptions("Select Position", entity.PositionOptions)

	require.Len(t, opts, len(entity.PositionOptions)+1)
	assert.Equal(t, "", opts[0].Value)
	assert.Equal(t, "Select Position", opts[0].Key)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateDate(""))
	assert.NoError(t, validateDate("1990-05-01"))
	assert.Error(t, validateDate("05/01/1990"))

	dir := t.TempDir()
	assert.NoError(t, validatePhotoPath(""))
	assert.Error(t, validatePhotoPath(dir))
	assert.Error(t, validatePhotoPath(filepath.Join(dir, "missing.png")))
}

func TestLoadPhoto(t *testing.T) {
	dir := t.TempDir()

	small := filepath.Join(dir, "me.png")
	require.NoError(t, os.WriteFile(small, []byte("\x89PNG\r\n\x1a\n"), 0o600))
	file, err := loadPhoto(small)
	require.NoError(t, err)
	assert.Equal(t, "me.png", file.Name)
	assert.Equal(t, int64(8), file.Size)

	big := filepath.Join(dir, "big.jpg")
	f, err := os.Create(big)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(service.MaxPhotoBytes+1))
	require.NoError(t, f.Close())

	_, err = loadPhoto(big)
	assert.ErrorIs(t, err, service.ErrFileTooLarge)
	assert.EqualError(t, validatePhotoPath(big), "File size exceeds 2MB")
}

func TestSubmit(t *testing.T) {
	var uploads, records atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/upload":
			uploads.Add(1)
			w.Write([]byte(`{"url":"https://cdn.example/me.png"}`))
		case "/api/doctors":
			records.Add(1)
			w.Write([]byte(`{}`))
		}
	}))
	defer upstream.Close()

	photo := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(photo, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600))

	log := logrus.New()
	log.SetOutput(io.Discard)
	httpClient := collaborator.NewHTTPClient(5 * time.Second)
	form := service.NewDoctorForm(
		collaborator.NewUploadClient(upstream.URL+"/api/upload", httpClient, log),
		collaborator.NewDoctorRecordClient(upstream.URL+"/api/doctors", httpClient, log),
		nil,
		validator.NewValidator(),
		log,
	)

	a := &answers{
		FirstName:             "Ann",
		LastName:              "Lee",
		Email:                 "a@x.com",
		Phone:                 "555-1000",
		PrimarySpecialization: "cardiology",
		MedicalLicenseNumber:  "MD123",
		PhotoPath:             photo,
	}

	require.NoError(t, submit(context.Background(), form, a))
	assert.Equal(t, int32(1), uploads.Load())
	assert.Equal(t, int32(1), records.Load())
	assert.Equal(t, entity.DefaultDoctorFormData(), form.Data())
}

func TestSubmitStopsOnValidation(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	form := service.NewDoctorForm(nil, nil, nil, validator.NewValidator(), log)

	err := submit(context.Background(), form, &answers{FirstName: "Ann"})

	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Last name is required", service.UserMessage(err))
}
