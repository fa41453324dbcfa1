package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hospital-admin/internal/domain/entity"
	"hospital-admin/internal/service"
	"hospital-admin/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&service.ValidationError{Field: "firstName", Message: "First name is required"}, http.StatusBadRequest},
		{&service.RejectedError{Message: "duplicate"}, http.StatusUnprocessableEntity},
		{usecase.ErrSessionRequired, http.StatusUnauthorized},
		{service.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{service.ErrNotImage, http.StatusBadRequest},
		{entity.ErrInvalidDate, http.StatusBadRequest},
		{service.ErrUploadInFlight, http.StatusConflict},
		{service.ErrSaveInFlight, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", service.ErrUploadFailed), http.StatusBadGateway},
		{service.ErrUploadURLMissing, http.StatusBadGateway},
		{service.ErrSaveFailed, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, formErrorStatus(tc.err), tc.err.Error())
	}
}

func TestPostedFields(t *testing.T) {
	form := url.Values{
		"personal.lastName":           {"Lee"},
		"personal.firstName":          {"Ann"},
		"professional.position":       {"intern"},
		"personal.unknown":            {"x"},
		"action":                      {"save"},
		"professional.qualifications": {""},
	}
	req := httptest.NewRequest(http.MethodPost, "/doctors/doc-add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, req.ParseForm())

	reqs := postedFields(req)
	require.Len(t, reqs, 4)

	assert.Equal(t, "personal", reqs[0].Section)
	assert.Equal(t, entity.FieldFirstName, reqs[0].Key)
	assert.Equal(t, entity.FieldLastName, reqs[1].Key)
	assert.Equal(t, "professional", reqs[2].Section)
	assert.Equal(t, entity.FieldPosition, reqs[2].Key)
	assert.Equal(t, entity.FieldQualifications, reqs[3].Key)
	assert.Equal(t, "", reqs[3].Value, "empty values clear the field")
}

func TestReadStagedFileWithoutFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/admin/api/doctor-form/photo", strings.NewReader("--x--\r\n"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")

	file, err := readStagedFile(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Nil(t, file)
}
