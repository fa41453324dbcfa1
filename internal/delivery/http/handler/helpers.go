package handler

import (
	"errors"
	"io"
	"net/http"

	"hospital-admin/internal/domain/entity"
	"hospital-admin/internal/service"
	"hospital-admin/internal/usecase"
	"hospital-admin/pkg/response"
)

// maxPhotoRequestBytes caps multipart bodies. It is well above the photo
// limit so oversized photos still reach the size check and get its message.
const maxPhotoRequestBytes = 4 * service.MaxPhotoBytes

// formErrorStatus maps a form error to its HTTP status
func formErrorStatus(err error) int {
	var validationErr *service.ValidationError
	var rejectedErr *service.RejectedError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &rejectedErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrSessionRequired):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrNotImage),
		errors.Is(err, service.ErrNoFileSelected),
		errors.Is(err, entity.ErrUnknownSection),
		errors.Is(err, entity.ErrUnknownField),
		errors.Is(err, entity.ErrInvalidDate),
		errors.Is(err, entity.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUploadInFlight), errors.Is(err, service.ErrSaveInFlight):
		return http.StatusConflict
	case errors.Is(err, service.ErrUploadFailed),
		errors.Is(err, service.ErrUploadURLMissing),
		errors.Is(err, service.ErrSaveFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeFormError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		response.Error(w, http.StatusBadRequest, validationErr.Message, map[string]string{
			validationErr.Field: validationErr.Message,
		})
		return
	}
	response.Error(w, formErrorStatus(err), service.UserMessage(err), nil)
}

// readStagedFile reads the "file" part of a multipart request. It returns
// nil, nil when no file was sent.
func readStagedFile(w http.ResponseWriter, r *http.Request) (*entity.StagedFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoRequestBytes)
	if err := r.ParseMultipartForm(maxPhotoRequestBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, service.ErrFileTooLarge
		}
		return nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxPhotoBytes+1))
	if err != nil {
		return nil, err
	}

	return &entity.StagedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	}, nil
}
