package service

import (
	"errors"

	"hospital-admin/internal/domain/entity"
)

var (
	ErrNotImage         = errors.New("file is not an image")
	ErrFileTooLarge     = errors.New("file exceeds the size limit")
	ErrNoFileSelected   = errors.New("no file selected")
	ErrUploadInFlight   = errors.New("upload already in progress")
	ErrUploadFailed     = errors.New("photo upload failed")
	ErrUploadURLMissing = errors.New("upload response carried no url")
	ErrSaveInFlight     = errors.New("save already in progress")
	ErrSaveFailed       = errors.New("doctor record request failed")
)

// User-facing notices
const (
	MsgPhotoUploaded = "File uploaded successfully"
	MsgDoctorAdded   = "Doctor added successfully"
)

// ValidationError names the first required field that is missing
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RejectedError carries an error string returned by the doctor record endpoint
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

// UserMessage turns a form error into the text shown to the operator
func UserMessage(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var rejectedErr *RejectedError
	if errors.As(err, &rejectedErr) {
		return rejectedErr.Message
	}

	switch {
	case errors.Is(err, ErrNotImage):
		return "Please select a valid image file"
	case errors.Is(err, ErrFileTooLarge):
		return "File size exceeds 2MB"
	case errors.Is(err, ErrNoFileSelected):
		return "No file selected"
	case errors.Is(err, ErrUploadInFlight):
		return "Upload already in progress"
	case errors.Is(err, ErrUploadURLMissing):
		return "Upload success but URL not return from API"
	case errors.Is(err, ErrUploadFailed):
		return "Error uploading file, Please try again"
	case errors.Is(err, ErrSaveInFlight):
		return "Save already in progress"
	case errors.Is(err, ErrSaveFailed):
		return "Error saving doctor data. Please try again."
	case errors.Is(err, entity.ErrUnknownSection), errors.Is(err, entity.ErrUnknownField):
		return "Unknown form field"
	case errors.Is(err, entity.ErrInvalidDate):
		return "Invalid date"
	case errors.Is(err, entity.ErrInvalidOption):
		return "Please select one of the available options"
	default:
		return "Something went wrong. Please try again."
	}
}
