package handler

import (
	"net/http"

	"hospital-admin/internal/delivery/dto"
	"hospital-admin/internal/delivery/http/middleware"
	"hospital-admin/internal/domain/entity"
	"hospital-admin/internal/service"
	"hospital-admin/internal/usecase"
	"hospital-admin/pkg/response"
	"hospital-admin/pkg/validator"

	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

type DoctorFormHandler struct {
	registrationUsecase usecase.DoctorRegistrationUsecase
	validator           *validator.CustomValidator
}

func NewDoctorFormHandler(registrationUsecase usecase.DoctorRegistrationUsecase, validator *validator.CustomValidator) *DoctorFormHandler {
	return &DoctorFormHandler{
		registrationUsecase: registrationUsecase,
		validator:           validator,
	}
}

func (h *DoctorFormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	form, err := h.registrationUsecase.GetForm(r.Context(), sessionID)
	if err != nil {
		writeFormError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Form retrieved successfully", form)
}

func (h *DoctorFormHandler) SetField(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	var req dto.SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	form, err := h.registrationUsecase.SetField(r.Context(), sessionID, &req)
	if err != nil {
		writeFormError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Field updated successfully", form)
}

func (h *DoctorFormHandler) StagePhoto(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	file, err := readStagedFile(w, r)
	if err != nil {
		writeFormError(w, err)
		return
	}
	if file == nil {
		response.Error(w, http.StatusBadRequest, service.UserMessage(service.ErrNoFileSelected), nil)
		return
	}

	form, err := h.registrationUsecase.StagePhoto(r.Context(), sessionID, file)
	if err != nil {
		writeFormError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Photo selected", form)
}

func (h *DoctorFormHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	result, err := h.registrationUsecase.UploadPhoto(r.Context(), sessionID)
	if err != nil {
		writeFormError(w, err)
		return
	}

	response.Success(w, http.StatusOK, service.MsgPhotoUploaded, result)
}

func (h *DoctorFormHandler) Validate(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	result, err := h.registrationUsecase.Validate(r.Context(), sessionID)
	if err != nil {
		writeFormError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Form validated", result)
}

func (h *DoctorFormHandler) GetPayload(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	payload, err := h.registrationUsecase.BuildPayload(r.Context(), sessionID)
	if err != nil {
		writeFormError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Payload built successfully", payload)
}

func (h *DoctorFormHandler) Save(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	if err := h.registrationUsecase.Save(r.Context(), sessionID); err != nil {
		writeFormError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, service.MsgDoctorAdded, nil)
}

func (h *DoctorFormHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	if err := h.registrationUsecase.Reset(r.Context(), sessionID); err != nil {
		writeFormError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Form reset", nil)
}

func (h *DoctorFormHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	file, err := h.registrationUsecase.OpenPreview(r.Context(), vars["id"])
	if err != nil {
		response.NotFound(w, "Preview not found")
		return
	}

	// Previews hold untrusted bytes; only raster images render inline
	header := w.Header()
	header.Set("X-Content-Type-Options", "nosniff")
	header.Set("Content-Security-Policy", "sandbox; default-src 'none'")
	header.Set("Cache-Control", "no-store")

	detected := mimetype.Detect(file.Data)
	if detected.Is("image/png") || detected.Is("image/jpeg") || detected.Is("image/gif") {
		header.Set("Content-Type", detected.String())
		header.Set("Content-Disposition", "inline")
	} else {
		header.Set("Content-Type", "application/octet-stream")
		header.Set("Content-Disposition", "attachment")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

func (h *DoctorFormHandler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	response.Success(w, http.StatusOK, "Navigation retrieved successfully", entity.AppSidebar().ForPath(path))
}
