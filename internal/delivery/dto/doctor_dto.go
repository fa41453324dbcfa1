package dto

import (
	"hospital-admin/internal/domain/entity"
)

// Outbound DTOs (Doctor-Record collaborator)

// DoctorPayload is the submission body sent to the doctor record endpoint.
// Strings are trimmed and dates are ISO-8601 strings or null.
type DoctorPayload struct {
	Personal     PersonalPayload     `json:"personal"`
	Professional ProfessionalPayload `json:"professional"`
}

type PersonalPayload struct {
	FirstName             string  `json:"firstName"`
	LastName              string  `json:"lastName"`
	DOB                   *string `json:"dob"`
	Gender                string  `json:"gender"`
	Address               string  `json:"address"`
	City                  string  `json:"city"`
	Province              string  `json:"province"`
	PostalCode            string  `json:"postalCode"`
	Phone                 string  `json:"phone"`
	Email                 string  `json:"email"`
	EmergencyContactName  string  `json:"emergencyContactName"`
	EmergencyContactPhone string  `json:"emergencyContactPhone"`
	PhotoURL              string  `json:"photoUrl"`
}

type ProfessionalPayload struct {
	PrimarySpecialization   string  `json:"primarySpecialization"`
	SecondarySpecialization string  `json:"secondarySpecialization"`
	MedicalLicenseNumber    string  `json:"medicalLicenseNumber"`
	LicenseExpiryDate       *string `json:"licenseExpiryDate"`
	Qualifications          string  `json:"qualifications"`
	YearsOfExperience       string  `json:"yearsOfExperience"`
	Education               string  `json:"education"`
	Certification           string  `json:"certification"`
	Department              string  `json:"department"`
	Position                string  `json:"position"`
}

// DoctorRecordResult is the decoded body of the doctor record endpoint
type DoctorRecordResult struct {
	Error string `json:"error,omitempty"`
}

// UploadResult is the decoded body of the upload endpoint. Providers answer
// with either url or secure_url.
type UploadResult struct {
	URL       string `json:"url,omitempty"`
	SecureURL string `json:"secure_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Request DTOs

type SetFieldRequest struct {
	Section string `json:"section" validate:"required,oneof=personal professional"`
	Key     string `json:"key" validate:"required"`
	Value   string `json:"value"`
}

// Response DTOs

type DoctorFormResponse struct {
	Data           entity.DoctorFormData `json:"data"`
	StagedFileName string                `json:"staged_file_name,omitempty"`
	PreviewURL     string                `json:"preview_url,omitempty"`
	PhotoURL       string                `json:"photo_url,omitempty"`
	Uploading      bool                  `json:"uploading"`
	Saving         bool                  `json:"saving"`
}

type ValidationResponse struct {
	Valid   bool   `json:"valid"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

type PhotoUploadResponse struct {
	URL string `json:"url"`
}
