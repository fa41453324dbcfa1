package converter

import (
	"strings"
	"time"

	"hospital-admin/internal/delivery/dto"
	"hospital-admin/internal/domain/entity"
)

// PayloadTimeLayout renders dates as UTC ISO-8601 with millisecond precision
const PayloadTimeLayout = "2006-01-02T15:04:05.000Z"

// DoctorFormToPayload converts the form state into the submission body.
// Every string is trimmed and unset dates become null.
func DoctorFormToPayload(data entity.DoctorFormData) *dto.DoctorPayload {
	p := data.Personal
	pro := data.Professional

	return &dto.DoctorPayload{
		Personal: dto.PersonalPayload{
			FirstName:             strings.TrimSpace(p.FirstName),
			LastName:              strings.TrimSpace(p.LastName),
			DOB:                   FormatPayloadDate(p.DOB),
			Gender:                strings.TrimSpace(string(p.Gender)),
			Address:               strings.TrimSpace(p.Address),
			City:                  strings.TrimSpace(p.City),
			Province:              strings.TrimSpace(p.Province),
			PostalCode:            strings.TrimSpace(p.PostalCode),
			Phone:                 strings.TrimSpace(p.Phone),
			Email:                 strings.TrimSpace(p.Email),
			EmergencyContactName:  strings.TrimSpace(p.EmergencyContactName),
			EmergencyContactPhone: strings.TrimSpace(p.EmergencyContactPhone),
			PhotoURL:              strings.TrimSpace(p.PhotoURL),
		},
		Professional: dto.ProfessionalPayload{
			PrimarySpecialization:   strings.TrimSpace(pro.PrimarySpecialization),
			SecondarySpecialization: strings.TrimSpace(pro.SecondarySpecialization),
			MedicalLicenseNumber:    strings.TrimSpace(pro.MedicalLicenseNumber),
			LicenseExpiryDate:       FormatPayloadDate(pro.LicenseExpiryDate),
			Qualifications:          strings.TrimSpace(pro.Qualifications),
			YearsOfExperience:       strings.TrimSpace(pro.YearsOfExperience),
			Education:               strings.TrimSpace(pro.Education),
			Certification:           strings.TrimSpace(pro.Certification),
			Department:              strings.TrimSpace(pro.Department),
			Position:                strings.TrimSpace(pro.Position),
		},
	}
}

// FormatPayloadDate returns nil for an unset date
func FormatPayloadDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(PayloadTimeLayout)
	return &s
}
