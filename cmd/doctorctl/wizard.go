package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"hospital-admin/internal/domain/entity"
	"hospital-admin/internal/service"

	"github.com/charmbracelet/huh"
)

// answers collects the wizard inputs. Values are kept as typed; the form
// service trims them when it builds the payload.
type answers struct {
	FirstName             string
	LastName              string
	DOB                   string
	Gender                string
	Address               string
	City                  string
	Province              string
	PostalCode            string
	Phone                 string
	Email                 string
	EmergencyContactName  string
	EmergencyContactPhone string

	PhotoPath string

	PrimarySpecialization   string
	SecondarySpecialization string
	MedicalLicenseNumber    string
	LicenseExpiryDate       string
	Qualifications          string
	YearsOfExperience       string
	Education               string
	Certification           string
	Department              string
	Position                string

	Confirm bool
}

type fieldUpdate struct {
	section entity.Section
	key     string
	value   string
}

// updates lists the answers as form field updates, personal section first
func (a *answers) updates() []fieldUpdate {
	personal := entity.SectionPersonal
	professional := entity.SectionProfessional
	return []fieldUpdate{
		{personal, entity.FieldFirstName, a.FirstName},
		{personal, entity.FieldLastName, a.LastName},
		{personal, entity.FieldDOB, a.DOB},
		{personal, entity.FieldGender, a.Gender},
		{personal, entity.FieldAddress, a.Address},
		{personal, entity.FieldCity, a.City},
		{personal, entity.FieldProvince, a.Province},
		{personal, entity.FieldPostalCode, a.PostalCode},
		{personal, entity.FieldPhone, a.Phone},
		{personal, entity.FieldEmail, a.Email},
		{personal, entity.FieldEmergencyContactName, a.EmergencyContactName},
		{personal, entity.FieldEmergencyContactPhone, a.EmergencyContactPhone},
		{professional, entity.FieldPrimarySpecialization, a.PrimarySpecialization},
		{professional, entity.FieldSecondarySpecialization, a.SecondarySpecialization},
		{professional, entity.FieldMedicalLicenseNumber, a.MedicalLicenseNumber},
		{professional, entity.FieldLicenseExpiryDate, a.LicenseExpiryDate},
		{professional, entity.FieldQualifications, a.Qualifications},
		{professional, entity.FieldYearsOfExperience, a.YearsOfExperience},
		{professional, entity.FieldEducation, a.Education},
		{professional, entity.FieldCertification, a.Certification},
		{professional, entity.FieldDepartment, a.Department},
		{professional, entity.FieldPosition, a.Position},
	}
}

func selectOptions(placeholder string, options []entity.Option) []huh.Option[string] {
	out := []huh.Option[string]{huh.NewOption(placeholder, "")}
	for _, o := range options {
		out = append(out, huh.NewOption(o.Label, o.Value))
	}
	return out
}

func validateDate(s string) error {
	if _, err := entity.ParseFormDate(s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validatePhotoPath(s string) error {
	if s == "" {
		return nil
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("cannot read %s", s)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	if info.Size() > service.MaxPhotoBytes {
		return errors.New(service.UserMessage(service.ErrFileTooLarge))
	}
	return nil
}

// newWizard builds the interactive form. Required fields are checked by the
// form service on save, not here, so the operator sees the same messages as
// the web page.
func newWizard(a *answers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("firstName").Title("First Name").Placeholder("First name").Value(&a.FirstName),
			huh.NewInput().Key("lastName").Title("Last Name").Placeholder("Last name").Value(&a.LastName),
			huh.NewInput().Key("dob").Title("Date of Birth").Description("Format: YYYY-MM-DD").Value(&a.DOB).Validate(validateDate),
			huh.NewSelect[string]().Key("gender").Title("Gender").Options(selectOptions("Select gender", entity.GenderOptions)...).Value(&a.Gender),
			huh.NewText().Key("address").Title("Address").Placeholder("Enter address").Value(&a.Address),
			huh.NewInput().Key("city").Title("City").Value(&a.City),
			huh.NewInput().Key("province").Title("Province").Value(&a.Province),
			huh.NewInput().Key("postalCode").Title("Postal Code").Value(&a.PostalCode),
		).Title("Personal Information"),

		huh.NewGroup(
			huh.NewInput().Key("phone").Title("Phone Number").Value(&a.Phone),
			huh.NewInput().Key("email").Title("Email").Value(&a.Email),
			huh.NewInput().Key("emergencyContactName").Title("Emergency Contact Name").Value(&a.EmergencyContactName),
			huh.NewInput().Key("emergencyContactPhone").Title("Emergency Contact Phone").Value(&a.EmergencyContactPhone),
		).Title("Contact Details"),

		huh.NewGroup(
			huh.NewInput().Key("photo").Title("Photo").Description("Path to a JPG, PNG or GIF up to 2MB. Leave empty to skip.").Value(&a.PhotoPath).Validate(validatePhotoPath),
		).Title("Profile Photo"),

		huh.NewGroup(
			huh.NewSelect[string]().Key("primarySpecialization").Title("Primary Specialization").Options(selectOptions("Select Specialization", entity.SpecializationOptions)...).Value(&a.PrimarySpecialization),
			huh.NewSelect[string]().Key("secondarySpecialization").Title("Secondary Specialization (Optional)").Options(selectOptions("Select Specialization", entity.SpecializationOptions)...).Value(&a.SecondarySpecialization),
			huh.NewInput().Key("medicalLicenseNumber").Title("Medical License Number").Placeholder("Enter the license number").Value(&a.MedicalLicenseNumber),
			huh.NewInput().Key("licenseExpiryDate").Title("License Expiry Date").Description("Format: YYYY-MM-DD").Value(&a.LicenseExpiryDate).Validate(validateDate),
			huh.NewText().Key("qualifications").Title("Qualifications").Placeholder("Enter qualifications (MD,PhD,etc)").Value(&a.Qualifications),
			huh.NewInput().Key("yearsOfExperience").Title("Year of experience").Value(&a.YearsOfExperience),
		).Title("Professional Details"),

		huh.NewGroup(
			huh.NewText().Key("education").Title("Education").Placeholder("Enter education").Value(&a.Education),
			huh.NewText().Key("certification").Title("Certification").Placeholder("Enter certification").Value(&a.Certification),
		).Title("Education & Training"),

		huh.NewGroup(
			huh.NewSelect[string]().Key("department").Title("Department").Options(selectOptions("Select Department", entity.DepartmentOptions)...).Value(&a.Department),
			huh.NewSelect[string]().Key("position").Title("Position").Options(selectOptions("Select Position", entity.PositionOptions)...).Value(&a.Position),
			huh.NewConfirm().Key("confirm").Title("Save this doctor?").Affirmative("Save changes").Negative("Cancel").Value(&a.Confirm),
		).Title("Department & Position"),
	).WithShowHelp(true).WithShowErrors(true)
}

// loadPhoto reads a photo from disk. The content type is left empty so the
// form service sniffs it from the bytes.
func loadPhoto(path string) (*entity.StagedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > service.MaxPhotoBytes {
		return nil, service.ErrFileTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &entity.StagedFile{
		Name: filepath.Base(path),
		Size: int64(len(data)),
		Data: data,
	}, nil
}
