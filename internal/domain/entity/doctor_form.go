package entity

import (
	"errors"
	"time"
)

var (
	ErrUnknownSection = errors.New("unknown form section")
	ErrUnknownField   = errors.New("unknown form field")
	ErrInvalidDate    = errors.New("invalid date value")
	ErrInvalidOption  = errors.New("value is not one of the allowed options")
)

// Section names one of the two sub-records of DoctorFormData
type Section string

const (
	SectionPersonal     Section = "personal"
	SectionProfessional Section = "professional"
)

type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Personal field keys
const (
	FieldFirstName             = "firstName"
	FieldLastName              = "lastName"
	FieldDOB                   = "dob"
	FieldGender                = "gender"
	FieldAddress               = "address"
	FieldCity                  = "city"
	FieldProvince              = "province"
	FieldPostalCode            = "postalCode"
	FieldPhone                 = "phone"
	FieldEmail                 = "email"
	FieldEmergencyContactName  = "emergencyContactName"
	FieldEmergencyContactPhone = "emergencyContactPhone"
	FieldPhotoURL              = "photoUrl"
)

// Professional field keys
const (
	FieldPrimarySpecialization   = "primarySpecialization"
	FieldSecondarySpecialization = "secondarySpecialization"
	FieldMedicalLicenseNumber    = "medicalLicenseNumber"
	FieldLicenseExpiryDate       = "licenseExpiryDate"
	FieldQualifications          = "qualifications"
	FieldYearsOfExperience       = "yearsOfExperience"
	FieldEducation               = "education"
	FieldCertification           = "certification"
	FieldDepartment              = "department"
	FieldPosition                = "position"
)

// PersonalInfo holds the doctor's personal details. Every key is always
// present: strings default to "" and dates to nil.
type PersonalInfo struct {
	FirstName             string     `json:"firstName"`
	LastName              string     `json:"lastName"`
	DOB                   *time.Time `json:"dob"`
	Gender                Gender     `json:"gender"`
	Address               string     `json:"address"`
	City                  string     `json:"city"`
	Province              string     `json:"province"`
	PostalCode            string     `json:"postalCode"`
	Phone                 string     `json:"phone"`
	Email                 string     `json:"email"`
	EmergencyContactName  string     `json:"emergencyContactName"`
	EmergencyContactPhone string     `json:"emergencyContactPhone"`
	PhotoURL              string     `json:"photoUrl"`
}

// ProfessionalInfo holds the doctor's professional details
type ProfessionalInfo struct {
	PrimarySpecialization   string     `json:"primarySpecialization"`
	SecondarySpecialization string     `json:"secondarySpecialization"`
	MedicalLicenseNumber    string     `json:"medicalLicenseNumber"`
	LicenseExpiryDate       *time.Time `json:"licenseExpiryDate"`
	Qualifications          string     `json:"qualifications"`
	YearsOfExperience       string     `json:"yearsOfExperience"`
	Education               string     `json:"education"`
	Certification           string     `json:"certification"`
	Department              string     `json:"department"`
	Position                string     `json:"position"`
}

// DoctorFormData is the full state of the doctor registration form
type DoctorFormData struct {
	Personal     PersonalInfo     `json:"personal"`
	Professional ProfessionalInfo `json:"professional"`
}

// DefaultDoctorFormData returns the all-empty form
func DefaultDoctorFormData() DoctorFormData {
	return DoctorFormData{}
}

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldDate
	fieldChoice
)

type fieldSpec struct {
	kind    fieldKind
	options []Option
	setText func(d *DoctorFormData, v string)
	setDate func(d *DoctorFormData, t *time.Time)
}

var formFields = map[Section]map[string]fieldSpec{
	SectionPersonal: {
		FieldFirstName:             text(func(d *DoctorFormData, v string) { d.Personal.FirstName = v }),
		FieldLastName:              text(func(d *DoctorFormData, v string) { d.Personal.LastName = v }),
		FieldDOB:                   date(func(d *DoctorFormData, t *time.Time) { d.Personal.DOB = t }),
		FieldGender:                choice(GenderOptions, func(d *DoctorFormData, v string) { d.Personal.Gender = Gender(v) }),
		FieldAddress:               text(func(d *DoctorFormData, v string) { d.Personal.Address = v }),
		FieldCity:                  text(func(d *DoctorFormData, v string) { d.Personal.City = v }),
		FieldProvince:              text(func(d *DoctorFormData, v string) { d.Personal.Province = v }),
		FieldPostalCode:            text(func(d *DoctorFormData, v string) { d.Personal.PostalCode = v }),
		FieldPhone:                 text(func(d *DoctorFormData, v string) { d.Personal.Phone = v }),
		FieldEmail:                 text(func(d *DoctorFormData, v string) { d.Personal.Email = v }),
		FieldEmergencyContactName:  text(func(d *DoctorFormData, v string) { d.Personal.EmergencyContactName = v }),
		FieldEmergencyContactPhone: text(func(d *DoctorFormData, v string) { d.Personal.EmergencyContactPhone = v }),
		FieldPhotoURL:              text(func(d *DoctorFormData, v string) { d.Personal.PhotoURL = v }),
	},
	SectionProfessional: {
		FieldPrimarySpecialization:   choice(SpecializationOptions, func(d *DoctorFormData, v string) { d.Professional.PrimarySpecialization = v }),
		FieldSecondarySpecialization: choice(SpecializationOptions, func(d *DoctorFormData, v string) { d.Professional.SecondarySpecialization = v }),
		FieldMedicalLicenseNumber:    text(func(d *DoctorFormData, v string) { d.Professional.MedicalLicenseNumber = v }),
		FieldLicenseExpiryDate:       date(func(d *DoctorFormData, t *time.Time) { d.Professional.LicenseExpiryDate = t }),
		FieldQualifications:          text(func(d *DoctorFormData, v string) { d.Professional.Qualifications = v }),
		FieldYearsOfExperience:       text(func(d *DoctorFormData, v string) { d.Professional.YearsOfExperience = v }),
		FieldEducation:               text(func(d *DoctorFormData, v string) { d.Professional.Education = v }),
		FieldCertification:           text(func(d *DoctorFormData, v string) { d.Professional.Certification = v }),
		FieldDepartment:              choice(DepartmentOptions, func(d *DoctorFormData, v string) { d.Professional.Department = v }),
		FieldPosition:                choice(PositionOptions, func(d *DoctorFormData, v string) { d.Professional.Position = v }),
	},
}

func text(set func(d *DoctorFormData, v string)) fieldSpec {
	return fieldSpec{kind: fieldText, setText: set}
}

func date(set func(d *DoctorFormData, t *time.Time)) fieldSpec {
	return fieldSpec{kind: fieldDate, setDate: set}
}

func choice(options []Option, set func(d *DoctorFormData, v string)) fieldSpec {
	return fieldSpec{kind: fieldChoice, options: options, setText: set}
}

// With returns a copy of d with a single field replaced. Sibling fields and
// the other section are carried over untouched; d itself is never modified.
func (d DoctorFormData) With(section Section, key string, value string) (DoctorFormData, error) {
	fields, ok := formFields[section]
	if !ok {
		return d, ErrUnknownSection
	}
	spec, ok := fields[key]
	if !ok {
		return d, ErrUnknownField
	}

	next := d
	switch spec.kind {
	case fieldDate:
		t, err := ParseFormDate(value)
		if err != nil {
			return d, err
		}
		spec.setDate(&next, t)
	case fieldChoice:
		if value != "" && !HasOption(spec.options, value) {
			return d, ErrInvalidOption
		}
		spec.setText(&next, value)
	default:
		spec.setText(&next, value)
	}
	return next, nil
}

// HasField reports whether key is a known field of section
func HasField(section Section, key string) bool {
	_, ok := formFields[section][key]
	return ok
}

// FieldKeys returns the keys of a section in no particular order
func FieldKeys(section Section) []string {
	keys := make([]string, 0, len(formFields[section]))
	for k := range formFields[section] {
		keys = append(keys, k)
	}
	return keys
}

// ParseFormDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339
// timestamp. An empty value clears the date.
func ParseFormDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}
