package entity

// Option is a selectable value with its display label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var GenderOptions = []Option{
	{Value: string(GenderMale), Label: "Male"},
	{Value: string(GenderFemale), Label: "Female"},
	{Value: string(GenderOther), Label: "Other"},
}

var SpecializationOptions = []Option{
	{Value: "cardiology", Label: "Cardiology"},
	{Value: "dermatology", Label: "Dermatology"},
	{Value: "neurology", Label: "Neurology"},
	{Value: "orthopedics", Label: "Orthopedics"},
	{Value: "pediatrics", Label: "Pediatrics"},
	{Value: "psychiatry", Label: "Psychiatry"},
	{Value: "general-medicine", Label: "General Medicine"},
}

// Departments share the specialization catalog
var DepartmentOptions = SpecializationOptions

var PositionOptions = []Option{
	{Value: "department-head", Label: "Department Head"},
	{Value: "senior-doctor", Label: "Senior Doctor"},
	{Value: "specialist", Label: "Specialist"},
	{Value: "resident", Label: "Resident"},
	{Value: "intern", Label: "Intern"},
}

func HasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
