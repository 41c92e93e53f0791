package domain

// Department is a clearance or academic department code.
type Department string

// Clearance departments. Every no-dues certificate needs one signature
// from each of these.
const (
	DeptLibrary              Department = "LIBRARY"
	DeptTrainingAndPlacement Department = "TRAINING_AND_PLACEMENT"
	DeptSports               Department = "SPORTS"
	DeptOffice               Department = "OFFICE"
	DeptHOD                  Department = "HOD"
	DeptIESLibrary           Department = "IES_LIBRARY"
	DeptTransport            Department = "TRANSPORT"
	DeptHostel               Department = "HOSTEL"
	DeptAccounts             Department = "ACCOUNTS"
	DeptStudentSection       Department = "STUDENT_SECTION"
)

// Academic departments. Students and HODs belong to one of these.
const (
	DeptCSE        Department = "CSE"
	DeptECE        Department = "ECE"
	DeptEEE        Department = "EEE"
	DeptMechanical Department = "MECHANICAL"
	DeptCivil      Department = "CIVIL"
)

// RequiredSignatureDepartments returns the fixed, ordered set of departments
// that must each sign a no-dues certificate before principal sign-off.
func RequiredSignatureDepartments() []Department {
	return []Department{
		DeptLibrary,
		DeptTrainingAndPlacement,
		DeptSports,
		DeptOffice,
		DeptHOD,
		DeptIESLibrary,
		DeptTransport,
		DeptHostel,
		DeptAccounts,
		DeptStudentSection,
	}
}

// AcademicDepartments returns the departments a student can be enrolled in.
func AcademicDepartments() []Department {
	return []Department{DeptCSE, DeptECE, DeptEEE, DeptMechanical, DeptCivil}
}

// AllDepartments returns the full catalogue, clearance departments first.
func AllDepartments() []Department {
	return append(RequiredSignatureDepartments(), AcademicDepartments()...)
}

var departmentDisplayNames = map[Department]string{
	DeptLibrary:              "Library",
	DeptTrainingAndPlacement: "Training & Placement",
	DeptSports:               "Sports",
	DeptOffice:               "Office",
	DeptHOD:                  "HOD",
	DeptIESLibrary:           "IES Library",
	DeptTransport:            "Transport",
	DeptHostel:               "Hostel",
	DeptAccounts:             "Account Section",
	DeptStudentSection:       "Student Section",
	DeptCSE:                  "CSE",
	DeptECE:                  "ECE",
	DeptEEE:                  "EEE",
	DeptMechanical:           "Mechanical",
	DeptCivil:                "Civil",
}

// DisplayName returns the human readable department label, falling back to
// the raw code for unknown values.
func (d Department) DisplayName() string {
	if name, ok := departmentDisplayNames[d]; ok {
		return name
	}
	return string(d)
}

// IsKnown reports whether d is a recognised department code.
func (d Department) IsKnown() bool {
	_, ok := departmentDisplayNames[d]
	return ok
}

// IsRequiredForClearance reports whether d is one of the departments whose
// signature is required on a certificate.
func (d Department) IsRequiredForClearance() bool {
	for _, req := range RequiredSignatureDepartments() {
		if d == req {
			return true
		}
	}
	return false
}
